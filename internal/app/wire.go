package app

import (
	"net/http"

	"github.com/kumaruseru/crown-messaging/internal/domain"
	"github.com/kumaruseru/crown-messaging/internal/protocol/hybrid"
	"github.com/kumaruseru/crown-messaging/internal/relay"
	keysvc "github.com/kumaruseru/crown-messaging/internal/services/keys"
	messagesvc "github.com/kumaruseru/crown-messaging/internal/services/message"
	"github.com/kumaruseru/crown-messaging/internal/store"
	"github.com/kumaruseru/crown-messaging/internal/suite/native"
	"github.com/kumaruseru/crown-messaging/internal/suite/web"
)

// Wire bundles the stores and services a host needs to run the messaging
// core.
type Wire struct {
	Users    domain.UserStore
	Messages domain.MessageStore
	Keys     domain.KeyService
	Send     domain.MessageService
	Suite    hybrid.Suite

	closer func() error
}

// NewWire constructs the dependency graph from cfg. Store selection:
// exchange URL first, then SQLite path, then in-memory.
func NewWire(cfg Config) (*Wire, error) {
	var (
		users    domain.UserStore
		messages domain.MessageStore
		closer   func() error
	)
	switch {
	case cfg.ExchangeURL != "":
		client := relay.NewClient(cfg.ExchangeURL)
		if cfg.HTTP != nil {
			client.HTTP = cfg.HTTP
		} else {
			client.HTTP = http.DefaultClient
		}
		users, messages = client, client
	case cfg.DBPath != "":
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		users, messages = db, db
		closer = db.Close
	default:
		mem := store.NewMemoryStore()
		users, messages = mem, mem
	}

	var s hybrid.Suite = native.New()
	if cfg.WebHost {
		s = web.New()
	}

	keys, err := keysvc.New(users, cfg.CacheSize)
	if err != nil {
		if closer != nil {
			closer()
		}
		return nil, err
	}
	send := messagesvc.New(users, messages, keys, s)

	return &Wire{
		Users:    users,
		Messages: messages,
		Keys:     keys,
		Send:     send,
		Suite:    s,
		closer:   closer,
	}, nil
}

// Close releases any store resources the wire owns.
func (w *Wire) Close() error {
	if w.closer != nil {
		return w.closer()
	}
	return nil
}
