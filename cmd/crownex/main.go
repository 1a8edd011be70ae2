// Command crownex runs a crown exchange server: the HTTP surface that stores
// user key records and message envelopes for remote hosts. The exchange only
// ever sees ciphertext and public key material.
package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/kumaruseru/crown-messaging/internal/app"
	"github.com/kumaruseru/crown-messaging/internal/domain"
	"github.com/kumaruseru/crown-messaging/internal/store"
)

type stores interface {
	domain.UserStore
	domain.MessageStore
}

type server struct {
	db stores
}

func main() {
	cfg := app.FromEnv()

	var db stores
	if cfg.DBPath != "" {
		sq, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		defer sq.Close()
		db = sq
		log.Printf("exchange storing to %s", cfg.DBPath)
	} else {
		db = store.NewMemoryStore()
		log.Print("exchange storing in memory")
	}

	s := &server{db: db}

	r := mux.NewRouter()
	r.HandleFunc("/keys", s.saveKeys).Methods(http.MethodPost)
	r.HandleFunc("/keys/{user}", s.publicKey).Methods(http.MethodGet)
	r.HandleFunc("/keys/{user}/full", s.fullKeys).Methods(http.MethodGet)
	r.HandleFunc("/envelopes", s.saveEnvelope).Methods(http.MethodPost)
	r.HandleFunc("/envelopes/{id}/delete", s.deleteEnvelope).Methods(http.MethodPost)
	r.HandleFunc("/sessions/{sid}/envelopes", s.listSession).Methods(http.MethodGet)
	r.HandleFunc("/sessions/{sid}/read", s.markRead).Methods(http.MethodPost)

	addr := os.Getenv("CROWN_EXCHANGE_BIND")
	if addr == "" {
		addr = ":8470"
	}
	log.Printf("exchange listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}

func (s *server) saveKeys(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var pair domain.UserKeyPair
	if err := json.NewDecoder(r.Body).Decode(&pair); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if pair.UserID == "" || len(pair.PublicKey) == 0 {
		http.Error(w, "userId and publicKey are required", http.StatusBadRequest)
		return
	}
	if err := s.db.SaveUserKeys(r.Context(), pair); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("stored keys for %s (%s)", pair.UserID, pair.Fingerprint)
	w.WriteHeader(http.StatusNoContent)
}

// publicKey serves the shareable half of a key record, for peers.
func (s *server) publicKey(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(mux.Vars(r)["user"])
	pair, ok, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}
	writeJSON(w, domain.PublicKeyRecord{
		UserID:      pair.UserID,
		PublicKey:   pair.PublicKey,
		Fingerprint: pair.Fingerprint,
	})
}

// fullKeys serves the complete record, including the protected private key
// blob, for the record's owner syncing a new device.
func (s *server) fullKeys(w http.ResponseWriter, r *http.Request) {
	id := domain.UserID(mux.Vars(r)["user"])
	pair, ok, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		http.Error(w, "unknown user", http.StatusNotFound)
		return
	}
	writeJSON(w, pair)
}

func (s *server) saveEnvelope(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	var env domain.MessageEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if env.ID == "" || env.SessionID == "" {
		http.Error(w, "id and sessionId are required", http.StatusBadRequest)
		return
	}
	if err := s.db.SaveEnvelope(r.Context(), env); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) listSession(w http.ResponseWriter, r *http.Request) {
	session := domain.SessionID(mux.Vars(r)["sid"])
	page := domain.Page{
		Offset: intQuery(r, "offset"),
		Limit:  intQuery(r, "limit"),
	}
	envs, err := s.db.EnvelopesBySession(r.Context(), session, page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if envs == nil {
		envs = []domain.MessageEnvelope{}
	}
	writeJSON(w, envs)
}

func (s *server) markRead(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	session := domain.SessionID(mux.Vars(r)["sid"])
	var req struct {
		Viewer domain.UserID `json:"viewer"`
		At     time.Time     `json:"at"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.At.IsZero() {
		req.At = time.Now().UTC()
	}
	if err := s.db.MarkRead(r.Context(), session, req.Viewer, req.At); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) deleteEnvelope(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()
	id := domain.EnvelopeID(mux.Vars(r)["id"])
	var req struct {
		Requester domain.UserID `json:"requester"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err := s.db.SoftDelete(r.Context(), id, req.Requester)
	switch {
	case errors.Is(err, store.ErrEnvelopeNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, store.ErrNotSender):
		http.Error(w, err.Error(), http.StatusForbidden)
	case err != nil:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func intQuery(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
