package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

// Client talks to a crown exchange server over HTTP. It satisfies both store
// contracts, so a backend host can point the services at a remote exchange
// instead of a local database.
type Client struct {
	Base string
	HTTP *http.Client
}

// NewClient returns a Client for the exchange at base, e.g.
// "http://localhost:8470".
func NewClient(base string) *Client {
	return &Client{Base: base, HTTP: http.DefaultClient}
}

// GetUser fetches a user's full key record. A 404 means the user has never
// initialized encryption.
func (c *Client) GetUser(
	ctx context.Context,
	id domain.UserID,
) (domain.UserKeyPair, bool, error) {
	var pair domain.UserKeyPair
	found, err := c.getJSON(ctx, "/keys/"+url.PathEscape(id.String())+"/full", &pair)
	if err != nil {
		return domain.UserKeyPair{}, false, err
	}
	return pair, found, nil
}

// SaveUserKeys uploads a user's key record to the exchange.
func (c *Client) SaveUserKeys(ctx context.Context, keys domain.UserKeyPair) error {
	return c.post(ctx, "/keys", keys, nil)
}

// SaveEnvelope appends an envelope on the exchange.
func (c *Client) SaveEnvelope(ctx context.Context, env domain.MessageEnvelope) error {
	return c.post(ctx, "/envelopes", env, nil)
}

// EnvelopesBySession lists a page of a session in send order.
func (c *Client) EnvelopesBySession(
	ctx context.Context,
	session domain.SessionID,
	page domain.Page,
) ([]domain.MessageEnvelope, error) {
	path := "/sessions/" + url.PathEscape(session.String()) + "/envelopes"
	q := url.Values{}
	if page.Offset > 0 {
		q.Set("offset", strconv.Itoa(page.Offset))
	}
	if page.Limit > 0 {
		q.Set("limit", strconv.Itoa(page.Limit))
	}
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var envs []domain.MessageEnvelope
	if _, err := c.getJSON(ctx, path, &envs); err != nil {
		return nil, err
	}
	return envs, nil
}

// MarkRead stamps every unread envelope addressed to viewer in the session.
func (c *Client) MarkRead(
	ctx context.Context,
	session domain.SessionID,
	viewer domain.UserID,
	at time.Time,
) error {
	return c.post(ctx, "/sessions/"+url.PathEscape(session.String())+"/read", struct {
		Viewer domain.UserID `json:"viewer"`
		At     time.Time     `json:"at"`
	}{Viewer: viewer, At: at}, nil)
}

// SoftDelete asks the exchange to flag an envelope deleted.
func (c *Client) SoftDelete(
	ctx context.Context,
	id domain.EnvelopeID,
	requester domain.UserID,
) error {
	return c.post(ctx, "/envelopes/"+url.PathEscape(id.String())+"/delete", struct {
		Requester domain.UserID `json:"requester"`
	}{Requester: requester}, nil)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("exchange post %s: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

// getJSON returns found=false on a 404 so callers can distinguish absence
// from failure.
func (c *Client) getJSON(ctx context.Context, path string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode/100 != 2 {
		return false, fmt.Errorf("exchange get %s: %s", path, resp.Status)
	}
	return true, json.NewDecoder(resp.Body).Decode(out)
}

var (
	_ domain.UserStore    = (*Client)(nil)
	_ domain.MessageStore = (*Client)(nil)
)
