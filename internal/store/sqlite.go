package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kumaruseru/crown-messaging/internal/domain"
)

// SQLiteStore persists users and envelopes in a SQLite database. It backs
// the exchange server's durable mode.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and bootstraps) a SQLite store at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	s := &SQLiteStore{db: db}
	if err := s.bootstrap(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

func (s *SQLiteStore) bootstrap() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS user_keys (
			user_id      TEXT PRIMARY KEY,
			public_key   BLOB NOT NULL,
			private_key  BLOB NOT NULL,
			protection   TEXT NOT NULL,
			salt         BLOB,
			iv           BLOB,
			fingerprint  TEXT NOT NULL,
			generated_at INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS envelopes (
			id                   TEXT PRIMARY KEY,
			sender_id            TEXT NOT NULL,
			receiver_id          TEXT NOT NULL,
			session_id           TEXT NOT NULL,
			ciphertext           BLOB NOT NULL,
			iv                   BLOB NOT NULL,
			auth_tag             BLOB NOT NULL,
			sender_wrapped_key   BLOB NOT NULL,
			receiver_wrapped_key BLOB NOT NULL,
			plaintext_hash       BLOB NOT NULL,
			message_type         TEXT NOT NULL,
			reply_to             TEXT,
			sent_at              INTEGER NOT NULL,
			read_at              INTEGER,
			soft_deleted         INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_envelopes_session
			ON envelopes (session_id, sent_at);`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("bootstrap schema: %w", err)
		}
	}
	return nil
}

// GetUser returns the stored key pair for a user.
func (s *SQLiteStore) GetUser(
	ctx context.Context,
	id domain.UserID,
) (domain.UserKeyPair, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT user_id, public_key, private_key, protection, salt, iv, fingerprint, generated_at
		FROM user_keys WHERE user_id = ?`, id.String())

	var (
		pair        domain.UserKeyPair
		userID      string
		protection  string
		fingerprint string
		generatedAt int64
	)
	err := row.Scan(
		&userID, &pair.PublicKey, &pair.PrivateKey,
		&protection, &pair.Salt, &pair.IV, &fingerprint, &generatedAt,
	)
	if err == sql.ErrNoRows {
		return domain.UserKeyPair{}, false, nil
	}
	if err != nil {
		return domain.UserKeyPair{}, false, fmt.Errorf("get user %q: %w", id, err)
	}
	pair.UserID = domain.UserID(userID)
	pair.Protection = domain.KeyProtection(protection)
	pair.Fingerprint = domain.Fingerprint(fingerprint)
	pair.GeneratedAt = time.Unix(generatedAt, 0).UTC()
	return pair, true, nil
}

// SaveUserKeys stores or replaces a user's key record.
func (s *SQLiteStore) SaveUserKeys(ctx context.Context, keys domain.UserKeyPair) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_keys
			(user_id, public_key, private_key, protection, salt, iv, fingerprint, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			public_key = excluded.public_key,
			private_key = excluded.private_key,
			protection = excluded.protection,
			salt = excluded.salt,
			iv = excluded.iv,
			fingerprint = excluded.fingerprint,
			generated_at = excluded.generated_at`,
		keys.UserID.String(), keys.PublicKey, keys.PrivateKey,
		string(keys.Protection), keys.Salt, keys.IV,
		keys.Fingerprint.String(), keys.GeneratedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save keys for %q: %w", keys.UserID, err)
	}
	return nil
}

// SaveEnvelope appends an envelope to its session.
func (s *SQLiteStore) SaveEnvelope(ctx context.Context, env domain.MessageEnvelope) error {
	var readAt interface{}
	if env.ReadAt != nil {
		readAt = env.ReadAt.Unix()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO envelopes
			(id, sender_id, receiver_id, session_id,
			 ciphertext, iv, auth_tag, sender_wrapped_key, receiver_wrapped_key,
			 plaintext_hash, message_type, reply_to, sent_at, read_at, soft_deleted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		env.ID.String(), env.SenderID.String(), env.ReceiverID.String(), env.SessionID.String(),
		env.Ciphertext, env.IV, env.AuthTag, env.SenderWrappedKey, env.ReceiverWrappedKey,
		env.PlaintextHash, string(env.MessageType), env.ReplyTo.String(),
		env.SentAt.Unix(), readAt, boolToInt(env.SoftDeleted),
	)
	if err != nil {
		return fmt.Errorf("save envelope %q: %w", env.ID, err)
	}
	return nil
}

// EnvelopesBySession lists a page of a session in send order.
func (s *SQLiteStore) EnvelopesBySession(
	ctx context.Context,
	session domain.SessionID,
	page domain.Page,
) ([]domain.MessageEnvelope, error) {
	limit := page.Limit
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sender_id, receiver_id, session_id,
		       ciphertext, iv, auth_tag, sender_wrapped_key, receiver_wrapped_key,
		       plaintext_hash, message_type, reply_to, sent_at, read_at, soft_deleted
		FROM envelopes
		WHERE session_id = ?
		ORDER BY sent_at ASC, id ASC
		LIMIT ? OFFSET ?`, session.String(), limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("list session %q: %w", session, err)
	}
	defer rows.Close()

	var out []domain.MessageEnvelope
	for rows.Next() {
		env, err := scanEnvelope(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, env)
	}
	return out, rows.Err()
}

// MarkRead stamps every unread envelope addressed to viewer in the session.
func (s *SQLiteStore) MarkRead(
	ctx context.Context,
	session domain.SessionID,
	viewer domain.UserID,
	at time.Time,
) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE envelopes SET read_at = ?
		WHERE session_id = ? AND receiver_id = ? AND read_at IS NULL`,
		at.Unix(), session.String(), viewer.String(),
	)
	if err != nil {
		return fmt.Errorf("mark read %q: %w", session, err)
	}
	return nil
}

// SoftDelete flags an envelope deleted; only the original sender may.
func (s *SQLiteStore) SoftDelete(
	ctx context.Context,
	id domain.EnvelopeID,
	requester domain.UserID,
) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE envelopes SET soft_deleted = 1
		WHERE id = ? AND sender_id = ?`,
		id.String(), requester.String(),
	)
	if err != nil {
		return fmt.Errorf("soft delete %q: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish an unknown envelope from a non-sender request.
		var exists int
		row := s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM envelopes WHERE id = ?`, id.String())
		if err := row.Scan(&exists); err != nil {
			return err
		}
		if exists == 0 {
			return ErrEnvelopeNotFound
		}
		return ErrNotSender
	}
	return nil
}

func scanEnvelope(rows *sql.Rows) (domain.MessageEnvelope, error) {
	var (
		env                          domain.MessageEnvelope
		id, sender, receiver, sessID string
		messageType, replyTo         string
		sentAt                       int64
		readAt                       sql.NullInt64
		softDeleted                  int
	)
	err := rows.Scan(
		&id, &sender, &receiver, &sessID,
		&env.Ciphertext, &env.IV, &env.AuthTag,
		&env.SenderWrappedKey, &env.ReceiverWrappedKey,
		&env.PlaintextHash, &messageType, &replyTo,
		&sentAt, &readAt, &softDeleted,
	)
	if err != nil {
		return domain.MessageEnvelope{}, fmt.Errorf("scan envelope: %w", err)
	}
	env.ID = domain.EnvelopeID(id)
	env.SenderID = domain.UserID(sender)
	env.ReceiverID = domain.UserID(receiver)
	env.SessionID = domain.SessionID(sessID)
	env.MessageType = domain.MessageType(messageType)
	env.ReplyTo = domain.EnvelopeID(replyTo)
	env.SentAt = time.Unix(sentAt, 0).UTC()
	if readAt.Valid {
		stamp := time.Unix(readAt.Int64, 0).UTC()
		env.ReadAt = &stamp
	}
	env.SoftDeleted = softDeleted != 0
	return env, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Compile-time assertions that SQLiteStore implements both store contracts.
var (
	_ domain.UserStore    = (*SQLiteStore)(nil)
	_ domain.MessageStore = (*SQLiteStore)(nil)
)
