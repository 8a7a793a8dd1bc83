package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/claude/fitlog/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// CreateUser inserts a new user. Returns the assigned ID.
func (db *DB) CreateUser(ctx context.Context, username, email, passwordHash string) (int, error) {
	var id int
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		username, email, passwordHash,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting user: %w", err)
	}
	return id, nil
}

// GetUserByUsername looks up a user by username.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.UserRow, error) {
	return db.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE username = $1`, username)
}

// GetUserByEmail looks up a user by email.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.UserRow, error) {
	return db.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE email = $1`, email)
}

// GetUser looks up a user by ID.
func (db *DB) GetUser(ctx context.Context, id int) (*models.UserRow, error) {
	return db.getUser(ctx, `SELECT id, username, email, password_hash, created_at FROM users WHERE id = $1`, id)
}

func (db *DB) getUser(ctx context.Context, query string, arg any) (*models.UserRow, error) {
	var u models.UserRow
	err := db.Pool.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// CreateSession creates a login session for the user and returns its token.
func (db *DB) CreateSession(ctx context.Context, userID int, ttl time.Duration) (uuid.UUID, error) {
	token := uuid.New()
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES ($1, $2, $3)`,
		token, userID, time.Now().Add(ttl),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("inserting session: %w", err)
	}
	return token, nil
}

// GetSessionUser resolves a session token to its user ID. Expired or unknown
// tokens return ErrNotFound.
func (db *DB) GetSessionUser(ctx context.Context, token uuid.UUID) (int, error) {
	var userID int
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id FROM sessions WHERE token = $1 AND expires_at > NOW()`,
		token,
	).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("querying session: %w", err)
	}
	return userID, nil
}

// DeleteSession removes a session, logging the user out.
func (db *DB) DeleteSession(ctx context.Context, token uuid.UUID) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}
