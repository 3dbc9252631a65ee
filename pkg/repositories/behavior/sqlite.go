package behavior

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/luckcraft/wagercore/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite table schema. Behavior state is stored as a JSON snapshot per user,
// the same way the rest of the platform persists nested records.
const createBehaviorsTableSQL = `
	CREATE TABLE IF NOT EXISTS player_behaviors (
		user_id TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewSQLiteStore creates a new SQLite behavior store
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec(createBehaviorsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating player_behaviors table: %w", err)
	}

	return &SQLiteStore{
		db:    db,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// userLock returns the mutex serializing read-modify-write for one user
func (s *SQLiteStore) userLock(userID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	return l
}

// Get returns the stored behavior for a user, or nil if none exists
func (s *SQLiteStore) Get(ctx context.Context, userID string) (*entities.PlayerBehavior, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM player_behaviors WHERE user_id = ?`, userID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, entities.WrapError(entities.ErrDatabaseError, "error loading behavior", err)
	}

	var b entities.PlayerBehavior
	if err := json.Unmarshal([]byte(data), &b); err != nil {
		return nil, entities.WrapError(entities.ErrDatabaseError, "error decoding behavior", err)
	}
	return &b, nil
}

// Update applies fn to the user's behavior under a per-user lock and writes
// the result back in one statement
func (s *SQLiteStore) Update(ctx context.Context, userID string, fn func(*entities.PlayerBehavior) error) (*entities.PlayerBehavior, error) {
	l := s.userLock(userID)
	l.Lock()
	defer l.Unlock()

	working, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if working == nil {
		working = &entities.PlayerBehavior{
			UserID:    userID,
			RiskLevel: entities.RiskLevelLow,
		}
	}

	if err := fn(working); err != nil {
		return nil, err
	}

	data, err := json.Marshal(working)
	if err != nil {
		return nil, entities.WrapError(entities.ErrDatabaseError, "error encoding behavior", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO player_behaviors (user_id, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP`,
		userID, string(data))
	if err != nil {
		return nil, entities.WrapError(entities.ErrDatabaseError, "error saving behavior", err)
	}

	return working, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
