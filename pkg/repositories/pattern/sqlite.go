package pattern

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/luckcraft/wagercore/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite table schema
const createOutcomesTableSQL = `
	CREATE TABLE IF NOT EXISTS outcomes (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		game_id INTEGER NOT NULL,
		bet_amount REAL NOT NULL,
		win BOOLEAN NOT NULL,
		payout REAL NOT NULL,
		probability_used REAL NOT NULL,
		random_value REAL NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_outcomes_game ON outcomes(game_id, seq)`

// SQLiteRepository implements Repository using SQLite. It gives the pattern
// store durability across restarts; callers that want a warm in-memory store
// replay Recent into a MemoryRepository at startup.
type SQLiteRepository struct {
	db       *sql.DB
	capacity int
}

// NewSQLiteRepository creates a new SQLite repository
func NewSQLiteRepository(dbPath string, capacity int) (*SQLiteRepository, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	// Ensure the directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if _, err := db.Exec(createOutcomesTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("error creating outcomes table: %w", err)
	}

	return &SQLiteRepository{db: db, capacity: capacity}, nil
}

// Append inserts an outcome and trims rows beyond the capacity limit inside
// a single transaction, so a failure leaves the store untouched
func (r *SQLiteRepository) Append(ctx context.Context, outcome *entities.Outcome) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.WrapError(entities.ErrDatabaseError, "error starting transaction", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO outcomes (id, game_id, bet_amount, win, payout, probability_used, random_value, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		outcome.ID, outcome.GameID, outcome.BetAmount, outcome.Win,
		outcome.Payout, outcome.ProbabilityUsed, outcome.RandomValue, outcome.Timestamp,
	)
	if err != nil {
		tx.Rollback()
		return entities.WrapError(entities.ErrDatabaseError, "error inserting outcome", err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM outcomes WHERE game_id = ? AND seq NOT IN (
			SELECT seq FROM outcomes WHERE game_id = ? ORDER BY seq DESC LIMIT ?
		)`, outcome.GameID, outcome.GameID, r.capacity)
	if err != nil {
		tx.Rollback()
		return entities.WrapError(entities.ErrDatabaseError, "error trimming outcomes", err)
	}

	if err := tx.Commit(); err != nil {
		return entities.WrapError(entities.ErrDatabaseError, "error committing outcome", err)
	}
	return nil
}

// Recent returns the most recent outcomes for a game in insertion order
func (r *SQLiteRepository) Recent(ctx context.Context, gameID int, limit int) ([]*entities.Outcome, error) {
	if limit <= 0 || limit > r.capacity {
		limit = r.capacity
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, game_id, bet_amount, win, payout, probability_used, random_value, timestamp
		FROM outcomes WHERE game_id = ? ORDER BY seq DESC LIMIT ?`, gameID, limit)
	if err != nil {
		return nil, entities.WrapError(entities.ErrDatabaseError, "error querying outcomes", err)
	}
	defer rows.Close()

	var reversed []*entities.Outcome
	for rows.Next() {
		var o entities.Outcome
		var ts time.Time
		if err := rows.Scan(&o.ID, &o.GameID, &o.BetAmount, &o.Win,
			&o.Payout, &o.ProbabilityUsed, &o.RandomValue, &ts); err != nil {
			return nil, entities.WrapError(entities.ErrDatabaseError, "error scanning outcome", err)
		}
		o.Timestamp = ts
		reversed = append(reversed, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, entities.WrapError(entities.ErrDatabaseError, "error reading outcomes", err)
	}

	// Rows arrive newest first; flip to insertion order
	out := make([]*entities.Outcome, len(reversed))
	for i, o := range reversed {
		out[len(reversed)-1-i] = o
	}
	return out, nil
}

// Count returns the number of retained outcomes for a game
func (r *SQLiteRepository) Count(ctx context.Context, gameID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM outcomes WHERE game_id = ?`, gameID).Scan(&count)
	if err != nil {
		return 0, entities.WrapError(entities.ErrDatabaseError, "error counting outcomes", err)
	}
	return count, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
