package tiertest

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// goose keeps its base FS, dialect and logger in package globals
var gooseMu sync.Mutex

const (
	insertRecordQuery = `
INSERT INTO tiertests (ign, user_id, gamemode, score, tier, comments, tester_id)
VALUES (?, ?, ?, ?, ?, ?, ?)`

	selectByGamemodeQuery = `
SELECT id, ign, user_id, gamemode, score, tier, comments, tester_id
FROM tiertests
WHERE gamemode = ?
ORDER BY id`
)

// SQLiteConfig holds configuration for the SQLite record store
type SQLiteConfig struct {
	DB     *sql.DB
	Logger zerolog.Logger
}

type sqliteRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewSQLite creates a SQLite-backed record store
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DB == nil {
		return nil, ErrNilDB
	}

	return &sqliteRepository{
		db:     cfg.DB,
		logger: cfg.Logger,
	}, nil
}

// Initialize runs the embedded migrations; already-applied ones are skipped
func (r *sqliteRepository) Initialize(ctx context.Context) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(newGooseLogger(r.logger))
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, r.db, "migrations"); err != nil {
		return storageError("initialize", fmt.Errorf("failed to run migrations: %w", err))
	}

	r.logger.Info().Msg("tiertests schema ready")
	return nil
}

// Insert stores the record in its own transaction
func (r *sqliteRepository) Insert(ctx context.Context, input *InsertInput) (*InsertOutput, error) {
	if input == nil || input.Record == nil {
		return nil, ErrNilInput
	}
	rec := *input.Record

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageError("insert", fmt.Errorf("failed to begin transaction: %w", err))
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertRecordQuery,
		rec.IGN, rec.PlayerID, rec.Gamemode, rec.Score, rec.Tier, rec.Comments, rec.TesterID)
	if err != nil {
		return nil, storageError("insert", fmt.Errorf("failed to insert record: %w", err))
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, storageError("insert", fmt.Errorf("failed to read record id: %w", err))
	}

	if err := tx.Commit(); err != nil {
		return nil, storageError("insert", fmt.Errorf("failed to commit record: %w", err))
	}

	rec.ID = id
	r.logger.Debug().
		Int64("id", id).
		Str("gamemode", rec.Gamemode).
		Str("tier", rec.Tier).
		Msg("tier test recorded")

	return &InsertOutput{Record: &rec}, nil
}

// QueryByGamemode reads all records for a gamemode
func (r *sqliteRepository) QueryByGamemode(ctx context.Context, input *QueryByGamemodeInput) (*QueryByGamemodeOutput, error) {
	if input == nil || input.Gamemode == "" {
		return nil, ErrEmptyGamemode
	}

	rows, err := r.db.QueryContext(ctx, selectByGamemodeQuery, input.Gamemode)
	if err != nil {
		return nil, storageError("query", fmt.Errorf("failed to query records: %w", err))
	}
	defer rows.Close()

	records := []*models.TierTestRecord{}
	for rows.Next() {
		var (
			rec                                  models.TierTestRecord
			ign, score, tier, comments, testerID sql.NullString
			playerID                             sql.NullString
		)
		if err := rows.Scan(&rec.ID, &ign, &playerID, &rec.Gamemode, &score, &tier, &comments, &testerID); err != nil {
			return nil, storageError("query", fmt.Errorf("failed to scan record: %w", err))
		}
		rec.IGN = ign.String
		rec.PlayerID = playerID.String
		rec.Score = score.String
		rec.Tier = tier.String
		rec.Comments = comments.String
		rec.TesterID = testerID.String
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("query", fmt.Errorf("failed to read records: %w", err))
	}

	return &QueryByGamemodeOutput{Records: records}, nil
}

// Close closes the database
func (r *sqliteRepository) Close() error {
	return r.db.Close()
}
