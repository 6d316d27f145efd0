package tiertest

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/tiertest/internal/database"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
)

type SQLiteRepositoryTestSuite struct {
	RecordStoreTestSuite
	path string
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "tiertests.db")

	db, err := database.Open(s.path, zerolog.Nop())
	s.Require().NoError(err)

	repo, err := NewSQLite(&SQLiteConfig{DB: db, Logger: zerolog.Nop()})
	s.Require().NoError(err)
	s.Require().NoError(repo.Initialize(s.ctx))
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	s.repo.Close()
}

func TestSQLiteRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) TestMigrationOutputGoesToLogger() {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	db, err := database.Open(filepath.Join(s.T().TempDir(), "fresh.db"), zerolog.Nop())
	s.Require().NoError(err)
	defer db.Close()

	repo, err := NewSQLite(&SQLiteConfig{DB: db, Logger: logger})
	s.Require().NoError(err)
	s.Require().NoError(repo.Initialize(s.ctx))

	s.Contains(buf.String(), `"component":"goose"`)
	s.Contains(buf.String(), "00001_create_tiertests.sql")
}

func (s *SQLiteRepositoryTestSuite) TestRecordsSurviveReopen() {
	stored := s.insert(s.newRecord("uhc", "S"))
	s.Require().NoError(s.repo.Close())

	repo, err := Open(s.ctx, &OpenInput{Location: s.path, Logger: zerolog.Nop()})
	s.Require().NoError(err)
	s.repo = repo

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "uhc"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.Equal(stored.ID, out.Records[0].ID)
}

func (s *SQLiteRepositoryTestSuite) TestClosedDatabaseIsStorageError() {
	s.Require().NoError(s.repo.Close())

	_, err := s.repo.Insert(s.ctx, &InsertInput{Record: s.newRecord("uhc", "S")})
	s.Require().Error(err)

	var storageErr *StorageError
	s.Require().True(errors.As(err, &storageErr))
	s.Equal("insert", storageErr.Op)

	_, err = s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "uhc"})
	s.ErrorAs(err, &storageErr)
}

func (s *SQLiteRepositoryTestSuite) TestSchemaColumns() {
	repo := s.repo.(*sqliteRepository)

	rows, err := repo.db.QueryContext(s.ctx, "SELECT name, type FROM pragma_table_info('tiertests') ORDER BY cid")
	s.Require().NoError(err)
	defer rows.Close()

	var columns [][2]string
	for rows.Next() {
		var name, typ string
		s.Require().NoError(rows.Scan(&name, &typ))
		columns = append(columns, [2]string{name, typ})
	}
	s.Require().NoError(rows.Err())

	s.Equal([][2]string{
		{"id", "INTEGER"},
		{"ign", "TEXT"},
		{"user_id", "INTEGER"},
		{"gamemode", "TEXT"},
		{"score", "TEXT"},
		{"tier", "TEXT"},
		{"comments", "TEXT"},
		{"tester_id", "TEXT"},
	}, columns)
}

func TestNewSQLiteValidatesConfig(t *testing.T) {
	_, err := NewSQLite(nil)
	if !errors.Is(err, ErrNilConfig) {
		t.Fatalf("expected ErrNilConfig, got %v", err)
	}
	_, err = NewSQLite(&SQLiteConfig{})
	if !errors.Is(err, ErrNilDB) {
		t.Fatalf("expected ErrNilDB, got %v", err)
	}
}
