package tiertest

import (
	"context"
	"sync"

	"github.com/KirkDiggler/tiertest/internal/models"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
)

// RecordStoreTestSuite holds the behaviour every backend must share. Backend
// suites embed it and set repo in SetupTest.
type RecordStoreTestSuite struct {
	suite.Suite
	repo Repository
	ctx  context.Context
}

func (s *RecordStoreTestSuite) newRecord(gamemode, tier string) *models.TierTestRecord {
	return &models.TierTestRecord{
		IGN:      gofakeit.Username(),
		PlayerID: "112233445566778899",
		Gamemode: gamemode,
		Score:    "3-0",
		Tier:     tier,
		Comments: "clean fights",
		TesterID: "998877665544332211",
	}
}

func (s *RecordStoreTestSuite) insert(rec *models.TierTestRecord) *models.TierTestRecord {
	out, err := s.repo.Insert(s.ctx, &InsertInput{Record: rec})
	s.Require().NoError(err)
	s.Require().NotNil(out.Record)
	return out.Record
}

func (s *RecordStoreTestSuite) TestInsertAndQueryRoundTrip() {
	in := s.newRecord("uhc", "S")
	stored := s.insert(in)

	s.NotZero(stored.ID)
	s.Zero(in.ID, "input record must not be mutated")

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "uhc"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)

	got := out.Records[0]
	s.Equal(stored.ID, got.ID)
	s.Equal(in.IGN, got.IGN)
	s.Equal(in.PlayerID, got.PlayerID)
	s.Equal(in.Gamemode, got.Gamemode)
	s.Equal(in.Score, got.Score)
	s.Equal(in.Tier, got.Tier)
	s.Equal(in.Comments, got.Comments)
	s.Equal(in.TesterID, got.TesterID)
}

func (s *RecordStoreTestSuite) TestIDsIncreaseAndQueryKeepsInsertOrder() {
	first := s.insert(s.newRecord("uhc", "B"))
	second := s.insert(s.newRecord("uhc", "S"))
	third := s.insert(s.newRecord("uhc", "A"))

	s.Less(first.ID, second.ID)
	s.Less(second.ID, third.ID)

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "uhc"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 3)
	s.Equal([]int64{first.ID, second.ID, third.ID}, []int64{out.Records[0].ID, out.Records[1].ID, out.Records[2].ID})
}

func (s *RecordStoreTestSuite) TestQueryFiltersByGamemode() {
	s.insert(s.newRecord("uhc", "S"))
	s.insert(s.newRecord("nodebuff", "A"))
	s.insert(s.newRecord("uhc", "B"))

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "nodebuff"})
	s.Require().NoError(err)
	s.Require().Len(out.Records, 1)
	s.Equal("A", out.Records[0].Tier)
}

func (s *RecordStoreTestSuite) TestQueryUnknownGamemodeIsEmpty() {
	s.insert(s.newRecord("uhc", "S"))

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "bedwars"})
	s.Require().NoError(err)
	s.NotNil(out.Records)
	s.Empty(out.Records)
}

func (s *RecordStoreTestSuite) TestSamePlayerKeepsHistory() {
	first := s.newRecord("uhc", "B")
	second := s.newRecord("uhc", "A")
	second.IGN = first.IGN
	s.insert(first)
	s.insert(second)

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "uhc"})
	s.Require().NoError(err)
	s.Len(out.Records, 2)
}

func (s *RecordStoreTestSuite) TestConcurrentInsertsAreAllKept() {
	const writers = 25

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[int64]bool, writers)
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := s.repo.Insert(s.ctx, &InsertInput{Record: s.newRecord("uhc", "A")})
			if !s.NoError(err) {
				return
			}
			mu.Lock()
			ids[out.Record.ID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	s.Len(ids, writers, "every insert must get a distinct id")

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "uhc"})
	s.Require().NoError(err)
	s.Len(out.Records, writers)
}

func (s *RecordStoreTestSuite) TestInitializeIsIdempotent() {
	s.insert(s.newRecord("uhc", "S"))

	s.Require().NoError(s.repo.Initialize(s.ctx))
	s.Require().NoError(s.repo.Initialize(s.ctx))

	out, err := s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{Gamemode: "uhc"})
	s.Require().NoError(err)
	s.Len(out.Records, 1)
}

func (s *RecordStoreTestSuite) TestInputValidation() {
	_, err := s.repo.Insert(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)

	_, err = s.repo.Insert(s.ctx, &InsertInput{})
	s.ErrorIs(err, ErrNilInput)

	_, err = s.repo.QueryByGamemode(s.ctx, &QueryByGamemodeInput{})
	s.ErrorIs(err, ErrEmptyGamemode)
}
