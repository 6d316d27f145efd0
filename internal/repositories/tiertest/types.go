package tiertest

import "github.com/KirkDiggler/tiertest/internal/models"

// InsertInput contains the record to insert; Record.ID is ignored
type InsertInput struct {
	Record *models.TierTestRecord
}

// InsertOutput contains the stored record with its new ID
type InsertOutput struct {
	Record *models.TierTestRecord
}

// QueryByGamemodeInput contains parameters for querying records
type QueryByGamemodeInput struct {
	Gamemode string
}

// QueryByGamemodeOutput contains the matching records; empty, not nil, when none match
type QueryByGamemodeOutput struct {
	Records []*models.TierTestRecord
}
