package models

// DefaultComments is stored when a tester leaves no comments
const DefaultComments = "No comments"

// TierTestRecord is one submitted tier test result. Records are append-only;
// a correction is a new record.
type TierTestRecord struct {
	// ID is assigned by the record store on insert
	ID int64 `json:"id"`

	// IGN is the in-game name of the tested player
	IGN string `json:"ign"`

	// PlayerID is the Discord user ID of the tested player
	PlayerID string `json:"user_id"`

	// Gamemode is the configured gamemode value the test was for
	Gamemode string `json:"gamemode"`

	// Score is the free-text result, e.g. "3-0"
	Score string `json:"score"`

	// Tier is the configured tier label achieved
	Tier string `json:"tier"`

	// Comments are the tester's notes
	Comments string `json:"comments"`

	// TesterID is the Discord user ID of the tester who submitted the result
	TesterID string `json:"tester_id"`
}
