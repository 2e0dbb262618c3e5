package db_models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BetStatus string

const (
	BetStatusPending   BetStatus = "pending"
	BetStatusWon       BetStatus = "won"
	BetStatusLost      BetStatus = "lost"
	BetStatusVoid      BetStatus = "void"
	BetStatusCashedOut BetStatus = "cashed_out"
)

// Bet is one extracted wagering record. Odds, stake and potential return
// keep the original string form from the slip; nothing here is recomputed
// after the row is written.
type Bet struct {
	BaseModel
	UserID uuid.UUID `gorm:"index;not null"`

	Teams           string
	Sport           string
	League          string
	BetType         string
	Selection       string
	Odds            string
	Stake           string
	PotentialReturn string
	Bookmaker       string
	Status          BetStatus `gorm:"type:text;default:'pending'"`
	Date            string
	Confidence      string
	Notes           string

	// Raw model reply, kept for later re-normalization or debugging.
	RawExtraction datatypes.JSON `gorm:"type:jsonb;default:'{}'"`

	SyncedToSheets bool      `gorm:"not null;default:false"`
	ProcessedAt    time.Time `gorm:"index;not null"`

	User User `gorm:"foreignKey:UserID"`
}
