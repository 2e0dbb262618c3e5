package db_models

import "time"

type Plan string

const (
	PlanFree    Plan = "free"
	PlanPro     Plan = "pro"
	PlanProPlus Plan = "proplus"
)

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	Name         string
	PasswordHash string

	// Google identity + offline grant, absent for password-only accounts.
	GoogleID           *string `gorm:"uniqueIndex"`
	GoogleAccessToken  *string
	GoogleRefreshToken *string

	Plan           Plan      `gorm:"type:text;default:'free';index"`
	UsageCount     int       `gorm:"not null;default:0"`
	UsageResetDate time.Time `gorm:"not null"`

	SpreadsheetID   *string
	SpreadsheetURL  *string
	SheetsConnected bool `gorm:"not null;default:false"`

	Bets []Bet
}
