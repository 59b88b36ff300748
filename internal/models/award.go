package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VotingMode determines how attendees vote within an award.
type VotingMode string

const (
	// VotingModeSingle is demo-night mode, one selected demo per attendee.
	VotingModeSingle VotingMode = "single"
	// VotingModeInvestment is budget mode, a notional budget allocated
	// across demos in fixed increments.
	VotingModeInvestment VotingMode = "investment"
)

func (m VotingMode) Valid() bool {
	return m == VotingModeSingle || m == VotingModeInvestment
}

// Award represents a named voting category within an event,
// e.g. "Best Overall" or "Crowd Favorite".
type Award struct {
	DefaultModel
	Event      Event     `json:"-"`
	EventID    uuid.UUID `gorm:"uniqueIndex:award_name_event_id"`
	Name       string    `gorm:"uniqueIndex:award_name_event_id"`
	Index      int
	VotingMode VotingMode
}

func (a *Award) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)

	if a.VotingMode == "" {
		a.VotingMode = VotingModeSingle
	}

	if !a.VotingMode.Valid() {
		return ErrVotingModeInvalid
	}

	return nil
}

func (a *Award) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Award)
	return tx.First(&Event{}, toSave.EventID).Error
}
