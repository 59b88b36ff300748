package models

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Match is a head-to-head contest between two demos with its own vote
// pool and winner.
//
// Lifecycle: a match is created inactive, started (one active match
// per event at a time), and closed, which computes and persists the
// winner. No transition moves a match backward.
type Match struct {
	DefaultModel
	Event        Event     `json:"-"`
	EventID      uuid.UUID
	DemoA        Demo      `json:"-" gorm:"foreignKey:DemoAID"`
	DemoAID      uuid.UUID
	DemoB        Demo      `json:"-" gorm:"foreignKey:DemoBID"`
	DemoBID      uuid.UUID
	RoundType    string     // Free-text label, e.g. "Semi-Final"
	VotingWindow *int       // Suggested voting duration in seconds, not enforced
	IsActive     bool
	StartTime    *time.Time
	EndTime      *time.Time
	Winner       *Demo      `json:"-" gorm:"foreignKey:WinnerID"`
	WinnerID     *uuid.UUID // Set once when voting closes
}

func (m *Match) BeforeSave(_ *gorm.DB) error {
	m.RoundType = strings.TrimSpace(m.RoundType)

	return nil
}

func (m *Match) BeforeCreate(tx *gorm.DB) error {
	_ = m.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Match)
	if toSave.DemoAID == toSave.DemoBID {
		return ErrMatchSameDemo
	}

	err := tx.First(&Event{}, toSave.EventID).Error
	if err != nil {
		return err
	}

	err = tx.First(&Demo{}, toSave.DemoAID).Error
	if err != nil {
		return err
	}

	return tx.First(&Demo{}, toSave.DemoBID).Error
}

// Votes returns all ballots cast for this match.
func (m Match) Votes(db *gorm.DB) ([]Vote, error) {
	var votes []Vote
	err := db.Where("match_id = ?", m.ID).Order("created_at ASC").Find(&votes).Error
	return votes, err
}

// Results tallies the live vote set for the match.
func (m Match) Results(db *gorm.DB) (MatchResult, error) {
	votes, err := m.Votes(db)
	if err != nil {
		return MatchResult{}, err
	}

	return ComputeMatchResult(m, votes), nil
}

// StartMatch transitions a match from created to active and stamps the
// start time.
//
// The transition is guarded twice: the event must not have another
// active match, and the update only applies to a match that has
// neither been started nor closed. A match that lost either check is
// reported, not restarted.
func StartMatch(db *gorm.DB, id uuid.UUID) (Match, error) {
	var match Match

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&match, id).Error
		if err != nil {
			return err
		}

		var active int64
		err = tx.Model(&Match{}).
			Where("event_id = ? AND is_active = ? AND id <> ?", match.EventID, true, id).
			Count(&active).Error
		if err != nil {
			return err
		}

		if active > 0 {
			return ErrAnotherMatchActive
		}

		res := tx.Model(&Match{}).
			Where("id = ? AND is_active = ? AND winner_id IS NULL AND end_time IS NULL", id, false).
			Updates(map[string]any{
				"is_active":  true,
				"start_time": time.Now().In(time.UTC),
			})
		if res.Error != nil {
			return res.Error
		}

		// The row exists but did not match the state condition
		if res.RowsAffected == 0 {
			return ErrMatchNotStartable
		}

		return tx.First(&match, id).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return Match{}, err
	}

	return match, nil
}

// CloseMatchVoting transitions a match from active to closed.
//
// The winner is computed from the vote set at close time and persisted
// on the match. The same scoring runs on every live results read, so
// the persisted winner always equals the last live tally.
func CloseMatchVoting(db *gorm.DB, id uuid.UUID) (Match, error) {
	var match Match

	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&match, id).Error
		if err != nil {
			return err
		}

		if !match.IsActive {
			return ErrMatchNotActive
		}

		votes, err := match.Votes(tx)
		if err != nil {
			return err
		}

		result := ComputeMatchResult(match, votes)

		err = tx.Model(&match).Updates(map[string]any{
			"is_active": false,
			"end_time":  time.Now().In(time.UTC),
			"winner_id": result.WinnerID,
		}).Error
		if err != nil {
			return err
		}

		return tx.First(&match, id).Error
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return Match{}, err
	}

	return match, nil
}

// DeleteMatch removes a match and all votes cast for it.
//
// Votes are deleted with the match so that no ballots reference a
// match that no longer exists.
func DeleteMatch(db *gorm.DB, id uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var match Match
		err := tx.First(&match, id).Error
		if err != nil {
			return err
		}

		err = tx.Where("match_id = ?", match.ID).Delete(&Vote{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&match).Error
	})
}
