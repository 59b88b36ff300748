package models

import (
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TotalBudget is the notional amount every attendee may allocate
// across the demos of one investment award, in whole dollars.
var TotalBudget = decimal.NewFromInt(100000)

// BudgetIncrement is the granularity of allocations.
var BudgetIncrement = decimal.NewFromInt(1000)

// VoteType classifies a single ballot. Judge votes carry half of the
// weight in match scoring.
type VoteType string

const (
	VoteTypeAudience VoteType = "audience"
	VoteTypeJudge    VoteType = "judge"
)

func (t VoteType) Valid() bool {
	return t == VoteTypeAudience || t == VoteTypeJudge
}

// Vote is a ballot cast by one attendee toward one demo within one
// award, optionally tied to a match.
//
// In investment mode, Amount holds the dollars allocated to the demo.
// In single-selection mode, Amount is nil and at most one row exists
// per (event, attendee, award).
type Vote struct {
	DefaultModel
	Event      Event     `json:"-"`
	EventID    uuid.UUID `gorm:"uniqueIndex:vote_ballot"`
	Attendee   Attendee  `json:"-"`
	AttendeeID uuid.UUID `gorm:"uniqueIndex:vote_ballot"`
	Award      Award     `json:"-"`
	AwardID    uuid.UUID `gorm:"uniqueIndex:vote_ballot"`
	Demo       Demo      `json:"-"`
	DemoID     uuid.UUID `gorm:"uniqueIndex:vote_ballot"`
	Amount     *decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Match      *Match           `json:"-"`
	MatchID    *uuid.UUID
	Type       VoteType
}

func (v *Vote) BeforeSave(_ *gorm.DB) error {
	if v.Type == "" {
		v.Type = VoteTypeAudience
	}

	if !v.Type.Valid() {
		return ErrVoteTypeInvalid
	}

	return v.validateAmount()
}

// validateAmount enforces the increment rules. The budget cap itself
// is enforced in UpsertVote since it spans multiple rows.
func (v *Vote) validateAmount() error {
	if v.Amount == nil {
		return nil
	}

	if v.Amount.IsNegative() {
		return ErrAmountNegative
	}

	if !v.Amount.Mod(BudgetIncrement).IsZero() {
		return ErrAmountNotIncrement
	}

	return nil
}

// VoteRequest carries all values for one upsert of a ballot.
//
// A nil DemoID clears the attendee's ballot for the award. A nil
// Amount selects single-selection semantics, a zero Amount removes the
// allocation for the demo.
type VoteRequest struct {
	EventID    uuid.UUID
	AttendeeID uuid.UUID
	AwardID    uuid.UUID
	DemoID     *uuid.UUID
	Amount     *decimal.Decimal
	MatchID    *uuid.UUID
	Type       VoteType
}

// UpsertVote creates, updates or deletes the ballot described by the
// request and enforces the per-award budget.
//
// All reads and the final write run in one serializable transaction so
// that two concurrent allocations to different demos of the same award
// cannot both pass the budget check.
//
// The returned vote is nil when the request cleared a ballot.
func UpsertVote(db *gorm.DB, request VoteRequest) (*Vote, error) {
	if request.Type == "" {
		request.Type = VoteTypeAudience
	}

	if !request.Type.Valid() {
		return nil, ErrVoteTypeInvalid
	}

	vote := Vote{
		EventID:    request.EventID,
		AttendeeID: request.AttendeeID,
		AwardID:    request.AwardID,
		Amount:     request.Amount,
		MatchID:    request.MatchID,
		Type:       request.Type,
	}

	// Reject malformed amounts before touching the database
	if err := vote.validateAmount(); err != nil {
		return nil, err
	}

	cleared := false
	err := db.Transaction(func(tx *gorm.DB) error {
		// No selection: remove the ballot for this award entirely.
		// Deleting a ballot that does not exist is a no-op.
		if request.DemoID == nil {
			cleared = true
			return tx.Where(
				"event_id = ? AND attendee_id = ? AND award_id = ?",
				request.EventID, request.AttendeeID, request.AwardID,
			).Delete(&Vote{}).Error
		}

		vote.DemoID = *request.DemoID

		if request.MatchID != nil {
			err := vote.checkMatch(tx, *request.MatchID)
			if err != nil {
				return err
			}
		}

		// A zero amount removes the allocation for this demo
		if request.Amount != nil && request.Amount.IsZero() {
			cleared = true
			return tx.Where(
				"event_id = ? AND attendee_id = ? AND award_id = ? AND demo_id = ?",
				request.EventID, request.AttendeeID, request.AwardID, vote.DemoID,
			).Delete(&Vote{}).Error
		}

		if request.Amount == nil {
			// Single selection: switching the selection replaces the
			// previous ballot for the award
			err := tx.Where(
				"event_id = ? AND attendee_id = ? AND award_id = ? AND demo_id <> ?",
				request.EventID, request.AttendeeID, request.AwardID, vote.DemoID,
			).Delete(&Vote{}).Error
			if err != nil {
				return err
			}
		} else {
			err := checkBudget(tx, request)
			if err != nil {
				return err
			}
		}

		var existing Vote
		err := tx.Where(Vote{
			EventID:    request.EventID,
			AttendeeID: request.AttendeeID,
			AwardID:    request.AwardID,
			DemoID:     vote.DemoID,
		}).First(&existing).Error

		if err == nil {
			vote.DefaultModel = existing.DefaultModel
			return tx.Model(&existing).Updates(map[string]any{
				"amount":   vote.Amount,
				"match_id": vote.MatchID,
				"type":     vote.Type,
			}).Error
		}

		if errors.Is(err, ErrResourceNotFound) {
			// A concurrent create for the same key loses the race at
			// the unique index and surfaces ErrVoteExists
			return tx.Create(&vote).Error
		}

		return err
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return nil, err
	}

	if cleared {
		return nil, nil
	}

	return &vote, nil
}

// checkMatch verifies that the vote targets an active match and one of
// its two sides.
func (v *Vote) checkMatch(tx *gorm.DB, matchID uuid.UUID) error {
	var match Match
	err := tx.First(&match, matchID).Error
	if err != nil {
		return err
	}

	if !match.IsActive {
		return ErrMatchNotActive
	}

	if v.DemoID != match.DemoAID && v.DemoID != match.DemoBID {
		return ErrVoteDemoNotInMatch
	}

	return nil
}

// checkBudget verifies that the requested allocation still fits into
// the attendee's budget for the award.
//
// The allocation being replaced is excluded from the sum so that
// raising or lowering an existing allocation is judged against the
// budget headroom, not double-counted.
func checkBudget(tx *gorm.DB, request VoteRequest) error {
	var allocated decimal.NullDecimal

	err := tx.Model(&Vote{}).
		Where(
			"event_id = ? AND attendee_id = ? AND award_id = ? AND demo_id <> ?",
			request.EventID, request.AttendeeID, request.AwardID, *request.DemoID,
		).
		Select("SUM(amount)").
		Row().
		Scan(&allocated)
	if err != nil {
		return err
	}

	remaining := TotalBudget.Sub(allocated.Decimal)
	if request.Amount.GreaterThan(remaining) {
		return BudgetExceededError{Remaining: remaining}
	}

	return nil
}

// Votes returns all ballots matching the filter vote.
func Votes(db *gorm.DB, filter Vote) ([]Vote, error) {
	var votes []Vote
	err := db.Where(&filter).Order("created_at ASC").Find(&votes).Error
	return votes, err
}
