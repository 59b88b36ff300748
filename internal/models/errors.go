package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Event errors
var (
	ErrEventPhaseInvalid = errors.New("the event phase is invalid")
	ErrNoCurrentEvent    = errors.New("no event is currently live")
)

// Attendee errors
var (
	ErrAttendeeTypeInvalid    = errors.New("the attendee type must be audience or judge")
	ErrAttendeeCodeNotUnique  = errors.New("this attendee code is already in use")
	ErrAttendeeEmailNotUnique = errors.New("an attendee with this email is already registered")
)

// Demo and award errors
var (
	ErrDemoNameNotUnique  = errors.New("the demo name must be unique for the event")
	ErrAwardNameNotUnique = errors.New("the award name must be unique for the event")
	ErrVotingModeInvalid  = errors.New("the voting mode must be single or investment")
)

// Vote errors
var (
	ErrVoteTypeInvalid    = errors.New("the vote type must be audience or judge")
	ErrVoteExists         = errors.New("you already voted for this demo, please try again")
	ErrAmountNegative     = errors.New("the amount must not be negative")
	ErrAmountNotIncrement = errors.New("the amount must be a multiple of 1000")
	ErrBudgetExceeded     = errors.New("this allocation exceeds your remaining budget")
	ErrVoteDemoNotInMatch = errors.New("the demo is not part of this match")
)

// Match errors
var (
	ErrMatchSameDemo      = errors.New("a match needs two different demos")
	ErrMatchNotStartable  = errors.New("the match has already been started or closed")
	ErrMatchNotActive     = errors.New("the match is not active")
	ErrAnotherMatchActive = errors.New("another match is already active for this event")
)

// BudgetExceededError reports how much of the budget is still
// unallocated so that clients can render an actionable message.
type BudgetExceededError struct {
	Remaining decimal.Decimal
}

func (e BudgetExceededError) Error() string {
	return fmt.Sprintf("%s: %s remaining for this award", ErrBudgetExceeded.Error(), e.Remaining)
}

func (e BudgetExceededError) Unwrap() error {
	return ErrBudgetExceeded
}
