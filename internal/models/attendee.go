package models

import (
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"gorm.io/gorm"
)

// AttendeeType classifies the weight class of an attendee's match votes.
type AttendeeType string

const (
	AttendeeTypeAudience AttendeeType = "audience"
	AttendeeTypeJudge    AttendeeType = "judge"
)

func (t AttendeeType) Valid() bool {
	return t == AttendeeTypeAudience || t == AttendeeTypeJudge
}

// CodeAlphabet is the character set for attendee access codes. It
// avoids characters that are easily confused when read from a screen.
const CodeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// CodeLength is the length of generated attendee access codes.
const CodeLength = 6

// Attendee is an event participant who may cast votes.
type Attendee struct {
	DefaultModel
	Name  string
	Email string       `gorm:"uniqueIndex"`
	Code  string       `gorm:"uniqueIndex"` // Short access code for checking in without an account
	Type  AttendeeType // Weight class for match votes, defaults to audience
}

func (a *Attendee) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Email = strings.TrimSpace(strings.ToLower(a.Email))
	a.Code = strings.TrimSpace(strings.ToUpper(a.Code))

	if a.Type == "" {
		a.Type = AttendeeTypeAudience
	}

	if !a.Type.Valid() {
		return ErrAttendeeTypeInvalid
	}

	return nil
}

func (a *Attendee) BeforeCreate(tx *gorm.DB) error {
	_ = a.DefaultModel.BeforeCreate(tx)

	if a.Code == "" {
		code, err := gonanoid.Generate(CodeAlphabet, CodeLength)
		if err != nil {
			return err
		}
		a.Code = code
	}

	return nil
}

// AttendeeByCode looks up an attendee by their access code.
func AttendeeByCode(db *gorm.DB, code string) (Attendee, error) {
	var attendee Attendee
	err := db.Where(Attendee{Code: strings.ToUpper(strings.TrimSpace(code))}).First(&attendee).Error
	return attendee, err
}
