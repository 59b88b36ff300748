package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Phase is a stage of a live event. The organizer dashboard drives the
// phase, all voting clients follow it.
type Phase string

const (
	PhasePre     Phase = "pre"
	PhaseDemos   Phase = "demos"
	PhaseVoting  Phase = "voting"
	PhaseResults Phase = "results"
	PhaseRecap   Phase = "recap"
)

// Valid reports whether the phase is one of the known stages.
func (p Phase) Valid() bool {
	switch p {
	case PhasePre, PhaseDemos, PhaseVoting, PhaseResults, PhaseRecap:
		return true
	}
	return false
}

// Event represents one demo night.
//
// An event is the highest level of organization, all other resources
// reference it directly or transitively.
type Event struct {
	DefaultModel
	Name  string
	URL   string
	Date  *time.Time
	Phase Phase
}

func (e *Event) BeforeSave(_ *gorm.DB) error {
	e.Name = strings.TrimSpace(e.Name)
	e.URL = strings.TrimSpace(e.URL)

	if e.Phase == "" {
		e.Phase = PhasePre
	}

	if !e.Phase.Valid() {
		return ErrEventPhaseInvalid
	}

	return nil
}

// Demos returns all demos for this event ordered by their index.
func (e Event) Demos(db *gorm.DB) ([]Demo, error) {
	var demos []Demo
	err := db.Where(Demo{EventID: e.ID}).Order("\"index\" ASC").Find(&demos).Error
	return demos, err
}

// Awards returns all awards for this event ordered by their index.
func (e Event) Awards(db *gorm.DB) ([]Award, error) {
	var awards []Award
	err := db.Where(Award{EventID: e.ID}).Order("\"index\" ASC").Find(&awards).Error
	return awards, err
}
