package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Demo represents a startup or presenter entry within an event.
type Demo struct {
	DefaultModel
	Event       Event     `json:"-"`
	EventID     uuid.UUID `gorm:"uniqueIndex:demo_name_event_id"`
	Name        string    `gorm:"uniqueIndex:demo_name_event_id"`
	Description string
	Email       string
	URL         string
	Index       int  // Position in the running order
	Votable     bool // Display-only demos are excluded from voting UIs
}

func (d *Demo) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Email = strings.TrimSpace(d.Email)
	d.URL = strings.TrimSpace(d.URL)

	return nil
}

func (d *Demo) BeforeCreate(tx *gorm.DB) error {
	_ = d.DefaultModel.BeforeCreate(tx)

	toSave := tx.Statement.Dest.(*Demo)
	return d.checkIntegrity(tx, *toSave)
}

// BeforeUpdate verifies the state of the demo before
// committing an update to the database.
func (d *Demo) BeforeUpdate(tx *gorm.DB) error {
	toSave := tx.Statement.Dest.(Demo)
	if tx.Statement.Changed("EventID") {
		return d.checkIntegrity(tx, toSave)
	}

	return nil
}

// checkIntegrity verifies references to other resources
func (d *Demo) checkIntegrity(tx *gorm.DB, toSave Demo) error {
	return tx.First(&Event{}, toSave.EventID).Error
}
