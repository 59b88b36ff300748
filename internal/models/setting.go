package models

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting is a single key/value pair of runtime state shared by all
// backend instances, e.g. the pointer to the currently live event.
//
// Settings deliberately live in the database and not in process
// memory: with multiple instances behind a load balancer, an
// in-process value would diverge between instances.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
	Timestamps
}

// SettingCurrentEvent is the key holding the ID of the currently live event.
const SettingCurrentEvent = "current_event_id"

// GetSetting returns the value for a key, or an empty string when the
// key is unset.
func GetSetting(db *gorm.DB, key string) (string, error) {
	var setting Setting
	err := db.First(&setting, "key = ?", key).Error
	if errors.Is(err, ErrResourceNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	return setting.Value, nil
}

// SetSetting stores a value for a key, overwriting any previous value.
func SetSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Setting{Key: key, Value: value}).Error
}

// CurrentEvent resolves the currently live event.
//
// The pointer is read from the settings table on every call so that it
// is always current, even when another instance changed it.
func CurrentEvent(db *gorm.DB) (Event, error) {
	value, err := GetSetting(db, SettingCurrentEvent)
	if err != nil {
		return Event{}, err
	}

	if value == "" {
		return Event{}, ErrNoCurrentEvent
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return Event{}, ErrNoCurrentEvent
	}

	var event Event
	err = db.First(&event, id).Error
	return event, err
}

// SetCurrentEvent marks an event as the currently live one. The event
// must exist.
func SetCurrentEvent(db *gorm.DB, id uuid.UUID) error {
	err := db.First(&Event{}, id).Error
	if err != nil {
		return err
	}

	return SetSetting(db, SettingCurrentEvent, id.String())
}
