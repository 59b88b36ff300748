package v1

import (
	"fmt"
	"time"

	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// EventEditable represents all user configurable parameters of an event
type EventEditable struct {
	Name  string       `json:"name" example:"Demo Night #42" default:""`                    // Name of the event
	URL   string       `json:"url" example:"https://demo.night/42" default:""`              // Public page of the event, encoded in the check-in QR code
	Date  *time.Time   `json:"date" example:"2024-05-23T19:00:00Z"`                         // Date of the event
	Phase models.Phase `json:"phase" example:"voting" default:"pre" enums:"pre,demos,voting,results,recap"` // Current phase of the event
}

func (editable EventEditable) model() models.Event {
	return models.Event{
		Name:  editable.Name,
		URL:   editable.URL,
		Date:  editable.Date,
		Phase: editable.Phase,
	}
}

type EventLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/events/26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`           // The event itself
	Demos   string `json:"demos" example:"https://example.com/api/v1/demos?event=26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`     // Demos for this event
	Awards  string `json:"awards" example:"https://example.com/api/v1/awards?event=26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`   // Awards for this event
	Matches string `json:"matches" example:"https://example.com/api/v1/matches?event=26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"` // Matches for this event
	QR      string `json:"qr" example:"https://example.com/api/v1/events/26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e/qr"`          // Check-in QR code
}

type Event struct {
	models.DefaultModel
	EventEditable
	Links EventLinks `json:"links"`
}

func newEvent(c *gin.Context, model models.Event) Event {
	url := c.GetString(string(models.ContextURL))

	return Event{
		DefaultModel: model.DefaultModel,
		EventEditable: EventEditable{
			Name:  model.Name,
			URL:   model.URL,
			Date:  model.Date,
			Phase: model.Phase,
		},
		Links: EventLinks{
			Self:    fmt.Sprintf("%s/v1/events/%s", url, model.ID),
			Demos:   fmt.Sprintf("%s/v1/demos?event=%s", url, model.ID),
			Awards:  fmt.Sprintf("%s/v1/awards?event=%s", url, model.ID),
			Matches: fmt.Sprintf("%s/v1/matches?event=%s", url, model.ID),
			QR:      fmt.Sprintf("%s/v1/events/%s/qr", url, model.ID),
		},
	}
}

type EventListResponse struct {
	Data       []Event     `json:"data"`                                                          // List of Events
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type EventCreateResponse struct {
	Data  []EventResponse `json:"data"`                                                          // List of the created Events or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (e *EventCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	e.Data = append(e.Data, EventResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type EventResponse struct {
	Data  *Event  `json:"data"`                                                          // Data for the Event
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type EventQueryFilter struct {
	Name   string       `form:"name" filterField:"false"`   // By name
	Phase  models.Phase `form:"phase"`                      // By phase
	Search string       `form:"search" filterField:"false"` // By string in name
	Offset uint         `form:"offset" filterField:"false"` // The offset of the first Event returned. Defaults to 0.
	Limit  int          `form:"limit" filterField:"false"`  // Maximum number of Events to return. Defaults to 50.
}

func (f EventQueryFilter) model() models.Event {
	return models.Event{
		Phase: f.Phase,
	}
}
