package v1

import (
	"fmt"

	"github.com/demo-night/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// AttendeeEditable represents all user configurable parameters of an attendee
type AttendeeEditable struct {
	Name  string              `json:"name" example:"Jane Doe" default:""`                              // Name of the attendee
	Email string              `json:"email" example:"jane@example.com" default:""`                     // Email of the attendee, unique per server
	Code  string              `json:"code" example:"X7K2PQ" default:""`                                // Access code, generated when empty
	Type  models.AttendeeType `json:"type" example:"judge" default:"audience" enums:"audience,judge"` // Weight class for match votes
}

func (editable AttendeeEditable) model() models.Attendee {
	return models.Attendee{
		Name:  editable.Name,
		Email: editable.Email,
		Code:  editable.Code,
		Type:  editable.Type,
	}
}

type AttendeeLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/attendees/d1b4ab96-8f3d-4a5c-9f0a-1c5e2e3a4b5c"`      // The attendee itself
	Votes string `json:"votes" example:"https://example.com/api/v1/votes?attendee=d1b4ab96-8f3d-4a5c-9f0a-1c5e2e3a4b5c"` // Votes cast by this attendee
}

type Attendee struct {
	models.DefaultModel
	AttendeeEditable
	Links AttendeeLinks `json:"links"`
}

func newAttendee(c *gin.Context, model models.Attendee) Attendee {
	url := c.GetString(string(models.ContextURL))

	return Attendee{
		DefaultModel: model.DefaultModel,
		AttendeeEditable: AttendeeEditable{
			Name:  model.Name,
			Email: model.Email,
			Code:  model.Code,
			Type:  model.Type,
		},
		Links: AttendeeLinks{
			Self:  fmt.Sprintf("%s/v1/attendees/%s", url, model.ID),
			Votes: fmt.Sprintf("%s/v1/votes?attendee=%s", url, model.ID),
		},
	}
}

type AttendeeListResponse struct {
	Data       []Attendee  `json:"data"`                                                          // List of Attendees
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AttendeeCreateResponse struct {
	Data  []AttendeeResponse `json:"data"`                                                          // List of the created Attendees or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AttendeeCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AttendeeResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AttendeeResponse struct {
	Data  *Attendee `json:"data"`                                                          // Data for the Attendee
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AttendeeQueryFilter struct {
	Name   string              `form:"name" filterField:"false"`   // By name
	Email  string              `form:"email"`                      // By email
	Code   string              `form:"code" filterField:"false"`   // By access code, exact match
	Type   models.AttendeeType `form:"type"`                       // By type
	Search string              `form:"search" filterField:"false"` // By string in name
	Offset uint                `form:"offset" filterField:"false"` // The offset of the first Attendee returned. Defaults to 0.
	Limit  int                 `form:"limit" filterField:"false"`  // Maximum number of Attendees to return. Defaults to 50.
}

func (f AttendeeQueryFilter) model() models.Attendee {
	return models.Attendee{
		Email: f.Email,
		Type:  f.Type,
	}
}
