package v1

import (
	"fmt"

	"github.com/demo-night/backend/internal/models"
	dn_uuid "github.com/demo-night/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// DemoEditable represents all user configurable parameters of a demo
type DemoEditable struct {
	EventID     dn_uuid.UUID `json:"eventId" example:"26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`     // ID of the event this demo belongs to
	Name        string       `json:"name" example:"Rocket Llama" default:""`                      // Name of the demo
	Description string       `json:"description" example:"AI-powered llama logistics" default:""` // Short pitch description
	Email       string       `json:"email" example:"team@rocketllama.dev" default:""`             // Contact email of the presenters
	URL         string       `json:"url" example:"https://rocketllama.dev" default:""`            // Website of the demo
	Index       int          `json:"index" example:"3" default:"0"`                               // Position in the running order
	Votable     bool         `json:"votable" example:"true" default:"false"`                      // Whether the demo appears in voting UIs
}

func (editable DemoEditable) model() models.Demo {
	return models.Demo{
		EventID:     editable.EventID.UUID,
		Name:        editable.Name,
		Description: editable.Description,
		Email:       editable.Email,
		URL:         editable.URL,
		Index:       editable.Index,
		Votable:     editable.Votable,
	}
}

type DemoLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/demos/ec3fc919-4b3d-4f9b-8b5a-6d6d0c446b9e"`     // The demo itself
	Event string `json:"event" example:"https://example.com/api/v1/events/26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"` // The event this demo belongs to
	Votes string `json:"votes" example:"https://example.com/api/v1/votes?demo=ec3fc919-4b3d-4f9b-8b5a-6d6d0c446b9e"` // Votes cast for this demo
}

type Demo struct {
	models.DefaultModel
	DemoEditable
	Links DemoLinks `json:"links"`
}

func newDemo(c *gin.Context, model models.Demo) Demo {
	url := c.GetString(string(models.ContextURL))

	return Demo{
		DefaultModel: model.DefaultModel,
		DemoEditable: DemoEditable{
			EventID:     dn_uuid.UUID{UUID: model.EventID},
			Name:        model.Name,
			Description: model.Description,
			Email:       model.Email,
			URL:         model.URL,
			Index:       model.Index,
			Votable:     model.Votable,
		},
		Links: DemoLinks{
			Self:  fmt.Sprintf("%s/v1/demos/%s", url, model.ID),
			Event: fmt.Sprintf("%s/v1/events/%s", url, model.EventID),
			Votes: fmt.Sprintf("%s/v1/votes?demo=%s", url, model.ID),
		},
	}
}

type DemoListResponse struct {
	Data       []Demo      `json:"data"`                                                          // List of Demos
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DemoCreateResponse struct {
	Data  []DemoResponse `json:"data"`                                                          // List of the created Demos or their respective error
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (d *DemoCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DemoResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DemoResponse struct {
	Data  *Demo   `json:"data"`                                                          // Data for the Demo
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DemoQueryFilter struct {
	EventID dn_uuid.UUID `form:"event"`                      // By event
	Name    string       `form:"name" filterField:"false"`   // By name
	Votable bool         `form:"votable"`                    // Votable demos only
	Search  string       `form:"search" filterField:"false"` // By string in name
	Offset  uint         `form:"offset" filterField:"false"` // The offset of the first Demo returned. Defaults to 0.
	Limit   int          `form:"limit" filterField:"false"`  // Maximum number of Demos to return. Defaults to 50.
}

func (f DemoQueryFilter) model() models.Demo {
	return models.Demo{
		EventID: f.EventID.UUID,
		Votable: f.Votable,
	}
}
