package v1

import (
	"fmt"

	"github.com/demo-night/backend/internal/models"
	dn_uuid "github.com/demo-night/backend/internal/uuid"
	"github.com/gin-gonic/gin"
)

// AwardEditable represents all user configurable parameters of an award
type AwardEditable struct {
	EventID    dn_uuid.UUID      `json:"eventId" example:"26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`                 // ID of the event this award belongs to
	Name       string            `json:"name" example:"Crowd Favorite" default:""`                               // Name of the award
	Index      int               `json:"index" example:"1" default:"0"`                                          // Display position
	VotingMode models.VotingMode `json:"votingMode" example:"investment" default:"single" enums:"single,investment"` // How attendees vote for this award
}

func (editable AwardEditable) model() models.Award {
	return models.Award{
		EventID:    editable.EventID.UUID,
		Name:       editable.Name,
		Index:      editable.Index,
		VotingMode: editable.VotingMode,
	}
}

type AwardLinks struct {
	Self  string `json:"self" example:"https://example.com/api/v1/awards/90db8ba2-3e87-4cc4-b5a2-27ab71ecc667"`      // The award itself
	Event string `json:"event" example:"https://example.com/api/v1/events/26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`     // The event this award belongs to
	Votes string `json:"votes" example:"https://example.com/api/v1/votes?award=90db8ba2-3e87-4cc4-b5a2-27ab71ecc667"` // Votes cast for this award
}

type Award struct {
	models.DefaultModel
	AwardEditable
	Links AwardLinks `json:"links"`
}

func newAward(c *gin.Context, model models.Award) Award {
	url := c.GetString(string(models.ContextURL))

	return Award{
		DefaultModel: model.DefaultModel,
		AwardEditable: AwardEditable{
			EventID:    dn_uuid.UUID{UUID: model.EventID},
			Name:       model.Name,
			Index:      model.Index,
			VotingMode: model.VotingMode,
		},
		Links: AwardLinks{
			Self:  fmt.Sprintf("%s/v1/awards/%s", url, model.ID),
			Event: fmt.Sprintf("%s/v1/events/%s", url, model.EventID),
			Votes: fmt.Sprintf("%s/v1/votes?award=%s", url, model.ID),
		},
	}
}

type AwardListResponse struct {
	Data       []Award     `json:"data"`                                                          // List of Awards
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AwardCreateResponse struct {
	Data  []AwardResponse `json:"data"`                                                          // List of the created Awards or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (a *AwardCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AwardResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AwardResponse struct {
	Data  *Award  `json:"data"`                                                          // Data for the Award
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AwardQueryFilter struct {
	EventID    dn_uuid.UUID      `form:"event"`                      // By event
	Name       string            `form:"name" filterField:"false"`   // By name
	VotingMode models.VotingMode `form:"votingMode"`                 // By voting mode
	Search     string            `form:"search" filterField:"false"` // By string in name
	Offset     uint              `form:"offset" filterField:"false"` // The offset of the first Award returned. Defaults to 0.
	Limit      int               `form:"limit" filterField:"false"`  // Maximum number of Awards to return. Defaults to 50.
}

func (f AwardQueryFilter) model() models.Award {
	return models.Award{
		EventID:    f.EventID.UUID,
		VotingMode: f.VotingMode,
	}
}
