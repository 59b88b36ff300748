package v1

import (
	"errors"
	"fmt"

	"github.com/demo-night/backend/internal/models"
	dn_uuid "github.com/demo-night/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VoteEditable represents one ballot upsert.
//
// A null demoId clears the attendee's ballot for the award. A null
// amount selects single-selection semantics, an amount of 0 removes
// the allocation for the demo.
type VoteEditable struct {
	EventID    dn_uuid.UUID     `json:"eventId" example:"26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`            // ID of the event
	AttendeeID dn_uuid.UUID     `json:"attendeeId" example:"d1b4ab96-8f3d-4a5c-9f0a-1c5e2e3a4b5c"`         // ID of the attendee casting the ballot
	AwardID    dn_uuid.UUID     `json:"awardId" example:"90db8ba2-3e87-4cc4-b5a2-27ab71ecc667"`            // ID of the award voted for
	DemoID     *dn_uuid.UUID    `json:"demoId" example:"ec3fc919-4b3d-4f9b-8b5a-6d6d0c446b9e"`             // ID of the demo, null clears the ballot
	Amount     *decimal.Decimal `json:"amount" example:"25000"`                                            // Allocated dollars in investment mode, null in single-selection mode
	MatchID    *dn_uuid.UUID    `json:"matchId" example:"f32bb1c9-0efd-4a97-9dd1-7ab0bbd0b6c4"`            // ID of the match this ballot belongs to, if any
	Type       models.VoteType  `json:"type" example:"judge" default:"audience" enums:"audience,judge"`    // Weight class of the ballot
}

func (editable VoteEditable) request() models.VoteRequest {
	request := models.VoteRequest{
		EventID:    editable.EventID.UUID,
		AttendeeID: editable.AttendeeID.UUID,
		AwardID:    editable.AwardID.UUID,
		Amount:     editable.Amount,
		Type:       editable.Type,
	}

	if editable.DemoID != nil {
		id := editable.DemoID.UUID
		request.DemoID = &id
	}

	if editable.MatchID != nil {
		id := editable.MatchID.UUID
		request.MatchID = &id
	}

	return request
}

type VoteLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/votes/5eecd8a2-0d29-4b5c-8a0a-4cfb4f26e2a3"`          // The vote itself
	Event    string `json:"event" example:"https://example.com/api/v1/events/26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`        // The event this vote belongs to
	Attendee string `json:"attendee" example:"https://example.com/api/v1/attendees/d1b4ab96-8f3d-4a5c-9f0a-1c5e2e3a4b5c"`  // The attendee who cast this vote
	Award    string `json:"award" example:"https://example.com/api/v1/awards/90db8ba2-3e87-4cc4-b5a2-27ab71ecc667"`        // The award this vote counts for
	Demo     string `json:"demo" example:"https://example.com/api/v1/demos/ec3fc919-4b3d-4f9b-8b5a-6d6d0c446b9e"`          // The demo this vote is for
}

type Vote struct {
	models.DefaultModel
	EventID    dn_uuid.UUID     `json:"eventId"`
	AttendeeID dn_uuid.UUID     `json:"attendeeId"`
	AwardID    dn_uuid.UUID     `json:"awardId"`
	DemoID     dn_uuid.UUID     `json:"demoId"`
	Amount     *decimal.Decimal `json:"amount"`
	MatchID    *uuid.UUID       `json:"matchId"`
	Type       models.VoteType  `json:"type"`
	Links      VoteLinks        `json:"links"`
}

func newVote(c *gin.Context, model models.Vote) Vote {
	url := c.GetString(string(models.ContextURL))

	return Vote{
		DefaultModel: model.DefaultModel,
		EventID:      dn_uuid.UUID{UUID: model.EventID},
		AttendeeID:   dn_uuid.UUID{UUID: model.AttendeeID},
		AwardID:      dn_uuid.UUID{UUID: model.AwardID},
		DemoID:       dn_uuid.UUID{UUID: model.DemoID},
		Amount:       model.Amount,
		MatchID:      model.MatchID,
		Type:         model.Type,
		Links: VoteLinks{
			Self:     fmt.Sprintf("%s/v1/votes/%s", url, model.ID),
			Event:    fmt.Sprintf("%s/v1/events/%s", url, model.EventID),
			Attendee: fmt.Sprintf("%s/v1/attendees/%s", url, model.AttendeeID),
			Award:    fmt.Sprintf("%s/v1/awards/%s", url, model.AwardID),
			Demo:     fmt.Sprintf("%s/v1/demos/%s", url, model.DemoID),
		},
	}
}

type VoteListResponse struct {
	Data       []Vote      `json:"data"`                                                          // List of Votes
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type VoteCreateResponse struct {
	Data  []VoteResponse `json:"data"`                                                          // Result for each ballot in the request, in order
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (v *VoteCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r := VoteResponse{Error: &s}

	// Budget rejections carry the headroom so clients can offer the
	// maximum possible allocation
	var budgetErr models.BudgetExceededError
	if errors.As(err, &budgetErr) {
		r.Remaining = &budgetErr.Remaining
	}

	v.Data = append(v.Data, r)

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type VoteResponse struct {
	Data      *Vote            `json:"data"`                                                          // The ballot, null when the request cleared it
	Error     *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Remaining *decimal.Decimal `json:"remaining,omitempty" example:"40000"`                           // Budget headroom, only set on budget rejections
}

type VoteQueryFilter struct {
	EventID    dn_uuid.UUID    `form:"event"`                      // By event
	AttendeeID dn_uuid.UUID    `form:"attendee"`                   // By attendee
	AwardID    dn_uuid.UUID    `form:"award"`                      // By award
	DemoID     dn_uuid.UUID    `form:"demo"`                       // By demo
	MatchID    dn_uuid.UUID    `form:"match" filterField:"false"`  // By match
	Type       models.VoteType `form:"type"`                       // By weight class
	Offset     uint            `form:"offset" filterField:"false"` // The offset of the first Vote returned. Defaults to 0.
	Limit      int             `form:"limit" filterField:"false"`  // Maximum number of Votes to return. Defaults to 50.
}

func (f VoteQueryFilter) model() models.Vote {
	return models.Vote{
		EventID:    f.EventID.UUID,
		AttendeeID: f.AttendeeID.UUID,
		AwardID:    f.AwardID.UUID,
		DemoID:     f.DemoID.UUID,
		Type:       f.Type,
	}
}
