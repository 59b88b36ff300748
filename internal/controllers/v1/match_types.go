package v1

import (
	"fmt"
	"time"

	"github.com/demo-night/backend/internal/models"
	dn_uuid "github.com/demo-night/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MatchEditable represents all user configurable parameters of a match
type MatchEditable struct {
	EventID      dn_uuid.UUID `json:"eventId" example:"26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"` // ID of the event this match belongs to
	DemoAID      dn_uuid.UUID `json:"demoAId" example:"ec3fc919-4b3d-4f9b-8b5a-6d6d0c446b9e"` // Demo on side A
	DemoBID      dn_uuid.UUID `json:"demoBId" example:"a7dd73f8-8f8a-42a9-b2ec-3b2b0d1a1f5e"` // Demo on side B
	RoundType    string       `json:"roundType" example:"Semi-Final" default:""`               // Free-text round label
	VotingWindow *int         `json:"votingWindow" example:"90"`                               // Suggested voting duration in seconds, not enforced
}

func (editable MatchEditable) model() models.Match {
	return models.Match{
		EventID:      editable.EventID.UUID,
		DemoAID:      editable.DemoAID.UUID,
		DemoBID:      editable.DemoBID.UUID,
		RoundType:    editable.RoundType,
		VotingWindow: editable.VotingWindow,
	}
}

type MatchLinks struct {
	Self    string `json:"self" example:"https://example.com/api/v1/matches/f32bb1c9-0efd-4a97-9dd1-7ab0bbd0b6c4"`         // The match itself
	Event   string `json:"event" example:"https://example.com/api/v1/events/26f8ab4d-52cc-4e1d-9cff-b17e8e02d34e"`         // The event this match belongs to
	Votes   string `json:"votes" example:"https://example.com/api/v1/matches/f32bb1c9-0efd-4a97-9dd1-7ab0bbd0b6c4/votes"`  // Ballots cast for this match
	Results string `json:"results" example:"https://example.com/api/v1/matches/f32bb1c9-0efd-4a97-9dd1-7ab0bbd0b6c4/results"` // Live tally for this match
}

type Match struct {
	models.DefaultModel
	MatchEditable
	IsActive  bool       `json:"isActive" example:"true"`                                // Whether voting is open
	StartTime *time.Time `json:"startTime" example:"2024-05-23T20:12:00Z"`               // Set when the match is started
	EndTime   *time.Time `json:"endTime" example:"2024-05-23T20:14:30Z"`                 // Set when voting closes
	WinnerID  *uuid.UUID `json:"winnerId" example:"ec3fc919-4b3d-4f9b-8b5a-6d6d0c446b9e"` // Set when voting closes, null on a tie
	Links     MatchLinks `json:"links"`
}

func newMatch(c *gin.Context, model models.Match) Match {
	url := c.GetString(string(models.ContextURL))

	return Match{
		DefaultModel: model.DefaultModel,
		MatchEditable: MatchEditable{
			EventID:      dn_uuid.UUID{UUID: model.EventID},
			DemoAID:      dn_uuid.UUID{UUID: model.DemoAID},
			DemoBID:      dn_uuid.UUID{UUID: model.DemoBID},
			RoundType:    model.RoundType,
			VotingWindow: model.VotingWindow,
		},
		IsActive:  model.IsActive,
		StartTime: model.StartTime,
		EndTime:   model.EndTime,
		WinnerID:  model.WinnerID,
		Links: MatchLinks{
			Self:    fmt.Sprintf("%s/v1/matches/%s", url, model.ID),
			Event:   fmt.Sprintf("%s/v1/events/%s", url, model.EventID),
			Votes:   fmt.Sprintf("%s/v1/matches/%s/votes", url, model.ID),
			Results: fmt.Sprintf("%s/v1/matches/%s/results", url, model.ID),
		},
	}
}

type MatchListResponse struct {
	Data       []Match     `json:"data"`                                                          // List of Matches
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type MatchCreateResponse struct {
	Data  []MatchResponse `json:"data"`                                                          // List of the created Matches or their respective error
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (m *MatchCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	m.Data = append(m.Data, MatchResponse{Error: &s})

	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type MatchResponse struct {
	Data  *Match  `json:"data"`                                                          // Data for the Match
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// MatchResultResponse wraps the derived tally for a match.
type MatchResultResponse struct {
	Data  *models.MatchResult `json:"data"`                                                          // The tally
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MatchQueryFilter struct {
	EventID  dn_uuid.UUID `form:"event"`                      // By event
	IsActive bool         `form:"active"`                     // Active matches only
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first Match returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of Matches to return. Defaults to 50.
}

func (f MatchQueryFilter) model() models.Match {
	return models.Match{
		EventID:  f.EventID.UUID,
		IsActive: f.IsActive,
	}
}
