package v1_test

import (
	"net/http"
	"testing"

	v1 "github.com/demo-night/backend/internal/controllers/v1"
	"github.com/demo-night/backend/internal/models"
	dn_uuid "github.com/demo-night/backend/internal/uuid"
	"github.com/demo-night/backend/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createContestedMatch sets up an event with two demos and a match
// between them.
func createContestedMatch(t *testing.T) (voteFixture, v1.MatchResponse) {
	f := createVoteFixture(t, models.VotingModeSingle)

	match := createTestMatch(t, v1.MatchEditable{
		EventID:   dn_uuid.UUID{UUID: f.event.Data.ID},
		DemoAID:   dn_uuid.UUID{UUID: f.demoA.Data.ID},
		DemoBID:   dn_uuid.UUID{UUID: f.demoB.Data.ID},
		RoundType: "Final",
	})

	return f, match
}

func (suite *TestSuiteStandard) TestMatchCreate() {
	_, match := createContestedMatch(suite.T())

	assert.Equal(suite.T(), "Final", match.Data.RoundType)
	assert.False(suite.T(), match.Data.IsActive)
	assert.Nil(suite.T(), match.Data.StartTime)
	assert.Nil(suite.T(), match.Data.WinnerID)
}

func (suite *TestSuiteStandard) TestMatchCreateSameDemo() {
	f := createVoteFixture(suite.T(), models.VotingModeSingle)

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/matches",
		[]v1.MatchEditable{{
			EventID: dn_uuid.UUID{UUID: f.event.Data.ID},
			DemoAID: dn_uuid.UUID{UUID: f.demoA.Data.ID},
			DemoBID: dn_uuid.UUID{UUID: f.demoA.Data.ID},
		}}, adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.MatchCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Contains(suite.T(), *response.Data[0].Error, models.ErrMatchSameDemo.Error())
}

func (suite *TestSuiteStandard) TestMatchStartAndClose() {
	f, match := createContestedMatch(suite.T())

	// Start
	r := test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var started v1.MatchResponse
	test.DecodeResponse(suite.T(), &r, &started)
	assert.True(suite.T(), started.Data.IsActive)
	require.NotNil(suite.T(), started.Data.StartTime)

	// Vote for side A while the match is running
	ballot := f.ballot(f.demoA, 0)
	ballot.Amount = nil
	matchID := dn_uuid.UUID{UUID: match.Data.ID}
	ballot.MatchID = &matchID

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/votes", []v1.VoteEditable{ballot})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	// Close
	r = test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/close", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var closed v1.MatchResponse
	test.DecodeResponse(suite.T(), &r, &closed)
	assert.False(suite.T(), closed.Data.IsActive)
	require.NotNil(suite.T(), closed.Data.EndTime)
	require.NotNil(suite.T(), closed.Data.WinnerID)
	assert.Equal(suite.T(), f.demoA.Data.ID, *closed.Data.WinnerID)
}

func (suite *TestSuiteStandard) TestMatchRestartRejected() {
	_, match := createContestedMatch(suite.T())

	r := test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/close", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.MatchResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, models.ErrMatchNotStartable.Error())
}

func (suite *TestSuiteStandard) TestMatchSingleActive() {
	f, match := createContestedMatch(suite.T())

	demoC := createTestDemo(suite.T(), v1.DemoEditable{
		EventID: dn_uuid.UUID{UUID: f.event.Data.ID},
		Name:    "Side C",
	})

	other := createTestMatch(suite.T(), v1.MatchEditable{
		EventID: dn_uuid.UUID{UUID: f.event.Data.ID},
		DemoAID: dn_uuid.UUID{UUID: f.demoB.Data.ID},
		DemoBID: dn_uuid.UUID{UUID: demoC.Data.ID},
	})

	r := test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPost, other.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.MatchResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Contains(suite.T(), *response.Error, models.ErrAnotherMatchActive.Error())
}

func (suite *TestSuiteStandard) TestMatchResults() {
	f, match := createContestedMatch(suite.T())

	r := test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	matchID := dn_uuid.UUID{UUID: match.Data.ID}

	// Two audience votes for A, one judge vote for B
	for _, vote := range []struct {
		demo v1.DemoResponse
		kind models.VoteType
	}{
		{f.demoA, models.VoteTypeAudience},
		{f.demoA, models.VoteTypeAudience},
		{f.demoB, models.VoteTypeJudge},
	} {
		attendee := createTestAttendee(suite.T(), v1.AttendeeEditable{Type: models.AttendeeType(vote.kind)})

		ballot := f.ballot(vote.demo, 0)
		ballot.Amount = nil
		ballot.MatchID = &matchID
		ballot.AttendeeID = dn_uuid.UUID{UUID: attendee.Data.ID}
		ballot.Type = vote.kind

		r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/votes", []v1.VoteEditable{ballot})
		test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	}

	r = test.Request(suite.T(), http.MethodGet, match.Data.Links.Results, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var results v1.MatchResultResponse
	test.DecodeResponse(suite.T(), &r, &results)

	require.NotNil(suite.T(), results.Data)
	assert.Equal(suite.T(), 2, results.Data.A.Audience)
	assert.Equal(suite.T(), 1, results.Data.B.Judge)

	// Audience is unanimous for A, judges for B. The audience half is
	// worth 0.5 and the judge half 0.5, so the scores tie.
	assert.InDelta(suite.T(), 0.5, results.Data.A.Score, 1e-9)
	assert.InDelta(suite.T(), 0.5, results.Data.B.Score, 1e-9)
	assert.Nil(suite.T(), results.Data.WinnerID)

	// The vote listing for the match matches the tally
	r = test.Request(suite.T(), http.MethodGet, match.Data.Links.Votes, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var votes v1.VoteListResponse
	test.DecodeResponse(suite.T(), &r, &votes)
	assert.Len(suite.T(), votes.Data, 3)
}

func (suite *TestSuiteStandard) TestMatchDelete() {
	f, match := createContestedMatch(suite.T())

	r := test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	matchID := dn_uuid.UUID{UUID: match.Data.ID}
	ballot := f.ballot(f.demoA, 0)
	ballot.Amount = nil
	ballot.MatchID = &matchID

	r = test.Request(suite.T(), http.MethodPost, "http://example.com/v1/votes", []v1.VoteEditable{ballot})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = test.Request(suite.T(), http.MethodDelete, match.Data.Links.Self, "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The match and its ballots are gone
	r = test.Request(suite.T(), http.MethodGet, match.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/votes?event="+f.event.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var votes v1.VoteListResponse
	test.DecodeResponse(suite.T(), &r, &votes)
	assert.Len(suite.T(), votes.Data, 0)
}

func (suite *TestSuiteStandard) TestMatchesListFilters() {
	f, match := createContestedMatch(suite.T())

	r := test.Request(suite.T(), http.MethodPost, match.Data.Links.Self+"/start", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"By event", "event=" + f.event.Data.ID.String(), 1},
		{"Active", "active=true", 1},
		{"Other event", "event=" + dn_uuid.NewString(), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/matches?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.MatchListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}
