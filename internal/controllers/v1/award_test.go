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

func (suite *TestSuiteStandard) TestAwardCreate() {
	award := createTestAward(suite.T(), v1.AwardEditable{Name: "Investors' Pick", VotingMode: models.VotingModeInvestment})

	assert.Equal(suite.T(), "Investors' Pick", award.Data.Name)
	assert.Equal(suite.T(), models.VotingModeInvestment, award.Data.VotingMode)
}

func (suite *TestSuiteStandard) TestAwardDefaultVotingMode() {
	award := createTestAward(suite.T(), v1.AwardEditable{})

	assert.Equal(suite.T(), models.VotingModeSingle, award.Data.VotingMode)
}

func (suite *TestSuiteStandard) TestAwardInvalidVotingMode() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/awards",
		[]v1.AwardEditable{{EventID: dn_uuid.UUID{UUID: createTestEvent(suite.T(), v1.EventEditable{}).Data.ID}, Name: "Bad", VotingMode: "ranked"}},
		adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AwardCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Contains(suite.T(), *response.Data[0].Error, models.ErrVotingModeInvalid.Error())
}

func (suite *TestSuiteStandard) TestAwardsListFilters() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	eventID := dn_uuid.UUID{UUID: event.Data.ID}

	_ = createTestAward(suite.T(), v1.AwardEditable{EventID: eventID, Name: "Best Overall"})
	_ = createTestAward(suite.T(), v1.AwardEditable{EventID: eventID, Name: "Fund", VotingMode: models.VotingModeInvestment})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All for event", "event=" + event.Data.ID.String(), 2},
		{"Investment mode", "votingMode=investment", 1},
		{"Single mode", "votingMode=single", 1},
		{"Search", "search=fund", 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/awards?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AwardListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestAwardUpdate() {
	award := createTestAward(suite.T(), v1.AwardEditable{Name: "Before"})

	r := test.Request(suite.T(), http.MethodPatch, award.Data.Links.Self,
		map[string]any{"name": "After", "votingMode": "investment"}, adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AwardResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "After", response.Data.Name)
	assert.Equal(suite.T(), models.VotingModeInvestment, response.Data.VotingMode)

	// Invalid voting modes are rejected
	r = test.Request(suite.T(), http.MethodPatch, award.Data.Links.Self,
		map[string]any{"votingMode": "acclamation"}, adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAwardDelete() {
	award := createTestAward(suite.T(), v1.AwardEditable{})

	r := test.Request(suite.T(), http.MethodDelete, award.Data.Links.Self, "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, award.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
