package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/demo-night/backend/internal/controllers/v1"
	dn_uuid "github.com/demo-night/backend/internal/uuid"
	"github.com/demo-night/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	eventID := dn_uuid.UUID{UUID: event.Data.ID}

	_ = createTestDemo(suite.T(), v1.DemoEditable{EventID: eventID})
	_ = createTestAward(suite.T(), v1.AwardEditable{EventID: eventID})
	_ = createTestAttendee(suite.T(), v1.AttendeeEditable{})

	tests := []string{
		"http://example.com/v1/events",
		"http://example.com/v1/demos",
		"http://example.com/v1/awards",
		"http://example.com/v1/attendees",
		"http://example.com/v1/votes",
		"http://example.com/v1/matches",
	}

	// Delete
	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	// Verify
	for _, tt := range tests {
		suite.T().Run(tt, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodGet, tt, "")
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

			var response struct {
				Data []any `json:"data"`
			}

			test.DecodeResponse(t, &recorder, &response)
			assert.Len(t, response.Data, 0, "There are resources left for type %s", tt)
		})
	}

	// The current event pointer is gone too
	recorder = test.Request(suite.T(), http.MethodGet, "http://example.com/v1/events/current", "")
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestCleanupFails() {
	tests := []struct {
		name string
		path string
	}{
		{"Invalid path", "confirm=2"},
		{"Confirmation wrong", "confirm=invalid-confirmation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, http.MethodDelete, fmt.Sprintf("http://example.com/v1?%s", tt.path), "", adminHeader(t))
			test.AssertHTTPStatus(suite.T(), &recorder, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestCleanupDBError() {
	header := adminHeader(suite.T())
	suite.CloseDB()

	recorder := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", "", header)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusInternalServerError)
}
