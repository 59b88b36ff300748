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

func (suite *TestSuiteStandard) TestDemoCreate() {
	demo := createTestDemo(suite.T(), v1.DemoEditable{Name: "Rocket Llama", Votable: true, Index: 2})

	assert.Equal(suite.T(), "Rocket Llama", demo.Data.Name)
	assert.True(suite.T(), demo.Data.Votable)
	assert.Equal(suite.T(), 2, demo.Data.Index)
}

func (suite *TestSuiteStandard) TestDemoNameConflict() {
	demo := createTestDemo(suite.T(), v1.DemoEditable{Name: "Twin"})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/demos",
		[]v1.DemoEditable{{EventID: demo.Data.EventID, Name: "Twin"}}, adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.DemoCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 1)
	require.NotNil(suite.T(), response.Data[0].Error)
	assert.Contains(suite.T(), *response.Data[0].Error, models.ErrDemoNameNotUnique.Error())
}

func (suite *TestSuiteStandard) TestDemoUnknownEvent() {
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/demos",
		[]v1.DemoEditable{{EventID: dn_uuid.New(), Name: "Orphan"}}, adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDemosListOrder() {
	event := createTestEvent(suite.T(), v1.EventEditable{})

	_ = createTestDemo(suite.T(), v1.DemoEditable{EventID: dn_uuid.UUID{UUID: event.Data.ID}, Name: "Second", Index: 2})
	_ = createTestDemo(suite.T(), v1.DemoEditable{EventID: dn_uuid.UUID{UUID: event.Data.ID}, Name: "First", Index: 1})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/demos?event="+event.Data.ID.String(), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DemoListResponse
	test.DecodeResponse(suite.T(), &r, &response)

	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "First", response.Data[0].Name)
	assert.Equal(suite.T(), "Second", response.Data[1].Name)
}

func (suite *TestSuiteStandard) TestDemosListFilters() {
	event := createTestEvent(suite.T(), v1.EventEditable{})
	eventID := dn_uuid.UUID{UUID: event.Data.ID}

	_ = createTestDemo(suite.T(), v1.DemoEditable{EventID: eventID, Name: "Votable demo", Votable: true})
	_ = createTestDemo(suite.T(), v1.DemoEditable{EventID: eventID, Name: "Display only"})

	tests := []struct {
		name  string
		query string
		count int
	}{
		{"All for event", "event=" + event.Data.ID.String(), 2},
		{"Votable only", "event=" + event.Data.ID.String() + "&votable=true", 1},
		{"Search", "search=display", 1},
		{"Other event", "event=" + dn_uuid.NewString(), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, "http://example.com/v1/demos?"+tt.query, "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.DemoListResponse
			test.DecodeResponse(t, &r, &response)
			assert.Len(t, response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestDemoUpdate() {
	demo := createTestDemo(suite.T(), v1.DemoEditable{Name: "Before", Index: 1})

	r := test.Request(suite.T(), http.MethodPatch, demo.Data.Links.Self,
		map[string]any{"name": "After", "votable": true}, adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.DemoResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "After", response.Data.Name)
	assert.True(suite.T(), response.Data.Votable)

	// Fields not in the body stay untouched
	assert.Equal(suite.T(), 1, response.Data.Index)
}

func (suite *TestSuiteStandard) TestDemoDelete() {
	demo := createTestDemo(suite.T(), v1.DemoEditable{})

	r := test.Request(suite.T(), http.MethodDelete, demo.Data.Links.Self, "", adminHeader(suite.T()))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, demo.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
