package models_test

import (
	"github.com/demo-night/backend/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFixture struct {
	event models.Event
	award models.Award
	demoA models.Demo
	demoB models.Demo
	match models.Match
}

func (suite *TestSuiteStandard) createMatchFixture() matchFixture {
	event := suite.createTestEvent(models.Event{})
	award := suite.createTestAward(models.Award{EventID: event.ID, Name: "Match Winner"})
	demoA := suite.createTestDemo(models.Demo{EventID: event.ID, Name: "Side A", Votable: true})
	demoB := suite.createTestDemo(models.Demo{EventID: event.ID, Name: "Side B", Votable: true})

	match := suite.createTestMatch(models.Match{
		EventID:   event.ID,
		DemoAID:   demoA.ID,
		DemoBID:   demoB.ID,
		RoundType: "Semi-Final",
	})

	return matchFixture{event: event, award: award, demoA: demoA, demoB: demoB, match: match}
}

// castMatchVote checks in a new attendee and casts their ballot for
// one side of the match.
func (suite *TestSuiteStandard) castMatchVote(f matchFixture, email string, demo models.Demo, voteType models.VoteType) models.Vote {
	attendee := suite.createTestAttendee(models.Attendee{
		Email: email,
		Type:  models.AttendeeType(voteType),
	})

	demoID := demo.ID
	return suite.upsertTestVote(models.VoteRequest{
		EventID:    f.event.ID,
		AttendeeID: attendee.ID,
		AwardID:    f.award.ID,
		DemoID:     &demoID,
		MatchID:    &f.match.ID,
		Type:       voteType,
	})
}

func (suite *TestSuiteStandard) TestMatchSameDemoRejected() {
	event := suite.createTestEvent(models.Event{})
	demo := suite.createTestDemo(models.Demo{EventID: event.ID, Name: "Lonely"})

	err := models.DB.Create(&models.Match{
		EventID: event.ID,
		DemoAID: demo.ID,
		DemoBID: demo.ID,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrMatchSameDemo)
}

func (suite *TestSuiteStandard) TestMatchDemosMustExist() {
	event := suite.createTestEvent(models.Event{})
	demo := suite.createTestDemo(models.Demo{EventID: event.ID, Name: "Real"})

	err := models.DB.Create(&models.Match{
		EventID: event.ID,
		DemoAID: demo.ID,
	}).Error

	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMatchCreatedInactive() {
	f := suite.createMatchFixture()

	assert.False(suite.T(), f.match.IsActive)
	assert.Nil(suite.T(), f.match.StartTime)
	assert.Nil(suite.T(), f.match.EndTime)
	assert.Nil(suite.T(), f.match.WinnerID)
}

func (suite *TestSuiteStandard) TestMatchLifecycle() {
	f := suite.createMatchFixture()

	match, err := models.StartMatch(models.DB, f.match.ID)
	require.Nil(suite.T(), err)
	assert.True(suite.T(), match.IsActive)
	require.NotNil(suite.T(), match.StartTime)

	match, err = models.CloseMatchVoting(models.DB, match.ID)
	require.Nil(suite.T(), err)
	assert.False(suite.T(), match.IsActive)
	require.NotNil(suite.T(), match.EndTime)

	// A voteless match has no winner
	assert.Nil(suite.T(), match.WinnerID)
}

func (suite *TestSuiteStandard) TestMatchRestartRejected() {
	f := suite.createMatchFixture()

	_, err := models.StartMatch(models.DB, f.match.ID)
	require.Nil(suite.T(), err)

	_, err = models.CloseMatchVoting(models.DB, f.match.ID)
	require.Nil(suite.T(), err)

	// A closed match stays closed
	_, err = models.StartMatch(models.DB, f.match.ID)
	assert.ErrorIs(suite.T(), err, models.ErrMatchNotStartable)
}

func (suite *TestSuiteStandard) TestMatchStartTwice() {
	f := suite.createMatchFixture()

	_, err := models.StartMatch(models.DB, f.match.ID)
	require.Nil(suite.T(), err)

	_, err = models.StartMatch(models.DB, f.match.ID)
	assert.ErrorIs(suite.T(), err, models.ErrMatchNotStartable)
}

func (suite *TestSuiteStandard) TestMatchSingleActivePerEvent() {
	f := suite.createMatchFixture()

	demoC := suite.createTestDemo(models.Demo{EventID: f.event.ID, Name: "Side C"})
	other := suite.createTestMatch(models.Match{
		EventID: f.event.ID,
		DemoAID: f.demoA.ID,
		DemoBID: demoC.ID,
	})

	_, err := models.StartMatch(models.DB, f.match.ID)
	require.Nil(suite.T(), err)

	_, err = models.StartMatch(models.DB, other.ID)
	assert.ErrorIs(suite.T(), err, models.ErrAnotherMatchActive)

	// Closing the first match frees the slot
	_, err = models.CloseMatchVoting(models.DB, f.match.ID)
	require.Nil(suite.T(), err)

	_, err = models.StartMatch(models.DB, other.ID)
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestMatchActiveOnOtherEventAllowed() {
	f := suite.createMatchFixture()

	_, err := models.StartMatch(models.DB, f.match.ID)
	require.Nil(suite.T(), err)

	// A match on a different event is unaffected
	g := suite.createMatchFixture()
	_, err = models.StartMatch(models.DB, g.match.ID)
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestMatchCloseNotActive() {
	f := suite.createMatchFixture()

	_, err := models.CloseMatchVoting(models.DB, f.match.ID)
	assert.ErrorIs(suite.T(), err, models.ErrMatchNotActive)
}

func (suite *TestSuiteStandard) TestMatchClosePersistsWinner() {
	f := suite.createMatchFixture()

	match, err := models.StartMatch(models.DB, f.match.ID)
	require.Nil(suite.T(), err)
	f.match = match

	suite.castMatchVote(f, "one@example.com", f.demoA, models.VoteTypeAudience)
	suite.castMatchVote(f, "two@example.com", f.demoA, models.VoteTypeAudience)
	suite.castMatchVote(f, "three@example.com", f.demoB, models.VoteTypeAudience)

	match, err = models.CloseMatchVoting(models.DB, match.ID)
	require.Nil(suite.T(), err)

	require.NotNil(suite.T(), match.WinnerID)
	assert.Equal(suite.T(), f.demoA.ID, *match.WinnerID)

	// The live tally after closing equals the persisted result
	result, err := match.Results(models.DB)
	require.Nil(suite.T(), err)
	require.NotNil(suite.T(), result.WinnerID)
	assert.Equal(suite.T(), *match.WinnerID, *result.WinnerID)
}

func (suite *TestSuiteStandard) TestMatchDeleteCascadesVotes() {
	f := suite.createMatchFixture()

	match, err := models.StartMatch(models.DB, f.match.ID)
	require.Nil(suite.T(), err)
	f.match = match

	suite.castMatchVote(f, "voter@example.com", f.demoA, models.VoteTypeAudience)

	// An unrelated ballot must survive the cascade
	attendee := suite.createTestAttendee(models.Attendee{Email: "bystander@example.com"})
	amount := decimal.NewFromInt(1000)
	award := suite.createTestAward(models.Award{
		EventID:    f.event.ID,
		Name:       "Fund",
		VotingMode: models.VotingModeInvestment,
	})
	demoID := f.demoA.ID
	_, err = models.UpsertVote(models.DB, models.VoteRequest{
		EventID:    f.event.ID,
		AttendeeID: attendee.ID,
		AwardID:    award.ID,
		DemoID:     &demoID,
		Amount:     &amount,
	})
	require.Nil(suite.T(), err)

	err = models.DeleteMatch(models.DB, match.ID)
	require.Nil(suite.T(), err)

	var votes []models.Vote
	err = models.DB.Find(&votes).Error
	require.Nil(suite.T(), err)
	require.Len(suite.T(), votes, 1)
	assert.Equal(suite.T(), attendee.ID, votes[0].AttendeeID)
}
