package models_test

import (
	"strings"

	"github.com/demo-night/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAttendeeCodeGenerated() {
	attendee := suite.createTestAttendee(models.Attendee{Name: "Jane", Email: "jane@example.com"})

	assert.Len(suite.T(), attendee.Code, models.CodeLength)
	for _, r := range attendee.Code {
		assert.Contains(suite.T(), models.CodeAlphabet, string(r))
	}
}

func (suite *TestSuiteStandard) TestAttendeeCodeKept() {
	attendee := suite.createTestAttendee(models.Attendee{Email: "keep@example.com", Code: "KEEPME"})

	assert.Equal(suite.T(), "KEEPME", attendee.Code)
}

func (suite *TestSuiteStandard) TestAttendeeCodeUnique() {
	suite.createTestAttendee(models.Attendee{Email: "first@example.com", Code: "SAMECD"})

	err := models.DB.Create(&models.Attendee{Email: "second@example.com", Code: "SAMECD"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAttendeeCodeNotUnique)
}

func (suite *TestSuiteStandard) TestAttendeeEmailUnique() {
	suite.createTestAttendee(models.Attendee{Email: "dupe@example.com"})

	err := models.DB.Create(&models.Attendee{Email: "dupe@example.com"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrAttendeeEmailNotUnique)
}

func (suite *TestSuiteStandard) TestAttendeeDeleteFreesEmail() {
	attendee := suite.createTestAttendee(models.Attendee{Email: "back@example.com"})

	err := models.DB.Delete(&attendee).Error
	assert.Nil(suite.T(), err)

	// Checking in again with the same email must work, the old row
	// may not linger in the unique index
	err = models.DB.Create(&models.Attendee{Email: "back@example.com"}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestAttendeeNormalization() {
	attendee := suite.createTestAttendee(models.Attendee{
		Name:  "  Jane Doe ",
		Email: " Jane.Doe@Example.COM ",
		Code:  " x7k2pq ",
	})

	assert.Equal(suite.T(), "Jane Doe", attendee.Name)
	assert.Equal(suite.T(), "jane.doe@example.com", attendee.Email)
	assert.Equal(suite.T(), "X7K2PQ", attendee.Code)
}

func (suite *TestSuiteStandard) TestAttendeeDefaultType() {
	attendee := suite.createTestAttendee(models.Attendee{Email: "type@example.com"})

	assert.Equal(suite.T(), models.AttendeeTypeAudience, attendee.Type)
}

func (suite *TestSuiteStandard) TestAttendeeInvalidType() {
	err := models.DB.Create(&models.Attendee{Email: "vip@example.com", Type: "vip"}).Error

	assert.ErrorIs(suite.T(), err, models.ErrAttendeeTypeInvalid)
}

func (suite *TestSuiteStandard) TestAttendeeByCode() {
	created := suite.createTestAttendee(models.Attendee{Email: "lookup@example.com", Code: "LOOKUP"})

	// Lookup is case-insensitive since codes are typed by hand
	attendee, err := models.AttendeeByCode(models.DB, " lookup ")
	assert.Nil(suite.T(), err)
	assert.Equal(suite.T(), created.ID, attendee.ID)

	_, err = models.AttendeeByCode(models.DB, "NOSUCH")
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestAttendeeCodesDiffer() {
	seen := make(map[string]bool)

	for i := 0; i < 10; i++ {
		attendee := suite.createTestAttendee(models.Attendee{
			Email: strings.ToLower("attendee" + string(rune('a'+i)) + "@example.com"),
		})

		assert.False(suite.T(), seen[attendee.Code], "code %s generated twice", attendee.Code)
		seen[attendee.Code] = true
	}
}
