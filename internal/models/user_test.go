package models_test

import (
	"github.com/fridaybot/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestUserByPhoneCreates() {
	user, err := models.UserByPhone(models.DB, "+15550001111")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), "+15550001111", user.PhoneNumber)
	assert.Equal(suite.T(), models.StateRegistration, user.State)
	assert.Empty(suite.T(), user.Name, "name must be empty while in Registration")
}

func (suite *TestSuiteStandard) TestUserByPhoneFindsExisting() {
	created, err := models.UserByPhone(models.DB, "+15550001111")
	require.Nil(suite.T(), err)

	found, err := models.UserByPhone(models.DB, "+15550001111")
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), created.ID, found.ID, "same phone number must resolve to the same user")
}

func (suite *TestSuiteStandard) TestUserPhoneNumberUnique() {
	_ = suite.createTestUser(models.User{PhoneNumber: "+15557779999"})

	err := models.DB.Create(&models.User{PhoneNumber: "+15557779999"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrPhoneNumberNotUnique)
}

func (suite *TestSuiteStandard) TestUserSetNameAndState() {
	user := suite.createTestUser(models.User{})

	require.Nil(suite.T(), user.SetName(models.DB, "Sam"))
	require.Nil(suite.T(), user.SetState(models.DB, models.StateAboutApp))

	var reread models.User
	require.Nil(suite.T(), models.DB.First(&reread, user.ID).Error)
	assert.Equal(suite.T(), "Sam", reread.Name)
	assert.Equal(suite.T(), models.StateAboutApp, reread.State)
}
