package models_test

import (
	"fmt"
	"time"

	"github.com/fridaybot/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestConversationSortedByTimestamp() {
	user := suite.createTestUser(models.User{})

	t1 := time.Date(2022, 7, 1, 10, 0, 0, 0, time.UTC)
	t2 := time.Date(2022, 7, 1, 9, 0, 0, 0, time.UTC)
	t3 := time.Date(2022, 7, 1, 11, 0, 0, 0, time.UTC)

	// Inserted out of order: t2 < t1 < t3
	_ = suite.createTestMessage(models.ConversationMessage{UserID: user.ID, Body: "first by time t1", Author: "Sam", DefaultModel: models.DefaultModel{Timestamps: models.Timestamps{CreatedAt: t1}}})
	_ = suite.createTestMessage(models.ConversationMessage{UserID: user.ID, Body: "earliest t2", Author: "Sam", DefaultModel: models.DefaultModel{Timestamps: models.Timestamps{CreatedAt: t2}}})
	_ = suite.createTestMessage(models.ConversationMessage{UserID: user.ID, Body: "latest t3", Author: "Friday", DefaultModel: models.DefaultModel{Timestamps: models.Timestamps{CreatedAt: t3}}})

	messages, err := user.Conversation(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), messages, 3)

	assert.Equal(suite.T(), "earliest t2", messages[0].Body)
	assert.Equal(suite.T(), "first by time t1", messages[1].Body)
	assert.Equal(suite.T(), "latest t3", messages[2].Body)
}

func (suite *TestSuiteStandard) TestAppendMessageDefaults() {
	user := suite.createTestUser(models.User{})

	require.Nil(suite.T(), user.AppendMessage(models.DB, "hello", "Sam"))
	require.Nil(suite.T(), user.AppendMedia(models.DB, "https://example.com/chart.png", "Friday"))

	messages, err := user.Conversation(models.DB)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), messages, 2)

	assert.Equal(suite.T(), models.MessageText, messages[0].Kind)
	assert.Equal(suite.T(), models.MessageMedia, messages[1].Kind)
	assert.Equal(suite.T(), "Sam", messages[0].Author)
	assert.Equal(suite.T(), "Friday", messages[1].Author)
}

func (suite *TestSuiteStandard) TestRecentConversationWindow() {
	user := suite.createTestUser(models.User{})
	base := time.Date(2022, 7, 1, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		_ = suite.createTestMessage(models.ConversationMessage{
			UserID:       user.ID,
			Body:         fmt.Sprintf("message %d", i),
			Author:       "Sam",
			DefaultModel: models.DefaultModel{Timestamps: models.Timestamps{CreatedAt: base.Add(time.Duration(i) * time.Minute)}},
		})
	}

	recent, err := user.RecentConversation(models.DB, 20)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), recent, 20)

	// The window keeps the most recent entries, still in ascending order
	assert.Equal(suite.T(), "message 5", recent[0].Body)
	assert.Equal(suite.T(), "message 24", recent[19].Body)
}
