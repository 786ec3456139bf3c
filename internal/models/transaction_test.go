package models_test

import (
	"time"

	"github.com/fridaybot/backend/internal/models"
	"github.com/fridaybot/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestTransactionTitle() {
	assert.Equal(suite.T(), "Coffee @ Shell", models.TransactionTitle("Coffee", "Shell"))
	assert.Equal(suite.T(), "Coffee", models.TransactionTitle("Coffee", "?"))
	assert.Equal(suite.T(), "Shell", models.TransactionTitle("?", "Shell"))
}

func (suite *TestSuiteStandard) TestTransactionTimestamp() {
	now := time.Date(2022, 4, 20, 13, 37, 42, 0, time.UTC)

	// A date on the current day keeps the wall-clock time
	assert.Equal(suite.T(), now, models.TransactionTimestamp("4-20-2022", now))

	// Any other date becomes midnight of that date
	assert.Equal(suite.T(),
		time.Date(2022, 4, 19, 0, 0, 0, 0, time.UTC),
		models.TransactionTimestamp("4-19-2022", now))

	// An unparseable date falls back to now
	assert.Equal(suite.T(), now, models.TransactionTimestamp("the other day", now))
	assert.Equal(suite.T(), now, models.TransactionTimestamp("?", now))
}

func (suite *TestSuiteStandard) TestRecordTransaction() {
	user := suite.createTestUser(models.User{})
	now := time.Date(2022, 4, 20, 13, 37, 42, 0, time.UTC)

	transaction, err := user.RecordTransaction(models.DB, "Coffee", "Shell", "Food", decimal.NewFromInt(5), "4-19-2022", now)
	require.Nil(suite.T(), err)

	assert.Equal(suite.T(), "Coffee @ Shell", transaction.Title)
	assert.Equal(suite.T(), "Food", transaction.Category)
	assert.Equal(suite.T(), time.Date(2022, 4, 19, 0, 0, 0, 0, time.UTC), transaction.Date)
	assert.True(suite.T(), transaction.Amount.Equal(decimal.NewFromInt(5)))
}

func (suite *TestSuiteStandard) TestRecentTransactions() {
	user := suite.createTestUser(models.User{})
	other := suite.createTestUser(models.User{})
	month := types.NewMonth(2022, 7)

	second := suite.createTestTransaction(models.Transaction{UserID: user.ID, Title: "Lunch", Category: "Food", Amount: decimal.NewFromInt(12), Date: time.Date(2022, 7, 10, 12, 0, 0, 0, time.UTC)})
	first := suite.createTestTransaction(models.Transaction{UserID: user.ID, Title: "Bus", Category: "Transportation", Amount: decimal.NewFromInt(3), Date: time.Date(2022, 7, 2, 8, 0, 0, 0, time.UTC)})

	// Other month and other user are filtered out
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Title: "Old", Category: "Food", Amount: decimal.NewFromInt(99), Date: time.Date(2022, 6, 30, 23, 0, 0, 0, time.UTC)})
	_ = suite.createTestTransaction(models.Transaction{UserID: other.ID, Title: "Not mine", Category: "Food", Amount: decimal.NewFromInt(50), Date: time.Date(2022, 7, 5, 9, 0, 0, 0, time.UTC)})

	all, err := user.RecentTransactions(models.DB, month, models.AllCategories)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), all, 2)

	// Sorted by date ascending
	assert.Equal(suite.T(), first.ID, all[0].ID)
	assert.Equal(suite.T(), second.ID, all[1].ID)

	food, err := user.RecentTransactions(models.DB, month, "Food")
	require.Nil(suite.T(), err)
	require.Len(suite.T(), food, 1)
	assert.Equal(suite.T(), "Lunch", food[0].Title)

	// The category filter supports glob patterns
	globbed, err := user.RecentTransactions(models.DB, month, "Trans*")
	require.Nil(suite.T(), err)
	require.Len(suite.T(), globbed, 1)
	assert.Equal(suite.T(), "Bus", globbed[0].Title)
}

func (suite *TestSuiteStandard) TestSpentInMonth() {
	user := suite.createTestUser(models.User{})
	month := types.NewMonth(2022, 7)

	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "Food", Amount: decimal.NewFromInt(12), Date: time.Date(2022, 7, 10, 12, 0, 0, 0, time.UTC)})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Category: "Food", Amount: decimal.NewFromFloat(7.5), Date: time.Date(2022, 7, 11, 12, 0, 0, 0, time.UTC)})

	spent, err := user.SpentInMonth(models.DB, month, "Food")
	require.Nil(suite.T(), err)
	assert.True(suite.T(), spent.Equal(decimal.NewFromFloat(19.5)))
}
