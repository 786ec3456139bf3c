package models_test

import (
	"time"

	"github.com/fridaybot/backend/internal/models"
	"github.com/fridaybot/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestCategoryNameUniquePerUser() {
	user := suite.createTestUser(models.User{})
	_ = suite.createTestCategory(models.BudgetCategory{UserID: user.ID, Name: "Food"})

	err := models.DB.Create(&models.BudgetCategory{UserID: user.ID, Name: "Food"}).Error
	assert.ErrorIs(suite.T(), err, models.ErrCategoryNameNotUnique)

	// The same name is fine for a different user
	other := suite.createTestUser(models.User{})
	err = models.DB.Create(&models.BudgetCategory{UserID: other.ID, Name: "Food"}).Error
	assert.Nil(suite.T(), err)
}

func (suite *TestSuiteStandard) TestSetupDefaultCategories() {
	user := suite.createTestUser(models.User{})

	require.Nil(suite.T(), user.SetupDefaultCategories(models.DB))

	names, err := user.CategoryNames(models.DB)
	require.Nil(suite.T(), err)
	assert.ElementsMatch(suite.T(), models.DefaultCategoryNames, names)

	// None of the defaults has a budget
	amounts, err := user.CategoryAmounts(models.DB)
	require.Nil(suite.T(), err)
	for name, amount := range amounts {
		assert.Equal(suite.T(), models.UnsetAmount, amount, "default category %s must not have a budget", name)
	}
}

func (suite *TestSuiteStandard) TestSetupDefaultCategoriesTwiceFails() {
	user := suite.createTestUser(models.User{})

	require.Nil(suite.T(), user.SetupDefaultCategories(models.DB))
	assert.ErrorIs(suite.T(), user.SetupDefaultCategories(models.DB), models.ErrCategoriesExist)
}

func (suite *TestSuiteStandard) TestReplaceCategoriesIsFullReplace() {
	user := suite.createTestUser(models.User{})

	require.Nil(suite.T(), user.ReplaceCategories(models.DB, map[string]string{
		"Food":   "100",
		"Health": models.UnsetAmount,
	}))

	require.Nil(suite.T(), user.ReplaceCategories(models.DB, map[string]string{
		"Food": "150",
	}))

	amounts, err := user.CategoryAmounts(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), map[string]string{"Food": "150"}, amounts, "Health must be gone after the replace")
}

func (suite *TestSuiteStandard) TestReplaceCategoriesUnsetRoundTrip() {
	user := suite.createTestUser(models.User{})

	require.Nil(suite.T(), user.ReplaceCategories(models.DB, map[string]string{
		"Gifts":  "0",
		"Travel": models.UnsetAmount,
	}))

	amounts, err := user.CategoryAmounts(models.DB)
	require.Nil(suite.T(), err)

	// A zero budget is a zero cap, not "no cap"
	assert.Equal(suite.T(), "0", amounts["Gifts"])
	assert.Equal(suite.T(), models.UnsetAmount, amounts["Travel"])
}

func (suite *TestSuiteStandard) TestReplaceCategoriesParseFailureRollsBack() {
	user := suite.createTestUser(models.User{})
	require.Nil(suite.T(), user.ReplaceCategories(models.DB, map[string]string{"Food": "100"}))

	err := user.ReplaceCategories(models.DB, map[string]string{"Food": "lots"})
	assert.ErrorIs(suite.T(), err, models.ErrInvalidAmount)

	err = user.ReplaceCategories(models.DB, map[string]string{"Food": "-3"})
	assert.ErrorIs(suite.T(), err, models.ErrInvalidAmount)

	// The previous set survives a failed replace
	amounts, err := user.CategoryAmounts(models.DB)
	require.Nil(suite.T(), err)
	assert.Equal(suite.T(), map[string]string{"Food": "100"}, amounts)
}

func (suite *TestSuiteStandard) TestStatusForRemaining() {
	tests := []struct {
		remaining int64
		status    models.CategoryStatus
	}{
		{-60, models.StatusSeverelyOver},
		{-51, models.StatusSeverelyOver},
		{-50, models.StatusSlightlyOver},
		{-10, models.StatusSlightlyOver},
		{-1, models.StatusSlightlyOver},
		{0, models.StatusApproaching},
		{15, models.StatusApproaching},
		{19, models.StatusApproaching},
		{20, models.StatusSafe},
		{50, models.StatusSafe},
	}

	for _, tt := range tests {
		assert.Equal(suite.T(), tt.status, models.StatusForRemaining(decimal.NewFromInt(tt.remaining)), "remaining %d", tt.remaining)
	}
}

func (suite *TestSuiteStandard) TestCategorySummary() {
	user := suite.createTestUser(models.User{})
	now := time.Date(2022, 7, 15, 12, 0, 0, 0, time.UTC)
	month := types.MonthOf(now)

	require.Nil(suite.T(), user.ReplaceCategories(models.DB, map[string]string{
		"Food":   "100",
		"Health": models.UnsetAmount,
	}))

	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Title: "Groceries", Category: "Food", Amount: decimal.NewFromInt(30), Date: now})
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Title: "Shampoo", Category: "Health", Amount: decimal.NewFromInt(10), Date: now})

	// A transaction in another month must not count
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Title: "Feast", Category: "Food", Amount: decimal.NewFromInt(200), Date: now.AddDate(0, -1, 0)})

	summary, err := user.CategorySummary(models.DB, month)
	require.Nil(suite.T(), err)
	require.Len(suite.T(), summary.Categories, 2)

	food := summary.Categories[0]
	assert.Equal(suite.T(), "Food", food.Name)
	assert.True(suite.T(), food.Budgeted())
	assert.True(suite.T(), food.Spent.Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), food.Remaining.Equal(decimal.NewFromInt(70)))
	assert.Equal(suite.T(), models.StatusSafe, food.Status)

	health := summary.Categories[1]
	assert.Equal(suite.T(), "Health", health.Name)
	assert.False(suite.T(), health.Budgeted())
	assert.True(suite.T(), health.Spent.Equal(decimal.NewFromInt(10)))
	assert.Empty(suite.T(), health.Status)

	// Totals only cover budgeted categories
	assert.True(suite.T(), summary.TotalSpent.Equal(decimal.NewFromInt(30)))
	assert.True(suite.T(), summary.TotalAllocated.Equal(decimal.NewFromInt(100)))
	assert.True(suite.T(), summary.TotalRemaining.Equal(decimal.NewFromInt(70)))
	assert.Equal(suite.T(), models.StatusSafe, summary.Status)
}

func (suite *TestSuiteStandard) TestCategorySummaryOverspent() {
	user := suite.createTestUser(models.User{})
	now := time.Date(2022, 7, 15, 12, 0, 0, 0, time.UTC)

	require.Nil(suite.T(), user.ReplaceCategories(models.DB, map[string]string{"Food": "10"}))
	_ = suite.createTestTransaction(models.Transaction{UserID: user.ID, Title: "Feast", Category: "Food", Amount: decimal.NewFromInt(100), Date: now})

	summary, err := user.CategorySummary(models.DB, types.MonthOf(now))
	require.Nil(suite.T(), err)
	require.Len(suite.T(), summary.Categories, 1)

	// Signed remaining of -90 drives the status, the displayed value is floored
	assert.Equal(suite.T(), models.StatusSeverelyOver, summary.Categories[0].Status)
	assert.True(suite.T(), summary.Categories[0].Remaining.IsZero())
	assert.Equal(suite.T(), models.StatusSeverelyOver, summary.Status)
	assert.True(suite.T(), summary.TotalRemaining.IsZero())
}
