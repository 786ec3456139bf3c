package models

import (
	"fmt"
	"strings"

	"github.com/fridaybot/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// UnsetAmount is the sentinel for a category without an allocated budget.
// It is distinct from a budget of zero.
const UnsetAmount = "N/A"

// DefaultCategoryNames are the categories every user starts out with.
var DefaultCategoryNames = []string{
	"Housing",
	"Transportation",
	"Food",
	"Entertainment",
	"Supplies",
	"Clothing",
	"Health",
}

// BudgetCategory represents one spending category of a user, with an
// optional allocated budget.
type BudgetCategory struct {
	DefaultModel
	UserID uuid.UUID `gorm:"uniqueIndex:budget_category_user_name"`
	User   User      `json:"-"`
	Name   string    `gorm:"uniqueIndex:budget_category_user_name"`
	Amount decimal.NullDecimal `gorm:"type:DECIMAL(20,8)"` // Invalid means no budget cap is set
}

// BeforeSave trims whitespace from the name.
func (c *BudgetCategory) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// CategoryStatus is the tier a category is in for a month, derived from the
// remaining budget.
type CategoryStatus string

const (
	StatusSeverelyOver CategoryStatus = "Severely over budget"
	StatusSlightlyOver CategoryStatus = "Slightly over budget"
	StatusApproaching  CategoryStatus = "Approaching budget"
	StatusSafe         CategoryStatus = "Safe"
)

// StatusForRemaining computes the status tier for a signed remaining amount.
func StatusForRemaining(remaining decimal.Decimal) CategoryStatus {
	switch {
	case remaining.LessThan(decimal.NewFromInt(-50)):
		return StatusSeverelyOver
	case remaining.LessThan(decimal.Zero):
		return StatusSlightlyOver
	case remaining.LessThan(decimal.NewFromInt(20)):
		return StatusApproaching
	default:
		return StatusSafe
	}
}

// CategoryMonth contains the spending data of one category for one month.
// Allocated, Remaining and Status are only set when the category has a
// budget. Remaining is floored at zero, the signed value already drove
// Status.
type CategoryMonth struct {
	Name      string
	Spent     decimal.Decimal
	Allocated decimal.NullDecimal
	Remaining decimal.Decimal
	Status    CategoryStatus
}

// Budgeted reports whether the category has an allocated budget.
func (m CategoryMonth) Budgeted() bool {
	return m.Allocated.Valid
}

// CategorySummary contains the per-category spending data for one month and
// the totals across all budgeted categories.
type CategorySummary struct {
	Categories     []CategoryMonth
	TotalSpent     decimal.Decimal
	TotalRemaining decimal.Decimal // floored at zero, like CategoryMonth.Remaining
	TotalAllocated decimal.Decimal
	Status         CategoryStatus
}

// Categories returns all budget categories of the user, sorted by name.
func (u User) Categories(db *gorm.DB) ([]BudgetCategory, error) {
	var categories []BudgetCategory

	err := db.Where(&BudgetCategory{UserID: u.ID}).Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// CategoryNames returns the names of all budget categories of the user.
func (u User) CategoryNames(db *gorm.DB) ([]string, error) {
	categories, err := u.Categories(db)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}

	return names, nil
}

// SetupDefaultCategories installs the default category set for a user.
//
// It must only be called once, at onboarding. A second call is an invariant
// violation and returns ErrCategoriesExist.
func (u User) SetupDefaultCategories(db *gorm.DB) error {
	var count int64
	err := db.Model(&BudgetCategory{}).Where(&BudgetCategory{UserID: u.ID}).Count(&count).Error
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrCategoriesExist
	}

	for _, name := range DefaultCategoryNames {
		err = db.Create(&BudgetCategory{UserID: u.ID, Name: name}).Error
		if err != nil {
			return err
		}
	}

	return nil
}

// CategoryAmounts returns the current category allocations as a name to
// amount mapping. Categories without a budget map to UnsetAmount. This is the
// "before" state handed to the budget edit capability.
func (u User) CategoryAmounts(db *gorm.DB) (map[string]string, error) {
	categories, err := u.Categories(db)
	if err != nil {
		return nil, err
	}

	amounts := make(map[string]string, len(categories))
	for _, category := range categories {
		if !category.Amount.Valid {
			amounts[category.Name] = UnsetAmount
			continue
		}

		amounts[category.Name] = category.Amount.Decimal.String()
	}

	return amounts, nil
}

// ReplaceCategories discards the user's entire category set and installs the
// given name to amount mapping in its place. This is a full replace, not a
// merge: categories missing from the mapping are gone afterwards.
//
// Amount values of UnsetAmount become categories without a budget. Anything
// else must parse as a non-negative decimal, otherwise the whole replace is
// rolled back.
func (u User) ReplaceCategories(db *gorm.DB, amounts map[string]string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where(&BudgetCategory{UserID: u.ID}).Delete(&BudgetCategory{}).Error
		if err != nil {
			return err
		}

		for name, amount := range amounts {
			category := BudgetCategory{UserID: u.ID, Name: name}

			if amount != UnsetAmount {
				value, err := decimal.NewFromString(amount)
				if err != nil {
					return fmt.Errorf("%w: %q is not an amount", ErrInvalidAmount, amount)
				}

				if value.IsNegative() {
					return fmt.Errorf("%w: %q is negative", ErrInvalidAmount, amount)
				}

				category.Amount = decimal.NewNullDecimal(value)
			}

			err = tx.Create(&category).Error
			if err != nil {
				return err
			}
		}

		return nil
	})
}

// CategorySummary computes the spending summary for one month: the amount
// spent per category, and for budgeted categories the remaining budget and
// status tier, plus totals across all budgeted categories.
func (u User) CategorySummary(db *gorm.DB, month types.Month) (CategorySummary, error) {
	categories, err := u.Categories(db)
	if err != nil {
		return CategorySummary{}, err
	}

	summary := CategorySummary{
		TotalSpent:     decimal.Zero,
		TotalRemaining: decimal.Zero,
		TotalAllocated: decimal.Zero,
	}

	totalRemaining := decimal.Zero

	for _, category := range categories {
		spent, err := u.SpentInMonth(db, month, category.Name)
		if err != nil {
			return CategorySummary{}, err
		}

		entry := CategoryMonth{
			Name:  category.Name,
			Spent: spent,
		}

		if category.Amount.Valid {
			remaining := category.Amount.Decimal.Sub(spent)

			summary.TotalSpent = summary.TotalSpent.Add(spent)
			summary.TotalAllocated = summary.TotalAllocated.Add(category.Amount.Decimal)
			totalRemaining = totalRemaining.Add(remaining)

			entry.Allocated = category.Amount
			entry.Status = StatusForRemaining(remaining)

			// The signed value drives the status, the display value is
			// floored at zero
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			entry.Remaining = remaining
		}

		summary.Categories = append(summary.Categories, entry)
	}

	summary.Status = StatusForRemaining(totalRemaining)
	if totalRemaining.IsPositive() {
		summary.TotalRemaining = totalRemaining
	}

	return summary, nil
}
