package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/fridaybot/backend/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// UnknownField is the placeholder the extraction capability uses for line
// item fields it could not determine.
const UnknownField = "?"

// AllCategories selects transactions of every category when used as the
// category filter.
const AllCategories = "All"

// ExtractedDateLayout is the calendar date format the extraction capability
// is prompted to produce, e.g. "4-20-2022".
const ExtractedDateLayout = "1-2-2006"

// Transaction represents a single logged expense of a user. Transactions are
// written once and never edited.
type Transaction struct {
	DefaultModel
	UserID   uuid.UUID
	User     User   `json:"-"`
	Title    string // "{item} @ {location}", or whichever of the two is known
	Category string // Matches a category name of the user, or a fallback label
	Amount   decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Date     time.Time
}

// BeforeSave sets the timezone for the Date to UTC and trims whitespace.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Title = strings.TrimSpace(t.Title)
	t.Category = strings.TrimSpace(t.Category)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return nil
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return
}

// TransactionTitle derives the display title from the extracted item and
// location, either of which may be the UnknownField placeholder.
func TransactionTitle(item, location string) string {
	switch {
	case item == UnknownField:
		return location
	case location == UnknownField:
		return item
	default:
		return fmt.Sprintf("%s @ %s", item, location)
	}
}

// TransactionTimestamp derives the timestamp for a transaction from the
// extracted calendar date. A date on the same day as now uses the current
// wall-clock time, any other date uses midnight of that date. A date that
// does not parse falls back to now.
func TransactionTimestamp(date string, now time.Time) time.Time {
	parsed, err := time.Parse(ExtractedDateLayout, date)
	if err != nil {
		return now
	}

	year, month, day := parsed.Date()
	nowYear, nowMonth, nowDay := now.Date()
	if year == nowYear && month == nowMonth && day == nowDay {
		return now
	}

	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// RecordTransaction constructs a transaction from one extracted line item and
// appends it to the user's ledger.
func (u User) RecordTransaction(db *gorm.DB, item, location, category string, amount decimal.Decimal, date string, now time.Time) (Transaction, error) {
	transaction := Transaction{
		UserID:   u.ID,
		Title:    TransactionTitle(item, location),
		Category: category,
		Amount:   amount,
		Date:     TransactionTimestamp(date, now),
	}

	err := db.Create(&transaction).Error
	if err != nil {
		return Transaction{}, err
	}

	return transaction, nil
}

// RecentTransactions returns the user's transactions in the given month,
// sorted by date ascending. The category filter is either AllCategories, an
// exact category name or a glob pattern.
func (u User) RecentTransactions(db *gorm.DB, month types.Month, category string) ([]Transaction, error) {
	var transactions []Transaction

	err := db.Where(&Transaction{UserID: u.ID}).Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	matching := make([]Transaction, 0, len(transactions))
	for _, transaction := range transactions {
		if !month.Contains(transaction.Date) {
			continue
		}

		if category != AllCategories && !glob.Glob(category, transaction.Category) {
			continue
		}

		matching = append(matching, transaction)
	}

	slices.SortStableFunc(matching, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})

	return matching, nil
}

// SpentInMonth sums the transaction amounts of the user for one month,
// filtered with the same category filter as RecentTransactions.
func (u User) SpentInMonth(db *gorm.DB, month types.Month, category string) (decimal.Decimal, error) {
	transactions, err := u.RecentTransactions(db, month, category)
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, transaction := range transactions {
		total = total.Add(transaction.Amount)
	}

	return total, nil
}
