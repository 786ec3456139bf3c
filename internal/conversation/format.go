package conversation

import (
	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fridaybot/backend/internal/models"
)

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// dollars renders an amount with a currency sign and thousands separators.
func dollars(amount decimal.Decimal) string {
	value, _ := amount.Float64()
	return amountPrinter.Sprintf("$%.2f", value)
}

// allocation renders a budget allocation, which may be unset.
func allocation(category models.CategoryMonth) string {
	if !category.Budgeted() {
		return models.UnsetAmount
	}

	return dollars(category.Allocated.Decimal)
}

func sortedKeys(m map[string]string) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}
