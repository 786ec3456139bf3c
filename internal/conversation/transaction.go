package conversation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/fridaybot/backend/internal/models"
)

// fallbackCategory labels a transaction whose category could not be
// determined.
const fallbackCategory = "Uncategorized"

const unclearTransaction = "Your transaction was not very clear... please tell me where you spent your money and how much."

// trackExpense extracts the line items from an expense message and records
// them. The batch is all or nothing: if any item is too vague to record,
// nothing is written and the user is asked to clarify. Returns the number of
// transactions recorded.
func (s *Service) trackExpense(ctx context.Context, queue *replyQueue, body string) (int, error) {
	now := s.options.Now()

	answer, err := s.generator.Generate(ctx, extractionPrompt(body, now))
	if err != nil {
		log.Warn().Err(err).Msg("transaction extraction failed")
		return 0, queue.text(unclearTransaction)
	}

	items, err := parseLineItems(answer)
	if err != nil || len(items) == 0 {
		log.Warn().Err(err).Str("answer", answer).Msg("transaction extraction unparseable")
		return 0, queue.text(unclearTransaction)
	}

	amounts := make([]decimal.Decimal, len(items))
	for i, item := range items {
		if (item.Item.String() == models.UnknownField && item.Location.String() == models.UnknownField) ||
			item.Amount.String() == models.UnknownField {
			return 0, queue.text(unclearTransaction)
		}

		amount, err := decimal.NewFromString(item.Amount.String())
		if err != nil || amount.IsNegative() {
			return 0, queue.text(unclearTransaction)
		}

		amounts[i] = amount
	}

	names, err := queue.user.CategoryNames(s.db)
	if err != nil {
		return 0, err
	}

	for i, item := range items {
		category := s.categorize(ctx, item.Item.String(), names)

		_, err := queue.user.RecordTransaction(s.db, item.Item.String(), item.Location.String(),
			category, amounts[i], item.Date.String(), now)
		if err != nil {
			return 0, err
		}
	}

	keyword := "transactions"
	if len(items) == 1 {
		keyword = "transaction"
	}

	reply := fmt.Sprintf("Awesome! I've logged %d %s into your expense records.", len(items), keyword)

	return len(items), queue.text(reply)
}

// categorize labels a purchased item with one of the user's category names.
func (s *Service) categorize(ctx context.Context, item string, names []string) string {
	if len(names) == 0 {
		return fallbackCategory
	}

	label, err := s.classifier.Classify(ctx, item, categoryExamples, names)
	if err != nil {
		log.Warn().Err(err).Str("item", item).Msg("transaction categorization failed")
		return fallbackCategory
	}

	return label
}
