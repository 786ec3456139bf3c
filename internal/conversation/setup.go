package conversation

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/fridaybot/backend/internal/models"
)

// modifyBudget applies a budget change request. The generation capability
// answers with the complete new category mapping, which replaces the user's
// categories wholesale. Anything the service cannot make sense of turns into
// an elaboration request.
func (s *Service) modifyBudget(ctx context.Context, queue *replyQueue, body string) error {
	intent, err := s.classifier.Classify(ctx, body, setupExamples, setupLabels)
	if err != nil {
		log.Warn().Err(err).Msg("setup intent classification failed")
		return s.elaborate(ctx, queue, body)
	}

	if intent != setupChangeBudget {
		return s.elaborate(ctx, queue, body)
	}

	amounts, err := queue.user.CategoryAmounts(s.db)
	if err != nil {
		return err
	}

	answer, err := s.generator.Generate(ctx, budgetEditPrompt(body, amounts, queue.user.Name))
	if err != nil {
		log.Warn().Err(err).Msg("budget edit generation failed")
		return s.elaborate(ctx, queue, body)
	}

	edit, err := parseBudgetEdit(answer)
	if err != nil {
		log.Warn().Err(err).Str("answer", answer).Msg("budget edit unparseable")
		return s.elaborate(ctx, queue, body)
	}

	replacement := make(map[string]string, len(edit.Categories))
	for name, amount := range edit.Categories {
		replacement[name] = amount.String()
	}

	err = queue.user.ReplaceCategories(s.db, replacement)
	if errors.Is(err, models.ErrInvalidAmount) {
		log.Warn().Err(err).Msg("budget edit with invalid amount")
		return s.elaborate(ctx, queue, body)
	}
	if err != nil {
		return err
	}

	return queue.text(edit.Response)
}
