package conversation

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/fridaybot/backend/internal/models"
)

// noName is the token the name extraction answers with when the message
// contains no usable name.
const noName = "None"

const nameReprompt = "I'm sorry, I don't think I understood. What would you like me to call you?"

// register consumes a message from a user that has not been named yet. On
// success it names the user, sets up the default budget categories and emits
// the onboarding sequence. Otherwise it reprompts and the user stays in
// registration.
func (s *Service) register(ctx context.Context, queue *replyQueue, body string) error {
	name, err := s.extractName(ctx, body)
	if err != nil {
		log.Warn().Err(err).Msg("name extraction failed")
		return queue.text(nameReprompt)
	}

	if name == "" {
		return queue.text(nameReprompt)
	}

	if err := queue.user.SetName(s.db, name); err != nil {
		return err
	}

	if err := queue.user.SetState(s.db, models.StateAboutApp); err != nil {
		return err
	}

	if err := queue.user.SetupDefaultCategories(s.db); err != nil {
		return err
	}

	return s.onboard(queue)
}

// extractName pulls a display name out of a registration message. An empty
// name means none was found.
func (s *Service) extractName(ctx context.Context, body string) (string, error) {
	answer, err := s.generator.Generate(ctx, namePrompt(body, s.options.AssistantName))
	if err != nil {
		return "", err
	}

	name := strings.TrimSpace(answer)
	if name == "" || strings.EqualFold(name, noName) || strings.EqualFold(name, s.options.AssistantName) {
		return "", nil
	}

	return name, nil
}

// onboard queues the welcome sequence for a freshly registered user.
func (s *Service) onboard(queue *replyQueue) error {
	amounts, err := queue.user.CategoryAmounts(s.db)
	if err != nil {
		return err
	}

	messages := []string{
		fmt.Sprintf("Alright %s, you're all setup!\nI am here to help you with all of your budgeting needs.\n", queue.user.Name),
		"I can help you with tracking your spending, allocating budgets, setting up categories for budgeting, visualizing your spending with graphs, and giving reports on your spending.\n",
		"I can also have helpful discussions about budgeting and finance with you and provide inspiration when it comes to financial matters.",
		"I have set you up with a few default categories for now, you can tell me to set or adjust the budget but you don't have to.",
		categoryListing(amounts),
		fmt.Sprintf("How can I help %s?", queue.user.Name),
	}

	for _, message := range messages {
		if err := queue.text(message); err != nil {
			return err
		}
	}

	return nil
}

// categoryListing renders the category names and their allocations, one per
// line. Categories without an allocation show only the name.
func categoryListing(amounts map[string]string) string {
	var b strings.Builder

	b.WriteString("Here are your categories:\n")

	for _, name := range sortedKeys(amounts) {
		if amounts[name] == models.UnsetAmount {
			fmt.Fprintf(&b, "%s\n", name)
		} else {
			fmt.Fprintf(&b, "%s : $%s\n", name, amounts[name])
		}
	}

	return b.String()
}
