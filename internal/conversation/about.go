package conversation

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// about answers a question about what the assistant can do. When the
// generation capability is unavailable a static description goes out
// instead.
func (s *Service) about(ctx context.Context, queue *replyQueue, body string) error {
	answer, err := s.generator.Generate(ctx, aboutPrompt(body, queue.user.Name, s.options.AssistantName))
	if err != nil {
		log.Warn().Err(err).Msg("about generation failed")
		return queue.text(aboutFallback(s.options.AssistantName))
	}

	return queue.text(answer)
}

func aboutFallback(assistantName string) string {
	return fmt.Sprintf("I'm %s! I can help you track your spending, allocate budgets, "+
		"set up categories for budgeting, and give reports on your spending.", assistantName)
}
