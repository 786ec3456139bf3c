package conversation

import (
	"context"

	"github.com/rs/zerolog/log"
)

const elaborationFallback = "I can do that for you! Can you tell me a little more about what you would like me to do?"

// elaborate asks the user for more detail about an unclear request.
func (s *Service) elaborate(ctx context.Context, queue *replyQueue, body string) error {
	answer, err := s.generator.Generate(ctx, elaborationPrompt(body, queue.user.Name))
	if err != nil {
		log.Warn().Err(err).Msg("elaboration generation failed")
		return queue.text(elaborationFallback)
	}

	return queue.text(answer)
}
