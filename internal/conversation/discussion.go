package conversation

import (
	"context"

	"github.com/rs/zerolog/log"
)

const discussionFallback = "I'm having a little trouble finding my words right now, could you say that again?"

// discuss continues an open-ended conversation from the recent history.
func (s *Service) discuss(ctx context.Context, queue *replyQueue, _ string) error {
	history, err := queue.user.RecentConversation(s.db, discussionWindow)
	if err != nil {
		return err
	}

	answer, err := s.generator.Generate(ctx, discussionPrompt(history, queue.user.Name, s.options.AssistantName))
	if err != nil {
		log.Warn().Err(err).Msg("discussion generation failed")
		return queue.text(discussionFallback)
	}

	return queue.text(answer)
}
