// Package conversation implements the state machine that decides what an
// inbound message means, dispatches it to the correct handler and maintains
// the user's budget ledger and conversation history along the way.
package conversation

import (
	"context"
	"time"

	"github.com/fridaybot/backend/internal/ai"
	"github.com/fridaybot/backend/internal/charts"
	"github.com/fridaybot/backend/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DefaultAssistantName is the name the assistant goes by when none is
// configured.
const DefaultAssistantName = "Friday"

// discussionWindow is the number of history entries handed to the open-ended
// generation capability.
const discussionWindow = 20

// ReplyKind is the kind of an outbound reply.
type ReplyKind string

const (
	ReplyText  ReplyKind = "text"
	ReplyMedia ReplyKind = "media"
)

// Reply is one outbound message produced while processing an inbound one.
type Reply struct {
	Kind    ReplyKind
	Content string
}

// Options configures optional service behavior.
type Options struct {
	// AssistantName is the name the assistant refers to itself by.
	// Defaults to DefaultAssistantName.
	AssistantName string

	// GenerativeInquiry switches account inquiries from the deterministic
	// text renderings to a generated summary.
	GenerativeInquiry bool

	// VisualInquiry enables chart replies for account inquiries. Requires
	// Charts and MediaBaseURL.
	VisualInquiry bool

	// Charts renders spending charts for visual inquiries.
	Charts charts.Renderer

	// MediaBaseURL is the public base URL under which rendered charts are
	// served.
	MediaBaseURL string

	// Now returns the current time. Defaults to time.Now. Tests inject a
	// fixed clock here.
	Now func() time.Time
}

// Service routes inbound messages. It is constructed once at process startup
// and safe for concurrent use, processing is serialized per user.
type Service struct {
	db         *gorm.DB
	classifier ai.Classifier
	generator  ai.Generator
	options    Options
	locks      *locks
}

// New returns a Service.
func New(db *gorm.DB, classifier ai.Classifier, generator ai.Generator, options Options) *Service {
	if options.AssistantName == "" {
		options.AssistantName = DefaultAssistantName
	}

	if options.Now == nil {
		options.Now = time.Now
	}

	return &Service{
		db:         db,
		classifier: classifier,
		generator:  generator,
		options:    options,
		locks:      newLocks(),
	}
}

// replyQueue collects the outbound messages for one inbound message. Every
// queued reply is also appended to the user's conversation history under the
// assistant's name.
type replyQueue struct {
	service *Service
	user    *models.User
	replies []Reply
}

func (q *replyQueue) text(body string) error {
	q.replies = append(q.replies, Reply{Kind: ReplyText, Content: body})
	return q.user.AppendMessage(q.service.db, body, q.service.options.AssistantName)
}

func (q *replyQueue) media(reference string) error {
	q.replies = append(q.replies, Reply{Kind: ReplyMedia, Content: reference})
	return q.user.AppendMedia(q.service.db, reference, q.service.options.AssistantName)
}

// Process handles one inbound message for a user and returns the ordered
// queue of replies for delivery. It mutates the user's state, history and
// ledger as a side effect.
//
// Recoverable conditions (capability failures, unparseable extractions,
// ambiguous input) surface as in-character replies. A returned error is an
// invariant violation: the caller logs it and sends nothing.
//
// Processing is serialized per user. Messages from different users are
// processed independently.
func (s *Service) Process(ctx context.Context, user *models.User, body string) ([]Reply, error) {
	unlock := s.locks.lock(user.ID)
	defer unlock()

	queue := &replyQueue{service: s, user: user}

	// A user without a name is still registering. The message that supplies
	// the name is consumed entirely by registration.
	if user.State == models.StateRegistration {
		err := s.register(ctx, queue, body)
		if err != nil {
			return nil, err
		}
		return queue.replies, nil
	}

	err := user.AppendMessage(s.db, body, user.Name)
	if err != nil {
		return nil, err
	}

	state, err := s.classifyIntent(ctx, body)
	if err != nil {
		// The classifier being unavailable is not fatal, ask the user to
		// try again in other words.
		log.Warn().Err(err).Msg("intent classification failed")
		if err := user.SetState(s.db, models.StateNeedsElaboration); err != nil {
			return nil, err
		}
		if err := s.elaborate(ctx, queue, body); err != nil {
			return nil, err
		}
		return queue.replies, nil
	}

	if !knownIntent(state) {
		// Accepted degenerate case: no reply at all
		log.Info().Str("label", string(state)).Msg("unhandled intent classification")
		return queue.replies, nil
	}

	err = user.SetState(s.db, state)
	if err != nil {
		return nil, err
	}

	switch state {
	case models.StateModifyBudget:
		err = s.modifyBudget(ctx, queue, body)

	case models.StateDiscussion:
		err = s.discuss(ctx, queue, body)

	case models.StateAboutApp:
		err = s.about(ctx, queue, body)

	case models.StateAccountInquiry:
		err = s.inquire(ctx, queue, body)

	case models.StateTrackExpense:
		var logged int
		logged, err = s.trackExpense(ctx, queue, body)
		if err == nil && logged > 0 {
			// Follow up with the updated spending overview
			err = s.inquire(ctx, queue, "Show me my transaction history")
		}
	}

	if err != nil {
		return nil, err
	}

	return queue.replies, nil
}

// classifyIntent runs the five-way top-level intent classification.
func (s *Service) classifyIntent(ctx context.Context, body string) (models.ConversationState, error) {
	label, err := s.classifier.Classify(ctx, body, intentExamples, intentLabels)
	if err != nil {
		return "", err
	}

	return models.ConversationState(label), nil
}

func knownIntent(state models.ConversationState) bool {
	switch state {
	case models.StateModifyBudget, models.StateDiscussion, models.StateAboutApp,
		models.StateAccountInquiry, models.StateTrackExpense:
		return true
	}

	return false
}
