package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/KirkDiggler/astrolabe/internal/common/timeparse"
	"github.com/KirkDiggler/astrolabe/internal/models"
	"github.com/KirkDiggler/astrolabe/internal/surface"
)

// service implements the Service interface
type service struct {
	// Random number generator for selecting flavour lines
	rand *rand.Rand

	location *time.Location
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	location := config.Location
	if location == nil {
		location = time.UTC
	}

	return &service{
		rand:     rand.New(rand.NewSource(seed)),
		location: location,
	}, nil
}

// GetHelpMessage lists the bot's commands
func (s *service) GetHelpMessage(ctx context.Context, input *GetHelpMessageInput) (*GetHelpMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var b strings.Builder
	b.WriteString("**Available commands**\n")
	b.WriteString("`/help` - Show this message\n")
	b.WriteString("`/backlog` - List every event in the backlog\n")
	b.WriteString("`/add title date location description` - Add an event to the backlog\n")
	b.WriteString("`/remove title` - Remove an event from the backlog\n")
	b.WriteString("`/search keyword` - Find events whose title contains the keyword\n")
	b.WriteString("`/event title date time` - Propose scheduling an event and open a vote\n")
	b.WriteString("`/republish title` - Retry creating the calendar entry for an approved event\n")
	b.WriteString(fmt.Sprintf("\nDates use MM/DD/YYYY and times use HH:MM AM/PM. Vote with %s or %s on a proposal.",
		models.SignalApprove.Emoji(), models.SignalReject.Emoji()))

	return &GetHelpMessageOutput{
		Message: b.String(),
	}, nil
}

// GetBacklogMessage renders a guild's event list as ordered chunks
func (s *service) GetBacklogMessage(ctx context.Context, input *GetBacklogMessageInput) (*GetBacklogMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Events) == 0 {
		return &GetBacklogMessageOutput{
			Chunks: []string{"The backlog is empty. Add something with `/add`."},
			Empty:  true,
		}, nil
	}

	var b strings.Builder
	b.WriteString("**Event backlog**\n")
	for _, event := range input.Events {
		if event == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("**%s** (%s)\n", event.Title, event.Date))
		if event.Description != "" {
			b.WriteString(event.Description)
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("Location: %s\n", event.Location))
		if event.ScheduledAt != nil {
			b.WriteString(fmt.Sprintf("Scheduled: %s\n", timeparse.Format(event.ScheduledAt.In(s.location))))
		}
		b.WriteString("\n")
	}

	return &GetBacklogMessageOutput{
		Chunks: SplitMessage(strings.TrimRight(b.String(), "\n"), surface.MaxMessageLength),
	}, nil
}

// GetSearchResultsMessage renders search matches as ordered chunks
func (s *service) GetSearchResultsMessage(ctx context.Context, input *GetSearchResultsMessageInput) (*GetSearchResultsMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if len(input.Events) == 0 {
		return &GetSearchResultsMessageOutput{
			Chunks: []string{fmt.Sprintf("No events found matching '%s'.", input.Query)},
			Empty:  true,
		}, nil
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("**Events matching '%s'**\n", input.Query))
	for _, event := range input.Events {
		if event == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("%s\nDate: %s\nLocation: %s\nDescription: %s\n\n",
			event.Title, event.Date, event.Location, event.Description))
	}

	return &GetSearchResultsMessageOutput{
		Chunks: SplitMessage(strings.TrimRight(b.String(), "\n"), surface.MaxMessageLength),
	}, nil
}

// GetProposalMessage returns the text of a new voting proposal
func (s *service) GetProposalMessage(ctx context.Context, input *GetProposalMessageInput) (*GetProposalMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Title == "" {
		return nil, errors.New("title is required")
	}

	proposer := input.ProposerName
	if proposer == "" {
		proposer = "Someone"
	}

	openers := []string{
		"📅 %s wants to schedule **%s**!",
		"📅 %s is rallying the crew for **%s**!",
		"📅 %s put **%s** on the table!",
		"📅 Heads up, %s proposed **%s**!",
	}
	opener := fmt.Sprintf(openers[s.rand.Intn(len(openers))], proposer, input.Title)

	message := fmt.Sprintf("%s\nWhen: %s\nReact with %s to approve or %s to reject.",
		opener,
		timeparse.Format(input.ScheduledAt.In(s.location)),
		models.SignalApprove.Emoji(),
		models.SignalReject.Emoji())
	if !input.Deadline.IsZero() {
		message += fmt.Sprintf("\nVoting closes %s.", timeparse.Format(input.Deadline.In(s.location)))
	}

	return &GetProposalMessageOutput{
		Message: message,
	}, nil
}

// GetProposalWithdrawnMessage says a posted proposal could not be opened
func (s *service) GetProposalWithdrawnMessage(ctx context.Context, input *GetProposalWithdrawnMessageInput) (*GetProposalWithdrawnMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}
	if input.Title == "" {
		return nil, errors.New("title is required")
	}

	return &GetProposalWithdrawnMessageOutput{
		Message: fmt.Sprintf("⚠️ Voting on **%s** could not be opened. Reactions on the proposal above won't be counted, try again in a bit.", input.Title),
	}, nil
}

// GetOutcomeMessage announces how a vote resolved
func (s *service) GetOutcomeMessage(ctx context.Context, input *GetOutcomeMessageInput) (*GetOutcomeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var messages []string
	switch input.Status {
	case models.SessionStatusApproved:
		messages = []string{
			"✅ The votes are in: **%s** is happening!",
			"✅ **%s** got the green light!",
			"✅ Approved! **%s** is on the calendar.",
		}
	case models.SessionStatusRejected:
		messages = []string{
			"❌ **%s** didn't make the cut.",
			"❌ The crew has spoken: no **%s** this time.",
			"❌ **%s** was voted down.",
		}
	case models.SessionStatusExpired:
		messages = []string{
			"⌛ Voting on **%s** closed without enough votes.",
			"⌛ Crickets. **%s** expired without a decision.",
		}
	default:
		return nil, fmt.Errorf("no outcome message for status %q", input.Status)
	}

	message := fmt.Sprintf(messages[s.rand.Intn(len(messages))], input.Title)
	message += fmt.Sprintf(" (%s %d / %s %d)",
		models.SignalApprove.Emoji(), input.ApproveCount,
		models.SignalReject.Emoji(), input.RejectCount)

	return &GetOutcomeMessageOutput{
		Message: message,
	}, nil
}

// GetPublishedMessage announces a newly scheduled event
func (s *service) GetPublishedMessage(ctx context.Context, input *GetPublishedMessageInput) (*GetPublishedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	message := fmt.Sprintf("🎉 Event created: **%s** on %s!", input.Title, timeparse.Format(input.ScheduledAt.In(s.location)))
	if input.Location != "" {
		message += fmt.Sprintf(" Join us in %s.", input.Location)
	}
	if input.URL != "" {
		message += "\n" + input.URL
	}

	return &GetPublishedMessageOutput{
		Message: message,
	}, nil
}

// GetPublishFailedMessage reports that the calendar entry could not be created
func (s *service) GetPublishFailedMessage(ctx context.Context, input *GetPublishFailedMessageInput) (*GetPublishFailedMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	message := fmt.Sprintf("⚠️ The vote for **%s** on %s passed and it stays in the backlog, but the scheduled event could not be created",
		input.Title, timeparse.Format(input.ScheduledAt.In(s.location)))
	if input.Error != "" {
		message += ": " + input.Error
	}
	if input.Retryable {
		message += fmt.Sprintf("\nUse `/republish %s` to try again.", input.Title)
	}

	return &GetPublishFailedMessageOutput{
		Message: message,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	switch input.ErrorType {
	case ErrorTypeInvalidDateTime:
		message = "That date or time doesn't look right. Use MM/DD/YYYY and HH:MM AM/PM."
	case ErrorTypeDuplicateEvent:
		message = fmt.Sprintf("**%s** is already in the backlog.", input.Subject)
	case ErrorTypeStartsTooSoon:
		message = fmt.Sprintf("**%s** would start before voting closes, so it could never be scheduled. Pick a later time.", input.Subject)
	case ErrorTypeEventNotFound:
		message = fmt.Sprintf("Couldn't find an event called **%s**.", input.Subject)
	case ErrorTypeAlreadyProposed:
		message = fmt.Sprintf("There's already an open vote for **%s**.", input.Subject)
	case ErrorTypeStoreUnavailable:
		message = "I can't reach my notes right now. Try again in a moment."
	case ErrorTypeNothingToRetry:
		message = fmt.Sprintf("**%s** has no approved event waiting to be published.", input.Subject)
	default:
		fallbacks := []string{
			"Something went sideways. Try that again?",
			"Well, that didn't work. Give it another shot.",
		}
		message = fallbacks[s.rand.Intn(len(fallbacks))]
	}

	return &GetErrorMessageOutput{
		Message: message,
	}, nil
}

// SplitMessage breaks content into ordered chunks of at most limit runes,
// cutting after a newline when one falls in the back half of the window.
// Joining the chunks gives back content.
func SplitMessage(content string, limit int) []string {
	if content == "" {
		return nil
	}
	if limit <= 0 {
		limit = surface.MaxMessageLength
	}

	runes := []rune(content)
	var chunks []string
	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if runes[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		chunks = append(chunks, string(runes))
	}

	return chunks
}
