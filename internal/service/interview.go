package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elevatepath/elevatepath/internal/config"
	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

// Generation has no availability guarantee, so every turn carries fixed
// fallback content. A session never fails to progress because the model was
// down or returned garbage.
const (
	fallbackOpeningQuestion = "Let's begin. Could you briefly introduce yourself?"
	fallbackFeedback        = "Good effort. Try to be more specific."
	fallbackQuestion        = "Can you provide a concrete example that demonstrates this skill?"
	fallbackSummary         = "Interview ended. Summary unavailable right now."
)

type InterviewService struct {
	store  repository.SessionRepository
	ai     Completer
	window int

	// Per-session locks serialize concurrent turns so transcript order
	// matches invocation order.
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func NewInterviewService(store repository.SessionRepository, ai Completer) *InterviewService {
	return &InterviewService{
		store:  store,
		ai:     ai,
		window: config.TranscriptWindow,
		locks:  make(map[uuid.UUID]*sync.Mutex),
	}
}

type StartResult struct {
	SessionID uuid.UUID
	Question  string
}

type TurnResult struct {
	Feedback string
	Question string
}

type EndResult struct {
	Summary string
	Score   *float64
}

func (s *InterviewService) lockFor(sessionID uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

// Start creates an active session for the user and persists the opening
// question as the first AI message.
func (s *InterviewService) Start(ctx context.Context, user *domain.User, role string, category domain.InterviewCategory) (*StartResult, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.store.CreateSession(ctx, repository.CreateSessionInput{
		UserID:   user.ID,
		Role:     role,
		Category: category,
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	question := fallbackOpeningQuestion
	raw, err := s.ai.Complete(ctx, openingQuestionPrompt(role, category))
	if err != nil {
		slog.Error("opening question generation failed", "error", err, "session_id", sess.ID)
	} else {
		var parsed struct {
			Question *string `json:"question"`
		}
		if uerr := json.Unmarshal(raw, &parsed); uerr == nil &&
			parsed.Question != nil && strings.TrimSpace(*parsed.Question) != "" {
			question = *parsed.Question
		}
	}

	if _, err := s.store.CreateMessage(ctx, repository.CreateMessageInput{
		SessionID: sess.ID,
		Sender:    domain.SenderAI,
		Content:   question,
	}); err != nil {
		return nil, fmt.Errorf("store opening question: %w", err)
	}

	return &StartResult{SessionID: sess.ID, Question: question}, nil
}

// Send appends the candidate's answer, asks the model for feedback plus the
// next question over the recent transcript window, and persists the AI turn.
func (s *InterviewService) Send(ctx context.Context, user *domain.User, sessionID uuid.UUID, message string) (*TurnResult, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	lock := s.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	sess, err := s.ownedSession(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Status != domain.SessionActive {
		return nil, domain.ErrSessionEnded
	}

	if _, err := s.store.CreateMessage(ctx, repository.CreateMessageInput{
		SessionID: sess.ID,
		Sender:    domain.SenderUser,
		Content:   message,
	}); err != nil {
		return nil, fmt.Errorf("store answer: %w", err)
	}

	window, err := s.store.ListMessages(ctx, sess.ID, s.window)
	if err != nil {
		return nil, fmt.Errorf("load transcript window: %w", err)
	}

	feedback, question := fallbackFeedback, fallbackQuestion
	raw, err := s.ai.Complete(ctx, interviewTurnPrompt(sess.Role, sess.Category, renderTranscript(window)))
	if err != nil {
		slog.Error("turn generation failed", "error", err, "session_id", sess.ID)
	} else {
		var parsed struct {
			Feedback *string `json:"feedback"`
			Question *string `json:"question"`
		}
		if uerr := json.Unmarshal(raw, &parsed); uerr == nil &&
			parsed.Feedback != nil && parsed.Question != nil &&
			strings.TrimSpace(*parsed.Question) != "" {
			feedback, question = *parsed.Feedback, *parsed.Question
		}
	}

	// The evaluation field is always present on this message, even when the
	// resolved feedback is empty.
	if _, err := s.store.CreateMessage(ctx, repository.CreateMessageInput{
		SessionID:  sess.ID,
		Sender:     domain.SenderAI,
		Content:    question,
		Evaluation: &feedback,
	}); err != nil {
		return nil, fmt.Errorf("store ai turn: %w", err)
	}

	return &TurnResult{Feedback: feedback, Question: question}, nil
}

// End summarizes the full transcript and moves the session to ended. Calling
// End on an already ended session re-runs summarization over the same
// transcript; the last write wins.
func (s *InterviewService) End(ctx context.Context, user *domain.User, sessionID uuid.UUID) (*EndResult, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}

	sess, err := s.ownedSession(ctx, user, sessionID)
	if err != nil {
		return nil, err
	}

	transcript, err := s.store.ListMessages(ctx, sess.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("load transcript: %w", err)
	}

	summary := fallbackSummary
	var score *float64
	raw, err := s.ai.Complete(ctx, interviewSummaryPrompt(renderTranscript(transcript)))
	if err != nil {
		slog.Error("summary generation failed", "error", err, "session_id", sess.ID)
	} else {
		var parsed struct {
			Score       any      `json:"score"`
			Strengths   []string `json:"strengths"`
			Weaknesses  []string `json:"weaknesses"`
			Suggestions []string `json:"suggestions"`
			Overall     string   `json:"overall"`
		}
		if uerr := json.Unmarshal(raw, &parsed); uerr == nil {
			summary = fmt.Sprintf("Strengths: %s\nWeaknesses: %s\nSuggestions: %s\nOverall: %s",
				joinOrDash(parsed.Strengths), joinOrDash(parsed.Weaknesses),
				joinOrDash(parsed.Suggestions), orDash(parsed.Overall))
			// Only a real number in range counts as a score; anything else
			// leaves the previous value in place.
			if f, ok := parsed.Score.(float64); ok && f >= 0 && f <= 100 {
				score = &f
			}
		}
	}

	updated, err := s.store.EndSession(ctx, repository.EndSessionInput{
		SessionID: sess.ID,
		EndedAt:   time.Now(),
		Summary:   summary,
		Score:     score,
	})
	if err != nil {
		return nil, fmt.Errorf("end session: %w", err)
	}

	return &EndResult{Summary: updated.Summary, Score: updated.Score}, nil
}

// Get returns the session and its full transcript.
func (s *InterviewService) Get(ctx context.Context, user *domain.User, sessionID uuid.UUID) (*domain.InterviewSession, []domain.InterviewMessage, error) {
	if user == nil {
		return nil, nil, domain.ErrUnauthorized
	}
	sess, err := s.ownedSession(ctx, user, sessionID)
	if err != nil {
		return nil, nil, err
	}
	messages, err := s.store.ListMessages(ctx, sess.ID, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("load transcript: %w", err)
	}
	return sess, messages, nil
}

// List returns the user's sessions, newest first.
func (s *InterviewService) List(ctx context.Context, user *domain.User) ([]domain.InterviewSession, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	sessions, err := s.store.ListSessionsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// ownedSession fetches the session and verifies ownership. A session owned by
// someone else reports the same not-found error as a missing one.
func (s *InterviewService) ownedSession(ctx context.Context, user *domain.User, sessionID uuid.UUID) (*domain.InterviewSession, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != user.ID {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
