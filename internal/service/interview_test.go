package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
	"github.com/elevatepath/elevatepath/internal/repository/memory"
)

// stubAI is a canned Completer/TextGenerator. Prompts are recorded for
// assertions on transcript windowing.
type stubAI struct {
	raw     json.RawMessage
	err     error
	text    string
	textErr error
	prompts []string
}

func (s *stubAI) Complete(ctx context.Context, prompt string) (json.RawMessage, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return nil, s.err
	}
	return s.raw, nil
}

func (s *stubAI) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.text, s.textErr
}

func newInterviewFixture(t *testing.T, ai *stubAI) (*InterviewService, *memory.Store, *domain.User) {
	t.Helper()
	store := memory.NewStore()
	user, err := store.CreateUser(context.Background(), repository.CreateUserInput{
		AuthID: "auth-1", Email: "dev@example.com", Name: "Dev",
	})
	require.NoError(t, err)
	return NewInterviewService(store, ai), store, user
}

func TestStartWithUnreachableBackendUsesFallback(t *testing.T) {
	ai := &stubAI{err: &domain.CompletionError{Err: errors.New("connection refused")}}
	svc, store, user := newInterviewFixture(t, ai)

	result, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)
	assert.Equal(t, fallbackOpeningQuestion, result.Question)

	sess, err := store.GetSession(context.Background(), result.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionActive, sess.Status)
	assert.Equal(t, "Backend Engineer", sess.Role)

	messages, err := store.ListMessages(context.Background(), result.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.SenderAI, messages[0].Sender)
	assert.Equal(t, fallbackOpeningQuestion, messages[0].Content)
	assert.Nil(t, messages[0].Evaluation)
}

func TestStartUsesGeneratedQuestion(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Why do you want this role?"}`)}
	svc, store, user := newInterviewFixture(t, ai)

	result, err := svc.Start(context.Background(), user, "PM", domain.CategoryBehavioral)
	require.NoError(t, err)
	assert.Equal(t, "Why do you want this role?", result.Question)

	messages, err := store.ListMessages(context.Background(), result.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, result.Question, messages[0].Content)
}

func TestStartMissingQuestionFieldUsesFallback(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"greeting":"hello"}`)}
	svc, _, user := newInterviewFixture(t, ai)

	result, err := svc.Start(context.Background(), user, "PM", domain.CategoryBehavioral)
	require.NoError(t, err)
	assert.Equal(t, fallbackOpeningQuestion, result.Question)
}

func TestSendAppendsTurn(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.raw = json.RawMessage(`{"feedback":"Clear example.","question":"How would you handle failures in that queue?"}`)
	result, err := svc.Send(context.Background(), user, started.SessionID, "I used a queue to decouple services")
	require.NoError(t, err)
	assert.Equal(t, "Clear example.", result.Feedback)
	assert.Equal(t, "How would you handle failures in that queue?", result.Question)

	messages, err := store.ListMessages(context.Background(), started.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, domain.SenderUser, messages[1].Sender)
	assert.Equal(t, "I used a queue to decouple services", messages[1].Content)
	assert.Equal(t, domain.SenderAI, messages[2].Sender)
	require.NotNil(t, messages[2].Evaluation)
	assert.Equal(t, "Clear example.", *messages[2].Evaluation)
}

func TestSendGenerationFailureUsesFallbackPair(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.err = &domain.CompletionError{Err: errors.New("backend down")}
	result, err := svc.Send(context.Background(), user, started.SessionID, "my answer")
	require.NoError(t, err)
	assert.Equal(t, fallbackFeedback, result.Feedback)
	assert.Equal(t, fallbackQuestion, result.Question)

	messages, err := store.ListMessages(context.Background(), started.SessionID, 0)
	require.NoError(t, err)
	require.Len(t, messages, 3)
	require.NotNil(t, messages[2].Evaluation)
	assert.Equal(t, fallbackFeedback, *messages[2].Evaluation)
}

func TestSendMissingFieldUsesFallbackPair(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, _, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	// feedback present but question missing
	ai.raw = json.RawMessage(`{"feedback":"nice"}`)
	result, err := svc.Send(context.Background(), user, started.SessionID, "answer")
	require.NoError(t, err)
	assert.Equal(t, fallbackFeedback, result.Feedback)
	assert.Equal(t, fallbackQuestion, result.Question)
}

func TestSendEmptyFeedbackIsKept(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.raw = json.RawMessage(`{"feedback":"","question":"Next question?"}`)
	result, err := svc.Send(context.Background(), user, started.SessionID, "answer")
	require.NoError(t, err)
	assert.Equal(t, "", result.Feedback)
	assert.Equal(t, "Next question?", result.Question)

	messages, err := store.ListMessages(context.Background(), started.SessionID, 0)
	require.NoError(t, err)
	require.NotNil(t, messages[2].Evaluation)
	assert.Equal(t, "", *messages[2].Evaluation)
}

func TestSendToEndedSession(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.raw = json.RawMessage(`{"score":50,"strengths":[],"weaknesses":[],"suggestions":[],"overall":"ok"}`)
	_, err = svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)

	before, err := store.ListMessages(context.Background(), started.SessionID, 0)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), user, started.SessionID, "too late")
	assert.ErrorIs(t, err, domain.ErrSessionEnded)

	after, err := store.ListMessages(context.Background(), started.SessionID, 0)
	require.NoError(t, err)
	assert.Len(t, after, len(before))
}

func TestSendOtherUsersSession(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	other, err := store.CreateUser(context.Background(), repository.CreateUserInput{AuthID: "auth-2"})
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), other, started.SessionID, "not mine")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	messages, err := store.ListMessages(context.Background(), started.SessionID, 0)
	require.NoError(t, err)
	assert.Len(t, messages, 1)
}

func TestSendEmptyMessage(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, _, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	_, err = svc.Send(context.Background(), user, started.SessionID, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}

func TestSendWindowsTranscript(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	// Pad the transcript well past the window.
	for i := 0; i < 50; i++ {
		_, err := store.CreateMessage(context.Background(), repository.CreateMessageInput{
			SessionID: started.SessionID,
			Sender:    domain.SenderUser,
			Content:   fmt.Sprintf("padding answer %d", i),
		})
		require.NoError(t, err)
	}

	ai.raw = json.RawMessage(`{"feedback":"ok","question":"next"}`)
	_, err = svc.Send(context.Background(), user, started.SessionID, "final answer")
	require.NoError(t, err)

	turnPrompt := ai.prompts[len(ai.prompts)-1]
	assert.Contains(t, turnPrompt, "final answer")
	assert.Contains(t, turnPrompt, "padding answer 49")
	// The opening question and earliest padding fell out of the 40-message window.
	assert.NotContains(t, turnPrompt, "padding answer 5")
}

func TestEndStoresSummaryAndScore(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.raw = json.RawMessage(`{"score":82,"strengths":["clarity"],"weaknesses":[],"suggestions":["more metrics"],"overall":"Solid."}`)
	result, err := svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)

	assert.Contains(t, result.Summary, "Strengths: clarity")
	assert.Contains(t, result.Summary, "Weaknesses: -")
	assert.Contains(t, result.Summary, "Suggestions: more metrics")
	assert.Contains(t, result.Summary, "Overall: Solid.")
	require.NotNil(t, result.Score)
	assert.Equal(t, 82.0, *result.Score)

	sess, err := store.GetSession(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionEnded, sess.Status)
	assert.NotNil(t, sess.EndedAt)
	assert.Equal(t, result.Summary, sess.Summary)
}

func TestEndGenerationFailureUsesFallbackSummary(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.err = &domain.CompletionError{Err: errors.New("backend down")}
	result, err := svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, fallbackSummary, result.Summary)
	assert.Nil(t, result.Score)

	sess, err := store.GetSession(context.Background(), started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionEnded, sess.Status)
}

func TestEndNonNumericScoreLeftUnset(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, _, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.raw = json.RawMessage(`{"score":"82","strengths":["clarity"],"weaknesses":[],"suggestions":[],"overall":"Fine."}`)
	result, err := svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)
	assert.Nil(t, result.Score)
	assert.Contains(t, result.Summary, "Strengths: clarity")
}

func TestEndOutOfRangeScoreLeftUnset(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, _, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.raw = json.RawMessage(`{"score":150,"strengths":[],"weaknesses":[],"suggestions":[],"overall":"?"}`)
	result, err := svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)
	assert.Nil(t, result.Score)
}

func TestEndTwiceKeepsEarlierScore(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, _, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	ai.raw = json.RawMessage(`{"score":82,"strengths":["clarity"],"weaknesses":[],"suggestions":[],"overall":"Good."}`)
	first, err := svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)
	require.NotNil(t, first.Score)

	// Re-running summarization without a usable score must not erase the
	// stored one.
	ai.err = &domain.CompletionError{Err: errors.New("backend down")}
	second, err := svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)
	require.NotNil(t, second.Score)
	assert.Equal(t, 82.0, *second.Score)
	assert.Equal(t, fallbackSummary, second.Summary)
}

func TestEndUsesFullTranscript(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		_, err := store.CreateMessage(context.Background(), repository.CreateMessageInput{
			SessionID: started.SessionID,
			Sender:    domain.SenderUser,
			Content:   fmt.Sprintf("padding answer %d", i),
		})
		require.NoError(t, err)
	}

	ai.raw = json.RawMessage(`{"score":70,"strengths":[],"weaknesses":[],"suggestions":[],"overall":"ok"}`)
	_, err = svc.End(context.Background(), user, started.SessionID)
	require.NoError(t, err)

	summaryPrompt := ai.prompts[len(ai.prompts)-1]
	assert.Contains(t, summaryPrompt, "padding answer 0")
	assert.Contains(t, summaryPrompt, "padding answer 49")
}

func TestGetAndListRequireOwnership(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"question":"Q1"}`)}
	svc, store, user := newInterviewFixture(t, ai)
	started, err := svc.Start(context.Background(), user, "Backend Engineer", domain.CategoryTechnical)
	require.NoError(t, err)

	other, err := store.CreateUser(context.Background(), repository.CreateUserInput{AuthID: "auth-2"})
	require.NoError(t, err)

	_, _, err = svc.Get(context.Background(), other, started.SessionID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	sess, messages, err := svc.Get(context.Background(), user, started.SessionID)
	require.NoError(t, err)
	assert.Equal(t, started.SessionID, sess.ID)
	require.Len(t, messages, 1)
	assert.Equal(t, domain.SenderAI, messages[0].Sender)

	mine, err := svc.List(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.List(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}
