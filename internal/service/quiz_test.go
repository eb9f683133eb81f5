package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
	"github.com/elevatepath/elevatepath/internal/repository/memory"
)

func newQuizFixture(t *testing.T, ai *stubAI) (*QuizService, *memory.Store, *domain.User) {
	t.Helper()
	store := memory.NewStore()
	user, err := store.CreateUser(context.Background(), repository.CreateUserInput{AuthID: "auth-1"})
	require.NoError(t, err)
	user, err = store.UpdateProfile(context.Background(), repository.UpdateProfileInput{
		UserID:   user.ID,
		Industry: "tech",
		Skills:   []string{"Go", "SQL"},
	})
	require.NoError(t, err)
	return NewQuizService(store, ai, ai), store, user
}

const validQuiz = `{"questions":[
	{"question":"What is a goroutine?","options":["a","b","c","d"],"correctAnswer":"a","explanation":"e1"},
	{"question":"What does ACID stand for?","options":["a","b","c","d"],"correctAnswer":"b","explanation":"e2"}
]}`

func TestGenerateQuiz(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(validQuiz)}
	svc, _, user := newQuizFixture(t, ai)

	questions, err := svc.Generate(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, "What is a goroutine?", questions[0].Question)
	assert.Len(t, questions[0].Options, 4)

	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "tech professional")
	assert.Contains(t, ai.prompts[0], "Go, SQL")
}

func TestGenerateQuizFailurePropagates(t *testing.T) {
	ai := &stubAI{err: &domain.CompletionError{Err: errors.New("backend down")}}
	svc, _, user := newQuizFixture(t, ai)

	_, err := svc.Generate(context.Background(), user)
	var completionErr *domain.CompletionError
	assert.ErrorAs(t, err, &completionErr)
}

func TestGenerateQuizMalformedQuestion(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(`{"questions":[{"question":"q","options":["a","b"],"correctAnswer":"a"}]}`)}
	svc, _, user := newQuizFixture(t, ai)

	_, err := svc.Generate(context.Background(), user)
	var completionErr *domain.CompletionError
	assert.ErrorAs(t, err, &completionErr)
}

func TestGenerateQuizRequiresOnboarding(t *testing.T) {
	ai := &stubAI{raw: json.RawMessage(validQuiz)}
	svc, store, _ := newQuizFixture(t, ai)
	fresh, err := store.CreateUser(context.Background(), repository.CreateUserInput{AuthID: "auth-2"})
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), fresh)
	assert.ErrorIs(t, err, domain.ErrNotOnboarded)
}

func TestSaveResultGradesAnswers(t *testing.T) {
	ai := &stubAI{text: "Brush up on transaction guarantees."}
	svc, store, user := newQuizFixture(t, ai)

	questions := []domain.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a", Explanation: "e1"},
		{Question: "q2", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "b", Explanation: "e2"},
	}

	assessment, err := svc.SaveResult(context.Background(), user, questions, []string{"a", "c"}, 50)
	require.NoError(t, err)
	require.Len(t, assessment.Questions, 2)
	assert.True(t, assessment.Questions[0].IsCorrect)
	assert.False(t, assessment.Questions[1].IsCorrect)
	assert.Equal(t, 50.0, assessment.QuizScore)
	assert.Equal(t, "Technical", assessment.Category)
	assert.Equal(t, "Brush up on transaction guarantees.", assessment.ImprovementTip)

	// Tip prompt only covers the wrong answer.
	tipPrompt := ai.prompts[len(ai.prompts)-1]
	assert.Contains(t, tipPrompt, `Question: "q2"`)
	assert.NotContains(t, tipPrompt, `Question: "q1"`)

	saved, err := store.ListAssessmentsByUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}

func TestSaveResultAllCorrectSkipsTip(t *testing.T) {
	ai := &stubAI{text: "should not be called"}
	svc, _, user := newQuizFixture(t, ai)

	questions := []domain.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	}
	assessment, err := svc.SaveResult(context.Background(), user, questions, []string{"a"}, 100)
	require.NoError(t, err)
	assert.Empty(t, assessment.ImprovementTip)
	assert.Empty(t, ai.prompts)
}

func TestSaveResultTipFailureTolerated(t *testing.T) {
	ai := &stubAI{textErr: errors.New("backend down")}
	svc, _, user := newQuizFixture(t, ai)

	questions := []domain.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	}
	assessment, err := svc.SaveResult(context.Background(), user, questions, []string{"b"}, 0)
	require.NoError(t, err)
	assert.Empty(t, assessment.ImprovementTip)
}

func TestSaveResultAnswerCountMismatch(t *testing.T) {
	ai := &stubAI{}
	svc, _, user := newQuizFixture(t, ai)

	questions := []domain.QuizQuestion{
		{Question: "q1", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"},
	}
	_, err := svc.SaveResult(context.Background(), user, questions, nil, 0)
	assert.Error(t, err)
}

func TestListAssessmentsOldestFirst(t *testing.T) {
	ai := &stubAI{text: "tip"}
	svc, _, user := newQuizFixture(t, ai)

	q := []domain.QuizQuestion{{Question: "q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: "a"}}
	first, err := svc.SaveResult(context.Background(), user, q, []string{"a"}, 100)
	require.NoError(t, err)
	second, err := svc.SaveResult(context.Background(), user, q, []string{"b"}, 0)
	require.NoError(t, err)

	list, err := svc.ListAssessments(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)
}
