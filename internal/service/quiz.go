package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/elevatepath/elevatepath/internal/config"
	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

type QuizService struct {
	store repository.Store
	ai    Completer
	text  TextGenerator
}

func NewQuizService(store repository.Store, ai Completer, text TextGenerator) *QuizService {
	return &QuizService{store: store, ai: ai, text: text}
}

// Generate builds a technical quiz for the user's industry and skills. Unlike
// the interview flow there is no canned fallback quiz; a generation failure is
// reported to the caller.
func (s *QuizService) Generate(ctx context.Context, user *domain.User) ([]domain.QuizQuestion, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsOnboarded() {
		return nil, domain.ErrNotOnboarded
	}

	raw, err := s.ai.Complete(ctx, quizPrompt(user.Industry, user.Skills, config.QuizQuestionCount))
	if err != nil {
		return nil, fmt.Errorf("generate quiz: %w", err)
	}

	var parsed struct {
		Questions []domain.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse quiz: %w", &domain.CompletionError{RawText: string(raw), Err: err})
	}
	if len(parsed.Questions) == 0 {
		return nil, fmt.Errorf("parse quiz: %w", &domain.CompletionError{RawText: string(raw), Err: fmt.Errorf("no questions in response")})
	}
	for i, q := range parsed.Questions {
		if strings.TrimSpace(q.Question) == "" || len(q.Options) != config.QuizOptionCount || q.CorrectAnswer == "" {
			return nil, fmt.Errorf("parse quiz: %w", &domain.CompletionError{
				RawText: string(raw),
				Err:     fmt.Errorf("malformed question at index %d", i),
			})
		}
	}
	return parsed.Questions, nil
}

// SaveResult grades the submitted answers, generates an improvement tip from
// the wrong ones and persists the assessment. Tip generation is best effort:
// its failure never fails the save.
func (s *QuizService) SaveResult(ctx context.Context, user *domain.User, questions []domain.QuizQuestion, answers []string, score float64) (*domain.Assessment, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if len(answers) != len(questions) {
		return nil, fmt.Errorf("expected %d answers, got %d", len(questions), len(answers))
	}

	results := make([]domain.QuestionResult, len(questions))
	var wrong []domain.QuestionResult
	for i, q := range questions {
		r := domain.QuestionResult{
			Question:    q.Question,
			Answer:      q.CorrectAnswer,
			UserAnswer:  answers[i],
			IsCorrect:   q.CorrectAnswer == answers[i],
			Explanation: q.Explanation,
		}
		results[i] = r
		if !r.IsCorrect {
			wrong = append(wrong, r)
		}
	}

	// The tip wants prose, not JSON, so it goes through the raw text path.
	improvementTip := ""
	if len(wrong) > 0 {
		tip, err := s.text.GenerateText(ctx, improvementTipPrompt(user.Industry, wrong))
		if err != nil {
			slog.Error("improvement tip generation failed", "error", err, "user_id", user.ID)
		} else {
			improvementTip = strings.TrimSpace(tip)
		}
	}

	assessment, err := s.store.CreateAssessment(ctx, repository.CreateAssessmentInput{
		UserID:         user.ID,
		QuizScore:      score,
		Questions:      results,
		Category:       string(domain.CategoryTechnical),
		ImprovementTip: improvementTip,
	})
	if err != nil {
		return nil, fmt.Errorf("save assessment: %w", err)
	}
	return assessment, nil
}

func (s *QuizService) ListAssessments(ctx context.Context, user *domain.User) ([]domain.Assessment, error) {
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	assessments, err := s.store.ListAssessmentsByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return assessments, nil
}
