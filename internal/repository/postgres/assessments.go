package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

func (s *Store) CreateAssessment(ctx context.Context, input repository.CreateAssessmentInput) (*domain.Assessment, error) {
	questions, err := json.Marshal(input.Questions)
	if err != nil {
		return nil, fmt.Errorf("marshal questions: %w", err)
	}

	row := s.pool.QueryRow(ctx,
		`INSERT INTO assessments (user_id, quiz_score, questions, category, improvement_tip)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, user_id, quiz_score, questions, category, improvement_tip, created_at`,
		input.UserID, input.QuizScore, questions, input.Category, input.ImprovementTip)

	a, err := scanAssessment(row.Scan)
	if err != nil {
		return nil, fmt.Errorf("create assessment: %w", err)
	}
	return a, nil
}

func (s *Store) ListAssessmentsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Assessment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at
		 FROM assessments WHERE user_id = $1 ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []domain.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan assessment: %w", err)
		}
		assessments = append(assessments, *a)
	}
	return assessments, rows.Err()
}

func scanAssessment(scan func(dest ...any) error) (*domain.Assessment, error) {
	var a domain.Assessment
	var questions []byte
	if err := scan(&a.ID, &a.UserID, &a.QuizScore, &questions, &a.Category, &a.ImprovementTip, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(questions, &a.Questions); err != nil {
		return nil, fmt.Errorf("unmarshal questions: %w", err)
	}
	return &a, nil
}
