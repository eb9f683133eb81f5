package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

const sessionColumns = `id, user_id, role, category, status, summary, score, ended_at, created_at`

func scanSession(row pgx.Row) (*domain.InterviewSession, error) {
	var s domain.InterviewSession
	err := row.Scan(&s.ID, &s.UserID, &s.Role, &s.Category, &s.Status,
		&s.Summary, &s.Score, &s.EndedAt, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Store) CreateSession(ctx context.Context, input repository.CreateSessionInput) (*domain.InterviewSession, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO interview_sessions (user_id, role, category, status)
		 VALUES ($1, $2, $3, 'active')
		 RETURNING `+sessionColumns,
		input.UserID, input.Role, input.Category)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1`, id)
	sess, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return sess, nil
}

func (s *Store) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]domain.InterviewSession, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions
		 WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.InterviewSession
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

func (s *Store) EndSession(ctx context.Context, input repository.EndSessionInput) (*domain.InterviewSession, error) {
	// COALESCE keeps a previously stored score when this summarization
	// produced none.
	row := s.pool.QueryRow(ctx,
		`UPDATE interview_sessions
		 SET status = 'ended', ended_at = $2, summary = $3, score = COALESCE($4, score)
		 WHERE id = $1
		 RETURNING `+sessionColumns,
		input.SessionID, input.EndedAt, input.Summary, input.Score)
	sess, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("end session: %w", err)
	}
	return sess, nil
}

func (s *Store) CreateMessage(ctx context.Context, input repository.CreateMessageInput) (*domain.InterviewMessage, error) {
	row := s.pool.QueryRow(ctx,
		`INSERT INTO interview_messages (session_id, sender, content, evaluation)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, session_id, sender, content, evaluation, created_at`,
		input.SessionID, input.Sender, input.Content, input.Evaluation)
	var m domain.InterviewMessage
	err := row.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Content, &m.Evaluation, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return &m, nil
}

func (s *Store) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.InterviewMessage, error) {
	query := `SELECT id, session_id, sender, content, evaluation, created_at
		 FROM interview_messages WHERE session_id = $1
		 ORDER BY created_at ASC, id ASC`
	args := []any{sessionID}
	if limit > 0 {
		// Most-recent-N, still returned in ascending order.
		query = `SELECT id, session_id, sender, content, evaluation, created_at FROM (
			SELECT id, session_id, sender, content, evaluation, created_at
			FROM interview_messages WHERE session_id = $1
			ORDER BY created_at DESC, id DESC LIMIT $2
		) recent ORDER BY created_at ASC, id ASC`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []domain.InterviewMessage
	for rows.Next() {
		var m domain.InterviewMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Sender, &m.Content, &m.Evaluation, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
