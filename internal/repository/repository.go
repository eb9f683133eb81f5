package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/elevatepath/elevatepath/internal/domain"
)

type CreateUserInput struct {
	AuthID string
	Email  string
	Name   string
}

type UpdateProfileInput struct {
	UserID     uuid.UUID
	Industry   string
	Experience int
	Bio        string
	Skills     []string
}

type UserRepository interface {
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetUserByAuthID(ctx context.Context, authID string) (*domain.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	// UpdateProfile updates the user's career profile and, in the same
	// transaction, creates a placeholder insight row when the industry has
	// none yet.
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*domain.User, error)
}

type CreateSessionInput struct {
	UserID   uuid.UUID
	Role     string
	Category domain.InterviewCategory
}

type EndSessionInput struct {
	SessionID uuid.UUID
	EndedAt   time.Time
	Summary   string
	// Score is applied only when non-nil; a nil score leaves any previously
	// stored score untouched.
	Score *float64
}

type CreateMessageInput struct {
	SessionID  uuid.UUID
	Sender     domain.Sender
	Content    string
	Evaluation *string
}

type SessionRepository interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*domain.InterviewSession, error)
	GetSession(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, error)
	ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]domain.InterviewSession, error)
	EndSession(ctx context.Context, input EndSessionInput) (*domain.InterviewSession, error)
	CreateMessage(ctx context.Context, input CreateMessageInput) (*domain.InterviewMessage, error)
	// ListMessages returns the session's messages in ascending creation
	// order. A positive limit keeps only the most recent limit messages,
	// still ascending; limit <= 0 returns the full transcript.
	ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.InterviewMessage, error)
}

type CreateAssessmentInput struct {
	UserID         uuid.UUID
	QuizScore      float64
	Questions      []domain.QuestionResult
	Category       string
	ImprovementTip string
}

type AssessmentRepository interface {
	CreateAssessment(ctx context.Context, input CreateAssessmentInput) (*domain.Assessment, error)
	ListAssessmentsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Assessment, error)
}

type UpsertInsightInput struct {
	Industry          string
	SalaryRanges      []domain.SalaryRange
	GrowthRate        float64
	DemandLevel       domain.DemandLevel
	TopSkills         []string
	MarketOutlook     domain.MarketOutlook
	KeyTrends         []string
	RecommendedSkills []string
	NextUpdate        time.Time
}

type InsightRepository interface {
	GetInsightByIndustry(ctx context.Context, industry string) (*domain.IndustryInsight, error)
	UpsertInsight(ctx context.Context, input UpsertInsightInput) (*domain.IndustryInsight, error)
}

type Store interface {
	UserRepository
	SessionRepository
	AssessmentRepository
	InsightRepository
}
