// Package memory provides an in-memory Store used by tests and local
// development. Ordering follows insertion order, which matches creation-time
// order for the append-only transcript.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/repository"
)

type Store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*domain.User
	sessions    map[uuid.UUID]*domain.InterviewSession
	messages    map[uuid.UUID][]domain.InterviewMessage
	assessments map[uuid.UUID][]domain.Assessment
	insights    map[string]*domain.IndustryInsight
}

func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*domain.User),
		sessions:    make(map[uuid.UUID]*domain.InterviewSession),
		messages:    make(map[uuid.UUID][]domain.InterviewMessage),
		assessments: make(map[uuid.UUID][]domain.Assessment),
		insights:    make(map[string]*domain.IndustryInsight),
	}
}

var _ repository.Store = (*Store)(nil)

func (s *Store) CreateUser(ctx context.Context, input repository.CreateUserInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	u := &domain.User{
		ID:        uuid.New(),
		AuthID:    input.AuthID,
		Email:     input.Email,
		Name:      input.Name,
		Skills:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByAuthID(ctx context.Context, authID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.AuthID == authID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) UpdateProfile(ctx context.Context, input repository.UpdateProfileInput) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[input.UserID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Industry = input.Industry
	u.Experience = input.Experience
	u.Bio = input.Bio
	u.Skills = input.Skills
	if u.Skills == nil {
		u.Skills = []string{}
	}
	u.UpdatedAt = time.Now()

	if input.Industry != "" {
		if _, ok := s.insights[input.Industry]; !ok {
			now := time.Now()
			s.insights[input.Industry] = &domain.IndustryInsight{
				ID:            uuid.New(),
				Industry:      input.Industry,
				DemandLevel:   domain.DemandMedium,
				MarketOutlook: domain.OutlookNeutral,
				NextUpdate:    now,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
		}
	}

	cp := *u
	return &cp, nil
}

func (s *Store) CreateSession(ctx context.Context, input repository.CreateSessionInput) (*domain.InterviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := &domain.InterviewSession{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Role:      input.Role,
		Category:  input.Category,
		Status:    domain.SessionActive,
		CreatedAt: time.Now(),
	}
	s.sessions[sess.ID] = sess
	cp := *sess
	return &cp, nil
}

func (s *Store) GetSession(ctx context.Context, id uuid.UUID) (*domain.InterviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *Store) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]domain.InterviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sessions []domain.InterviewSession
	for _, sess := range s.sessions {
		if sess.UserID == userID {
			sessions = append(sessions, *sess)
		}
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})
	return sessions, nil
}

func (s *Store) EndSession(ctx context.Context, input repository.EndSessionInput) (*domain.InterviewSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[input.SessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	sess.Status = domain.SessionEnded
	endedAt := input.EndedAt
	sess.EndedAt = &endedAt
	sess.Summary = input.Summary
	if input.Score != nil {
		score := *input.Score
		sess.Score = &score
	}
	cp := *sess
	return &cp, nil
}

func (s *Store) CreateMessage(ctx context.Context, input repository.CreateMessageInput) (*domain.InterviewMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[input.SessionID]; !ok {
		return nil, domain.ErrSessionNotFound
	}
	m := domain.InterviewMessage{
		ID:         uuid.New(),
		SessionID:  input.SessionID,
		Sender:     input.Sender,
		Content:    input.Content,
		Evaluation: input.Evaluation,
		CreatedAt:  time.Now(),
	}
	s.messages[input.SessionID] = append(s.messages[input.SessionID], m)
	cp := m
	return &cp, nil
}

func (s *Store) ListMessages(ctx context.Context, sessionID uuid.UUID, limit int) ([]domain.InterviewMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.messages[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]domain.InterviewMessage, len(all))
	copy(out, all)
	return out, nil
}

func (s *Store) CreateAssessment(ctx context.Context, input repository.CreateAssessmentInput) (*domain.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a := domain.Assessment{
		ID:             uuid.New(),
		UserID:         input.UserID,
		QuizScore:      input.QuizScore,
		Questions:      input.Questions,
		Category:       input.Category,
		ImprovementTip: input.ImprovementTip,
		CreatedAt:      time.Now(),
	}
	s.assessments[input.UserID] = append(s.assessments[input.UserID], a)
	cp := a
	return &cp, nil
}

func (s *Store) ListAssessmentsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Assessment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.assessments[userID]
	out := make([]domain.Assessment, len(all))
	copy(out, all)
	return out, nil
}

func (s *Store) GetInsightByIndustry(ctx context.Context, industry string) (*domain.IndustryInsight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ins, ok := s.insights[industry]
	if !ok {
		return nil, domain.ErrInsightNotFound
	}
	cp := *ins
	return &cp, nil
}

func (s *Store) UpsertInsight(ctx context.Context, input repository.UpsertInsightInput) (*domain.IndustryInsight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	ins, ok := s.insights[input.Industry]
	if !ok {
		ins = &domain.IndustryInsight{ID: uuid.New(), Industry: input.Industry, CreatedAt: now}
		s.insights[input.Industry] = ins
	}
	ins.SalaryRanges = input.SalaryRanges
	ins.GrowthRate = input.GrowthRate
	ins.DemandLevel = input.DemandLevel
	ins.TopSkills = input.TopSkills
	ins.MarketOutlook = input.MarketOutlook
	ins.KeyTrends = input.KeyTrends
	ins.RecommendedSkills = input.RecommendedSkills
	ins.NextUpdate = input.NextUpdate
	ins.UpdatedAt = now
	cp := *ins
	return &cp, nil
}
