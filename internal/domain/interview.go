package domain

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionActive SessionStatus = "active"
	SessionEnded  SessionStatus = "ended"
)

type InterviewCategory string

const (
	CategoryBehavioral InterviewCategory = "Behavioral"
	CategoryTechnical  InterviewCategory = "Technical"
)

type Sender string

const (
	SenderAI   Sender = "AI"
	SenderUser Sender = "USER"
)

// InterviewSession is one mock-interview conversation. Summary and EndedAt are
// only populated once Status is SessionEnded; Score stays nil when the
// summarizer produced no usable number.
type InterviewSession struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Role     string
	Category InterviewCategory
	Status   SessionStatus
	Summary  string
	Score    *float64
	EndedAt  *time.Time
	CreatedAt time.Time
}

// InterviewMessage is one transcript turn. Evaluation is only ever set on
// AI-authored messages and holds feedback on the preceding candidate answer.
// Messages are append-only.
type InterviewMessage struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	Sender     Sender
	Content    string
	Evaluation *string
	CreatedAt  time.Time
}
