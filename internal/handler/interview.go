package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/middleware"
)

type startInterviewRequest struct {
	Role     string `json:"role"`
	Category string `json:"category"`
}

type startInterviewResponse struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
}

// StartInterview creates a mock interview session and returns the opening
// question.
// POST /v1/interviews
func (h *Handler) StartInterview(c echo.Context) error {
	user := middleware.GetUser(c)

	var req startInterviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if req.Role == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "role is required"})
	}
	category := domain.InterviewCategory(req.Category)
	if category == "" {
		category = domain.CategoryBehavioral
	}

	result, err := h.interviewService.Start(c.Request().Context(), user, req.Role, category)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, startInterviewResponse{
		SessionID: result.SessionID.String(),
		Question:  result.Question,
	})
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

type sendMessageResponse struct {
	Feedback string `json:"feedback"`
	Question string `json:"question"`
}

// SendInterviewMessage submits the candidate's answer and returns feedback
// plus the next question.
// POST /v1/interviews/:id/messages
func (h *Handler) SendInterviewMessage(c echo.Context) error {
	user := middleware.GetUser(c)

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if req.Message == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "message is required"})
	}

	result, err := h.interviewService.Send(c.Request().Context(), user, sessionID, req.Message)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sendMessageResponse{
		Feedback: result.Feedback,
		Question: result.Question,
	})
}

type endInterviewResponse struct {
	Summary string   `json:"summary"`
	Score   *float64 `json:"score,omitempty"`
}

// EndInterview summarizes the transcript and ends the session.
// POST /v1/interviews/:id/end
func (h *Handler) EndInterview(c echo.Context) error {
	user := middleware.GetUser(c)

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	result, err := h.interviewService.End(c.Request().Context(), user, sessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, endInterviewResponse{
		Summary: result.Summary,
		Score:   result.Score,
	})
}

type sessionView struct {
	ID        string     `json:"id"`
	Role      string     `json:"role"`
	Category  string     `json:"category"`
	Status    string     `json:"status"`
	Summary   string     `json:"summary,omitempty"`
	Score     *float64   `json:"score,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

type messageView struct {
	Sender     string    `json:"sender"`
	Content    string    `json:"content"`
	Evaluation *string   `json:"evaluation,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toSessionView(s domain.InterviewSession) sessionView {
	return sessionView{
		ID:        s.ID.String(),
		Role:      s.Role,
		Category:  string(s.Category),
		Status:    string(s.Status),
		Summary:   s.Summary,
		Score:     s.Score,
		EndedAt:   s.EndedAt,
		CreatedAt: s.CreatedAt,
	}
}

// GetInterview returns a session with its full transcript.
// GET /v1/interviews/:id
func (h *Handler) GetInterview(c echo.Context) error {
	user := middleware.GetUser(c)

	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "session not found"})
	}

	sess, messages, err := h.interviewService.Get(c.Request().Context(), user, sessionID)
	if err != nil {
		return respondError(c, err)
	}

	views := make([]messageView, len(messages))
	for i, m := range messages {
		views[i] = messageView{
			Sender:     string(m.Sender),
			Content:    m.Content,
			Evaluation: m.Evaluation,
			CreatedAt:  m.CreatedAt,
		}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"session":  toSessionView(*sess),
		"messages": views,
	})
}

// ListInterviews returns the caller's sessions, newest first.
// GET /v1/interviews
func (h *Handler) ListInterviews(c echo.Context) error {
	user := middleware.GetUser(c)

	sessions, err := h.interviewService.List(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	views := make([]sessionView, len(sessions))
	for i, s := range sessions {
		views[i] = toSessionView(s)
	}
	return c.JSON(http.StatusOK, map[string]any{"sessions": views})
}
