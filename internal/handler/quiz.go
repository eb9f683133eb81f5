package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/elevatepath/elevatepath/internal/domain"
	"github.com/elevatepath/elevatepath/internal/middleware"
)

// GenerateQuiz produces a fresh quiz for the caller's industry and skills.
// POST /v1/quiz
func (h *Handler) GenerateQuiz(c echo.Context) error {
	user := middleware.GetUser(c)

	questions, err := h.quizService.Generate(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"questions": questions})
}

type saveQuizResultRequest struct {
	Questions []domain.QuizQuestion `json:"questions"`
	Answers   []string              `json:"answers"`
	Score     float64               `json:"score"`
}

type assessmentView struct {
	ID             string                  `json:"id"`
	QuizScore      float64                 `json:"quiz_score"`
	Questions      []domain.QuestionResult `json:"questions"`
	Category       string                  `json:"category"`
	ImprovementTip string                  `json:"improvement_tip,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
}

func toAssessmentView(a domain.Assessment) assessmentView {
	return assessmentView{
		ID:             a.ID.String(),
		QuizScore:      a.QuizScore,
		Questions:      a.Questions,
		Category:       a.Category,
		ImprovementTip: a.ImprovementTip,
		CreatedAt:      a.CreatedAt,
	}
}

// SaveQuizResult grades the submitted answers and stores the assessment.
// POST /v1/quiz/results
func (h *Handler) SaveQuizResult(c echo.Context) error {
	user := middleware.GetUser(c)

	var req saveQuizResultRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid body"})
	}
	if len(req.Questions) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "questions are required"})
	}

	assessment, err := h.quizService.SaveResult(c.Request().Context(), user, req.Questions, req.Answers, req.Score)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toAssessmentView(*assessment))
}

// ListAssessments returns the caller's past quiz results, oldest first.
// GET /v1/assessments
func (h *Handler) ListAssessments(c echo.Context) error {
	user := middleware.GetUser(c)

	assessments, err := h.quizService.ListAssessments(c.Request().Context(), user)
	if err != nil {
		return respondError(c, err)
	}
	views := make([]assessmentView, len(assessments))
	for i, a := range assessments {
		views[i] = toAssessmentView(a)
	}
	return c.JSON(http.StatusOK, map[string]any{"assessments": views})
}
