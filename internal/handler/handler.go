package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/elevatepath/elevatepath/internal/service"
)

// Handler holds all dependencies needed by the HTTP API handlers.
type Handler struct {
	userService      *service.UserService
	interviewService *service.InterviewService
	quizService      *service.QuizService
	insightService   *service.InsightService
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	UserService      *service.UserService
	InterviewService *service.InterviewService
	QuizService      *service.QuizService
	InsightService   *service.InsightService
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		userService:      deps.UserService,
		interviewService: deps.InterviewService,
		quizService:      deps.QuizService,
		insightService:   deps.InsightService,
	}
}

// Register mounts all authenticated routes on the group.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/profile/onboarding-status", h.OnboardingStatus)

	g.POST("/interviews", h.StartInterview)
	g.GET("/interviews", h.ListInterviews)
	g.GET("/interviews/:id", h.GetInterview)
	g.POST("/interviews/:id/messages", h.SendInterviewMessage)
	g.POST("/interviews/:id/end", h.EndInterview)

	g.POST("/quiz", h.GenerateQuiz)
	g.POST("/quiz/results", h.SaveQuizResult)
	g.GET("/assessments", h.ListAssessments)

	g.GET("/insights", h.GetInsights)
	g.POST("/insights/refresh", h.RefreshInsights)
}
