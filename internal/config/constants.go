package config

import "time"

const (
	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Transcript window for mid-interview turns. End-of-interview
	// summarization always uses the full transcript.
	TranscriptWindow = 40

	// How long a generated industry insight stays fresh
	InsightRefreshPeriod = 7 * 24 * time.Hour

	// Questions per generated quiz
	QuizQuestionCount = 2

	// Quiz options per question
	QuizOptionCount = 4

	// HTTP server shutdown grace period
	ShutdownTimeout = 10 * time.Second
)
