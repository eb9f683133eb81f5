package service

import (
	"fmt"
	"strings"

	"github.com/elevatepath/elevatepath/internal/domain"
)

// Prompt builders are pure functions of their inputs so they can be tested
// without touching the network.

func renderTranscript(messages []domain.InterviewMessage) string {
	lines := make([]string, 0, len(messages))
	for _, m := range messages {
		label := "Candidate"
		if m.Sender == domain.SenderAI {
			label = "Interviewer"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", label, m.Content))
	}
	return strings.Join(lines, "\n")
}

func openingQuestionPrompt(role string, category domain.InterviewCategory) string {
	return fmt.Sprintf(`You are a professional interviewer conducting a %s interview for a %s.

Rules:
- Ask one concise question at a time.
- Keep a professional, encouraging tone.
- Wait for the user's reply before asking the next.
- Do NOT include any additional commentary.

Respond in JSON only: { "question": "<your first question>" }`, category, role)
}

func interviewTurnPrompt(role string, category domain.InterviewCategory, transcript string) string {
	return fmt.Sprintf(`You are interviewing for a %s interview for a %s.
Here is the conversation so far:

%s

Now:
1) Briefly (1-2 sentences) evaluate the Candidate's latest answer (strengths + one improvement).
2) Ask exactly one next, relevant question.

Respond in JSON only as: { "feedback": "...", "question": "..." }`, category, role, transcript)
}

func interviewSummaryPrompt(transcript string) string {
	return fmt.Sprintf(`You are an expert interviewer. Given the transcript, produce a concise performance summary.
Transcript:
%s

Return JSON only as:
{
  "score": number, // 0-100
  "strengths": ["..."],
  "weaknesses": ["..."],
  "suggestions": ["..."],
  "overall": "2-3 sentence summary"
}`, transcript)
}

func quizPrompt(industry string, skills []string, count int) string {
	expertise := ""
	if len(skills) > 0 {
		expertise = fmt.Sprintf(" with expertise in %s", strings.Join(skills, ", "))
	}
	return fmt.Sprintf(`Generate %d technical interview questions for a %s professional%s.

Each question should be multiple choice with 4 options.

Return the response in this JSON format only, no additional text:
{
  "questions": [
    {
      "question": "string",
      "options": ["string", "string", "string", "string"],
      "correctAnswer": "string",
      "explanation": "string"
    }
  ]
}`, count, industry, expertise)
}

func improvementTipPrompt(industry string, wrong []domain.QuestionResult) string {
	parts := make([]string, 0, len(wrong))
	for _, q := range wrong {
		parts = append(parts, fmt.Sprintf("Question: %q\nCorrect Answer: %q\nUser Answer: %q",
			q.Question, q.Answer, q.UserAnswer))
	}
	return fmt.Sprintf(`The user got the following %s technical interview questions wrong:

%s

Based on these mistakes, provide a concise, specific improvement tip.
Focus on the knowledge gaps revealed by these wrong answers.
Keep the response under 2 sentences and make it encouraging.
Don't explicitly mention the mistakes, instead focus on what to learn/practice.`,
		industry, strings.Join(parts, "\n\n"))
}

func industryInsightsPrompt(industry string) string {
	return fmt.Sprintf(`Analyze the current state of the %s industry and provide insights in ONLY the following JSON format without any additional notes or explanations:
{
  "salaryRanges": [
    { "role": "string", "min": number, "max": number, "median": number, "location": "string" }
  ],
  "growthRate": number,
  "demandLevel": "HIGH" | "MEDIUM" | "LOW",
  "topSkills": ["skill1", "skill2"],
  "marketOutlook": "POSITIVE" | "NEUTRAL" | "NEGATIVE",
  "keyTrends": ["trend1", "trend2"],
  "recommendedSkills": ["skill1", "skill2"]
}

IMPORTANT: Return ONLY the JSON. No additional text, notes, or markdown formatting.
Include at least 5 common roles for salary ranges.
Growth rate should be a percentage.
Include at least 5 skills and trends.`, industry)
}
