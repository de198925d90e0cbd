
package models

import (
	"time"
)

// AdminCredential is the stored admin login. Seeded once at schema creation,
// compared in plaintext against the submitted form. Never written via the UI.
type AdminCredential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Question is a single multiple-choice item in the bank.
// CorrectOption is the 1-based position of the right option.
type Question struct {
	ID            int       `json:"id"`
	Text          string    `json:"question"`
	Options       [4]string `json:"options"`
	CorrectOption int       `json:"correct_option"`
	Marks         int       `json:"marks"`
}

// ScoringField is the projection of a question used for grading.
type ScoringField struct {
	ID            int
	CorrectOption int
	Marks         int
}

// Result is one graded submission. Total is a snapshot of the bank's mark sum
// at submission time, not a live aggregate.
type Result struct {
	Student     string    `json:"student"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Attempt actions recorded in the audit trail.
const (
	ActionStarted   = "Started Exam"
	ActionSubmitted = "Submitted Exam"
)

// AttemptLogEntry is an append-only audit record of exam activity.
type AttemptLogEntry struct {
	Student string    `json:"student"`
	Action  string    `json:"action"`
	Time    time.Time `json:"time"`
}

// LeaderboardRow is one line of the public ranking.
type LeaderboardRow struct {
	Student string `json:"student"`
	Score   int    `json:"score"`
	Total   int    `json:"total"`
}

// Aggregate holds the dashboard analytics over all results.
type Aggregate struct {
	Count   int     `json:"count"`
	Highest int     `json:"highest"`
	Average float64 `json:"average"`
}

// AddQuestionRequest binds the add-question admin form.
type AddQuestionRequest struct {
	Question string `form:"question" binding:"required"`
	Option1  string `form:"o1" binding:"required"`
	Option2  string `form:"o2" binding:"required"`
	Option3  string `form:"o3" binding:"required"`
	Option4  string `form:"o4" binding:"required"`
	Correct  int    `form:"correct" binding:"required,min=1,max=4"`
	Marks    int    `form:"marks" binding:"min=0"`
}

// AdminLoginRequest binds the admin login form.
type AdminLoginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// SeedQuestion is one entry of the YAML question seed file.
type SeedQuestion struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Correct  int      `yaml:"correct"`
	Marks    int      `yaml:"marks"`
}

// SeedFile is the top-level structure of questions.yaml.
type SeedFile struct {
	Questions []SeedQuestion `yaml:"questions"`
}
