// --- examportal-server/handlers/student_handlers.go ---
package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"examportal-server/db"
	"examportal-server/exam"
	"examportal-server/models"
	"examportal-server/session"
)

// LoginPage renders the student login form.
// GET /
func LoginPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "login", gin.H{
			"Title": "Student Login",
		})
	}
}

// Login starts a student session from the submitted name and records the
// exam start in the attempt log. An empty name re-shows the login form
// without creating a session.
// POST /
func Login(conn *sql.DB, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		student := c.PostForm("student")
		if student == "" {
			c.Redirect(http.StatusFound, "/")
			return
		}

		sessions.SetStudent(c, student)
		db.LogAttempt(conn, student, models.ActionStarted)

		c.Redirect(http.StatusFound, "/exam")
	}
}

// ExamPage lists the question bank for the logged-in student. Each question's
// options are rendered as radio inputs named q<id>, which is the field naming
// the grading handler depends on.
// GET /exam
func ExamPage(conn *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		questions, err := db.ListQuestions(conn)
		if err != nil {
			log.Printf("Error listing questions for exam page: %v", err)
			c.HTML(http.StatusInternalServerError, "exam", gin.H{"Title": "Exam", "error": "Failed to load questions"})
			return
		}

		c.HTML(http.StatusOK, "exam", gin.H{
			"Title":     "Exam",
			"Student":   session.Current(c).Student,
			"Questions": questions,
		})
	}
}

// SubmitResult grades the submitted answer sheet against the current question
// bank, stores the result and records the submission in the attempt log.
// POST /result
func SubmitResult(conn *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		student := session.Current(c).Student

		fields, err := db.ScoringFields(conn)
		if err != nil {
			log.Printf("Error loading scoring fields: %v", err)
			c.HTML(http.StatusInternalServerError, "result", gin.H{"Title": "Result", "error": "Failed to grade submission"})
			return
		}

		if err := c.Request.ParseForm(); err != nil {
			log.Printf("Error parsing submission form for %s: %v", student, err)
			c.HTML(http.StatusBadRequest, "result", gin.H{"Title": "Result", "error": "Malformed submission"})
			return
		}
		sheet := exam.ParseAnswerSheet(c.Request.PostForm)
		score, total := exam.Score(fields, sheet)

		result := models.Result{
			Student:     student,
			Score:       score,
			Total:       total,
			SubmittedAt: time.Now(),
		}
		if err := db.InsertResult(conn, result); err != nil {
			log.Printf("Error inserting result for %s: %v", student, err)
			c.HTML(http.StatusInternalServerError, "result", gin.H{"Title": "Result", "error": "Failed to save result"})
			return
		}

		db.LogAttempt(conn, student, models.ActionSubmitted)

		c.HTML(http.StatusOK, "result", gin.H{
			"Title":   "Result",
			"Student": student,
			"Score":   score,
			"Total":   total,
		})
	}
}

// LeaderboardPage shows the public ranking of all results, best score first.
// GET /leaderboard
func LeaderboardPage(conn *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		leaders, err := db.Leaderboard(conn)
		if err != nil {
			log.Printf("Error querying leaderboard: %v", err)
			c.HTML(http.StatusInternalServerError, "leaderboard", gin.H{"Title": "Leaderboard", "error": "Failed to load leaderboard"})
			return
		}

		c.HTML(http.StatusOK, "leaderboard", gin.H{
			"Title":   "Leaderboard",
			"Leaders": leaders,
		})
	}
}

// HistoryPage lists the logged-in student's past results in submission order.
// GET /history
func HistoryPage(conn *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		student := session.Current(c).Student

		results, err := db.ResultsFor(conn, student)
		if err != nil {
			log.Printf("Error querying history for %s: %v", student, err)
			c.HTML(http.StatusInternalServerError, "history", gin.H{"Title": "My Results", "error": "Failed to load history"})
			return
		}

		c.HTML(http.StatusOK, "history", gin.H{
			"Title":   "My Results",
			"Student": student,
			"Results": results,
		})
	}
}

// Logout clears the whole session, student or admin alike.
// GET /logout
func Logout(sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Clear(c)
		c.Redirect(http.StatusFound, "/")
	}
}
