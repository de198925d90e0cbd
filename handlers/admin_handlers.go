// --- examportal-server/handlers/admin_handlers.go ---
package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"examportal-server/db"
	"examportal-server/ingestion"
	"examportal-server/models"
	"examportal-server/session"
)

// AdminLoginPage renders the admin login form.
// GET /admin
func AdminLoginPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin_login", gin.H{
			"Title": "Admin Login",
		})
	}
}

// AdminLogin checks the submitted credentials against the admin table. A
// mismatch gets an inline plain-text failure, not a redirect.
// POST /admin
func AdminLogin(conn *sql.DB, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AdminLoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.String(http.StatusBadRequest, "Invalid Login")
			return
		}

		cred, err := db.FindAdmin(conn, req.Username, req.Password)
		if err != nil {
			log.Printf("Error querying admin credential: %v", err)
			c.String(http.StatusInternalServerError, "Login failed")
			return
		}
		if cred == nil {
			c.String(http.StatusUnauthorized, "Invalid Login")
			return
		}

		sessions.SetAdmin(c, cred.Username)
		c.Redirect(http.StatusFound, "/admin-dashboard")
	}
}

// AdminDashboard shows the question bank, all results and aggregate stats.
// GET /admin-dashboard
func AdminDashboard(conn *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		questions, err := db.ListQuestions(conn)
		if err != nil {
			log.Printf("Error listing questions for dashboard: %v", err)
			c.HTML(http.StatusInternalServerError, "admin_dashboard", gin.H{"Title": "Admin Dashboard", "error": "Failed to load questions"})
			return
		}

		results, err := db.ListResults(conn)
		if err != nil {
			log.Printf("Error listing results for dashboard: %v", err)
			c.HTML(http.StatusInternalServerError, "admin_dashboard", gin.H{"Title": "Admin Dashboard", "error": "Failed to load results"})
			return
		}

		agg, err := db.AggregateResults(conn)
		if err != nil {
			log.Printf("Error aggregating results for dashboard: %v", err)
			c.HTML(http.StatusInternalServerError, "admin_dashboard", gin.H{"Title": "Admin Dashboard", "error": "Failed to load analytics"})
			return
		}

		c.HTML(http.StatusOK, "admin_dashboard", gin.H{
			"Title":         "Admin Dashboard",
			"Admin":         session.Current(c).Admin,
			"Questions":     questions,
			"Results":       results,
			"TotalStudents": agg.Count,
			"Highest":       agg.Highest,
			"Average":       agg.Average,
		})
	}
}

// AddQuestionPage renders the add-question form.
// GET /add-question
func AddQuestionPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "add_question", gin.H{
			"Title": "Add Question",
		})
	}
}

// AddQuestion inserts a new question from the admin form and returns to the
// dashboard.
// POST /add-question
func AddQuestion(conn *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.AddQuestionRequest
		if err := c.ShouldBind(&req); err != nil {
			c.HTML(http.StatusBadRequest, "add_question", gin.H{
				"Title": "Add Question",
				"error": err.Error(),
			})
			return
		}

		q := models.Question{
			Text:          req.Question,
			Options:       [4]string{req.Option1, req.Option2, req.Option3, req.Option4},
			CorrectOption: req.Correct,
			Marks:         req.Marks,
		}
		if _, err := db.InsertQuestion(conn, q); err != nil {
			log.Printf("Error inserting question: %v", err)
			c.HTML(http.StatusInternalServerError, "add_question", gin.H{
				"Title": "Add Question",
				"error": "Failed to add question",
			})
			return
		}

		c.Redirect(http.StatusFound, "/admin-dashboard")
	}
}

// DeleteQuestion removes a question by its path-embedded id and returns to the
// dashboard. A nonexistent id deletes nothing and still succeeds.
// GET /delete-question/:id
func DeleteQuestion(conn *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.String(http.StatusBadRequest, "Invalid question id")
			return
		}

		if err := db.DeleteQuestion(conn, id); err != nil {
			log.Printf("Error deleting question %d: %v", id, err)
			c.String(http.StatusInternalServerError, "Failed to delete question")
			return
		}

		c.Redirect(http.StatusFound, "/admin-dashboard")
	}
}

// SeedQuestions imports questions from the configured YAML seed file.
// POST /admin/seed-questions
func SeedQuestions(conn *sql.DB, seedFile string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if seedFile == "" {
			c.String(http.StatusNotFound, "No seed file configured")
			return
		}

		added, err := ingestion.SeedFromFile(conn, seedFile)
		if err != nil {
			log.Printf("Question seeding failed: %v", err)
			c.String(http.StatusInternalServerError, "Seeding failed")
			return
		}

		log.Printf("Seeded %d questions from %s (triggered by %s)", added, seedFile, session.Current(c).Admin)
		c.Redirect(http.StatusFound, "/admin-dashboard")
	}
}
