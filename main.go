
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-gonic/gin"

	"examportal-server/config"
	"examportal-server/db"
	"examportal-server/handlers"
	"examportal-server/ingestion"
	"examportal-server/middleware"
	"examportal-server/session"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	// Open the database
	conn, err := db.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer conn.Close()
	// Ensure tables exist and the default admin is seeded
	if err := db.InitSchema(conn, cfg.Database.Driver, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		log.Fatalf("Error creating database schema: %v", err)
	}
	// Optional question bank seeding from YAML
	if cfg.SeedFile != "" {
		added, err := ingestion.SeedFromFile(conn, cfg.SeedFile)
		if err != nil {
			log.Printf("Question seeding from %s failed: %v", cfg.SeedFile, err)
		} else if added > 0 {
			log.Printf("Seeded %d questions from %s", added, cfg.SeedFile)
		}
	}
	// Set Gin mode
	gin.SetMode(cfg.GinMode)
	// Initialize Gin router
	router := gin.Default()
	// Load HTML templates
	renderer := multitemplate.NewRenderer()
	renderer.AddFromFiles("login", "templates/layout.html", "templates/login.html")
	renderer.AddFromFiles("exam", "templates/layout.html", "templates/exam.html")
	renderer.AddFromFiles("result", "templates/layout.html", "templates/result.html")
	renderer.AddFromFiles("admin_login", "templates/layout.html", "templates/admin_login.html")
	renderer.AddFromFiles("admin_dashboard", "templates/layout.html", "templates/admin_dashboard.html")
	renderer.AddFromFiles("add_question", "templates/layout.html", "templates/add_question.html")
	renderer.AddFromFiles("leaderboard", "templates/layout.html", "templates/leaderboard.html")
	renderer.AddFromFiles("history", "templates/layout.html", "templates/history.html")
	router.HTMLRender = renderer
	// Middleware
	router.Use(middleware.Logger())
	sessions := session.NewManager(cfg.Session.SigningKey, cfg.Session.Issuer)
	router.Use(sessions.Load())
	// Public routes
	router.GET("/", handlers.LoginPage())
	router.POST("/", handlers.Login(conn, sessions))
	router.GET("/admin", handlers.AdminLoginPage())
	router.POST("/admin", handlers.AdminLogin(conn, sessions))
	router.GET("/leaderboard", handlers.LeaderboardPage(conn))
	router.GET("/logout", handlers.Logout(sessions))
	// Student routes
	student := router.Group("/", sessions.RequireStudent())
	{
		student.GET("/exam", handlers.ExamPage(conn))
		student.POST("/result", handlers.SubmitResult(conn))
		student.GET("/history", handlers.HistoryPage(conn))
	}
	// Admin routes
	admin := router.Group("/", sessions.RequireAdmin())
	{
		admin.GET("/admin-dashboard", handlers.AdminDashboard(conn))
		admin.GET("/add-question", handlers.AddQuestionPage())
		admin.POST("/add-question", handlers.AddQuestion(conn))
		admin.GET("/delete-question/:id", handlers.DeleteQuestion(conn))
		admin.POST("/admin/seed-questions", handlers.SeedQuestions(conn, cfg.SeedFile))
	}
	// Start the server
	srv := &http.Server{
		Addr:    cfg.ServerPort,
		Handler: router,
	}
	// Goroutine to gracefully shut down the server
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()
	log.Printf("Exam portal starting on %s", cfg.ServerPort)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server startup error: %v", err)
	}
	log.Println("Server exited gracefully.")
}
