package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"wastewise-backend/handlers"
	"wastewise-backend/models"
	"wastewise-backend/services"
	"wastewise-backend/utils"
	"wastewise-backend/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // 25MB, report photos included
	})

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000"
	}
	originList := strings.Split(allowedOrigins, ",")
	for i, origin := range originList {
		originList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(originList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	// TranslateError maps driver unique-violations to gorm.ErrDuplicatedKey,
	// which the submission workflow relies on for its duplicate guard.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Challenge{},
		&models.ChallengeCompletor{},
		&models.Submission{},
		&models.Ranking{},
		&models.Report{},
		&models.ReportImage{},
		&models.Schedule{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	uploader, err := utils.NewUploader()
	if err != nil {
		log.Fatal("failed to initialize uploader:", err)
	}

	var cache *services.LeaderboardCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
		cache, err = services.NewLeaderboardCache(addr, os.Getenv("REDIS_PASSWORD"), redisDB)
		if err != nil {
			log.Printf("Leaderboard cache disabled: %v", err)
			cache = nil
		}
	}

	authService := services.NewAuthService(db, []byte(jwtSecret))
	rankingService := services.NewRankingService(db, cache)
	challengeService := services.NewChallengeService(db)
	submissionService := services.NewSubmissionService(db, uploader, rankingService)
	reportService := services.NewReportService(db, uploader)
	scheduleService := services.NewScheduleService(db)
	adminService := services.NewAdminService(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cache != nil {
		go workers.PollLeaderboard(ctx, db, cache, 30*time.Second)
	}
	challengeService.StartCompletorReconciler(10 * time.Minute)

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupChallengeRoutes(app, challengeService, submissionService, []byte(jwtSecret))
	handlers.SetupRankingRoutes(app, rankingService, []byte(jwtSecret))
	handlers.SetupReportRoutes(app, reportService, []byte(jwtSecret))
	handlers.SetupScheduleRoutes(app, scheduleService, []byte(jwtSecret))
	handlers.SetupAdminRoutes(app, adminService, []byte(jwtSecret))

	app.Static("/uploads", "./uploads")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5100"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
	if cache != nil {
		_ = cache.Close()
	}
}
