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

	"contest-platform/handlers"
	"contest-platform/services"
	"contest-platform/store"
	"contest-platform/utils"
	"contest-platform/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 10 * 1024 * 1024, // 10MB, avatars only
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, User-Agent, Cache-Control",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		log.Fatal("MONGO_URI environment variable not set")
	}
	mongoDB := os.Getenv("MONGO_DB")
	if mongoDB == "" {
		mongoDB = "contest-platform"
	}
	identityBaseURL := os.Getenv("IDENTITY_BASE_URL")
	if identityBaseURL == "" {
		log.Fatal("IDENTITY_BASE_URL environment variable not set")
	}
	identityToken := os.Getenv("IDENTITY_SERVICE_TOKEN")
	if identityToken == "" {
		log.Fatal("IDENTITY_SERVICE_TOKEN environment variable not set")
	}

	maxNameAttempts := store.DefaultMaxNameAttempts
	if raw := os.Getenv("MAX_NAME_ATTEMPTS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Fatalf("invalid MAX_NAME_ATTEMPTS %q", raw)
		}
		maxNameAttempts = parsed
	}

	if err := utils.InitObjectStorage(); err != nil {
		log.Fatal("failed to initialize object storage client:", err)
	}

	st, err := store.NewStore(mongoDB, mongoURI, maxNameAttempts)
	if err != nil {
		log.Fatal("failed to connect to document store:", err)
	}

	identity := services.NewIdentityClient(identityBaseURL, identityToken)

	registrationService := services.NewRegistrationService(st, identity)
	projectService := services.NewProjectService(st)
	userService := services.NewUserService(st)
	contestService := services.NewContestService(st)

	auditInterval := 15 * time.Minute
	if raw := os.Getenv("AUDIT_INTERVAL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			log.Fatalf("invalid AUDIT_INTERVAL %q", raw)
		}
		auditInterval = parsed
	}
	auditor := workers.NewLinkageAuditor(st, auditInterval)
	if err := auditor.Start(); err != nil {
		log.Fatal("failed to start linkage auditor:", err)
	}

	handlers.SetupUserRoutes(app, userService, registrationService, identity, st)
	handlers.SetupProjectRoutes(app, projectService, identity, st)
	handlers.SetupContestRoutes(app, contestService, identity, st)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
	auditor.Stop()
	_ = app.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := st.Disconnect(shutdownCtx); err != nil {
		log.Printf("store disconnect error: %v", err)
	}
}
