package app

import (
	"context"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/auth/credentials"
	authhandler "github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/auth/handler"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/auth/token"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/config"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview"
	ivhandler "github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview/handler"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/logger"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/middleware"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/question"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	var tokenStore token.Store
	if infra.Redis != nil {
		tokenStore = token.NewRedisStore(infra.Redis.Client)
	} else {
		tokenStore = token.NewMemStore()
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, tokens are signed with an empty key")
	}
	tokens := token.NewIssuer(cfg.JWTSecret, tokenStore)

	var credentialService authhandler.CredentialService
	if infra.DB != nil {
		credentialService = credentials.NewService(infra.DB)
	} else {
		credentialService = credentials.NewMemService()
	}

	var interviewStore interview.Store
	if infra.DB != nil {
		interviewStore = interview.NewPGStore(infra.DB)
	} else {
		interviewStore = interview.NewMemStore()
	}

	bank, err := question.LoadBank()
	if err != nil {
		return nil, nil, err
	}

	var source question.Source = bank
	if cfg.GeminiAPIKey != "" {
		gemini, err := question.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, bank)
		if err != nil {
			return nil, nil, err
		}
		source = gemini
	} else {
		logger.Warn("no GEMINI_API_KEY configured, serving static question bank")
	}

	lifecycle := interview.NewLifecycle(interviewStore, source, cfg.InterviewDuration)

	authHandler := authhandler.NewHandler(credentialService, tokens)
	interviewHandler := ivhandler.NewHandler(lifecycle, interviewStore, source, bank)

	authMiddleware := middleware.NewAuthMiddleware(tokens)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/api/roles", func(c *gin.Context) {
		c.JSON(200, gin.H{"roles": interview.JobRoles})
	})

	// Static client
	router.Static("/web", "./web")

	router.GET("/", func(c *gin.Context) {
		c.File("./web/index.html")
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	interviewHandler.RegisterRoutes(api)

	// ----------------------------
	// Cleanup
	// ----------------------------

	return router, func() error {
		if infra.DB != nil {
			return infra.DB.Close()
		}
		return nil
	}, nil
}
