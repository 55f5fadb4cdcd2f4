package main

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/spawlov/auth-service/internal/app"
	"github.com/spawlov/auth-service/internal/config"
	"github.com/spawlov/auth-service/internal/controllers"
	"github.com/spawlov/auth-service/internal/middleware"
	"github.com/spawlov/auth-service/internal/repositories"
	"github.com/spawlov/auth-service/internal/services"
	"github.com/spawlov/auth-service/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize application:", err)
	}
	defer application.Close()

	//----------------------------------------------------------------------
	// Repositories
	//----------------------------------------------------------------------
	userRepo := repositories.NewUserRepository(application.DB)
	tokenRepo := repositories.NewTokenRecordRepository(application.DB)
	rateLimitRepo := repositories.NewRateLimitRepository(application.DB)

	//----------------------------------------------------------------------
	// Services
	//----------------------------------------------------------------------
	hasher := utils.NewArgon2Hasher()
	revocationCache := services.NewRevocationCache()

	codec := services.NewRSATokenCodec(cfg.RSAPrivateKey, cfg.RSAPublicKey)
	issuer := services.NewTokenIssuer(codec, tokenRepo, cfg.AccessTokenExpiry, cfg.RefreshTokenExpiry)
	guard := services.NewSessionGuard(codec, tokenRepo, revocationCache)
	revoker := services.NewRevocationService(tokenRepo, revocationCache)
	credentials := services.NewCredentialService(userRepo, hasher)

	userService := services.NewUserService(userRepo, hasher)
	authService := services.NewAuthService(credentials, issuer, guard, revoker, userService)
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, cfg.LoginRateLimitMax, cfg.LoginRateLimitWindow)
	cleanupService := services.NewCleanupService(tokenRepo, rateLimitRepo, cfg.RefreshTokenExpiry)

	//----------------------------------------------------------------------
	// Controllers
	//----------------------------------------------------------------------
	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	healthController := controllers.NewHealthController(application)

	//----------------------------------------------------------------------
	// Router & Endpoints
	//----------------------------------------------------------------------
	router := mux.NewRouter()

	// Health
	router.HandleFunc("/health", healthController.HealthCheckHandler).Methods("GET")

	// /auth — login is additionally rate-limited per client address
	authRouter := router.PathPrefix("/auth").Subrouter()
	loginRouter := authRouter.Path("/login").Subrouter()
	loginRouter.Use(middleware.LoginRateLimit(rateLimiterService))
	loginRouter.HandleFunc("", authController.Login).Methods("POST")

	authRouter.HandleFunc("/refresh", authController.Refresh).Methods("POST")
	authRouter.HandleFunc("/logout", authController.Logout).Methods("POST")
	authRouter.HandleFunc("/me", authController.Me).Methods("GET")

	// /users
	usersRouter := router.PathPrefix("/users").Subrouter()
	usersRouter.HandleFunc("/register", userController.Register).Methods("POST")
	usersRouter.HandleFunc("", userController.GetAll).Methods("GET")

	//----------------------------------------------------------------------
	// Setup daily cleanup via cron
	//----------------------------------------------------------------------
	c := cron.New()
	_, schErr := c.AddFunc("0 3 * * *", func() {
		if e := cleanupService.CleanupDaily(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Scheduled cleanup failed")
		}
	})
	if schErr != nil {
		utils.Logger.WithError(schErr).Fatal("Failed to schedule cleanup job")
	}
	c.Start()
	defer c.Stop()

	//----------------------------------------------------------------------
	// CORS & Serve
	//----------------------------------------------------------------------
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	utils.Logger.Infof("Starting %s on port %s", config.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, corsHandler); err != nil {
		utils.Logger.WithError(err).Fatal("HTTP server terminated")
	}
}
