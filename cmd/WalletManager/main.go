package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/pfinance/WalletManager/internal/auth"
	database "github.com/pfinance/WalletManager/internal/db"
	emailService "github.com/pfinance/WalletManager/internal/email"
	"github.com/pfinance/WalletManager/internal/finance/application"
	"github.com/pfinance/WalletManager/internal/finance/infrastructure"
	"github.com/pfinance/WalletManager/internal/finance/interfaces"
	"github.com/pfinance/WalletManager/internal/user"
)

type Response struct {
	Message string `json:"message"`
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("Started %s %s", r.Method, r.URL.Path)

		next.ServeHTTP(w, r)

		log.Printf("Completed %s in %v", r.URL.Path, time.Since(start))
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

type Server struct {
	router             *http.ServeMux
	dbService          *database.DBService
	authHandler        *auth.Handler
	authService        auth.Service
	userHandler        *user.Handler
	categoryHandler    *interfaces.CategoryHandler
	walletHandler      *interfaces.WalletHandler
	transactionHandler *interfaces.TransactionHandler
}

func NewServer(
	dbService *database.DBService,
	authHandler *auth.Handler,
	authService auth.Service,
	userHandler *user.Handler,
	categoryHandler *interfaces.CategoryHandler,
	walletHandler *interfaces.WalletHandler,
	transactionHandler *interfaces.TransactionHandler,
) *Server {
	return &Server{
		router:             http.NewServeMux(),
		dbService:          dbService,
		authHandler:        authHandler,
		authService:        authService,
		userHandler:        userHandler,
		categoryHandler:    categoryHandler,
		walletHandler:      walletHandler,
		transactionHandler: transactionHandler,
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(Response{Message: "Path not found"})
}

func checkConfiguration() error {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, continuing with system environment variables")
	}

	if os.Getenv("JWT_SECRET") == "" {
		return errors.New("no JWT_SECRET provided")
	}
	if os.Getenv("DB_CONNECTION_STRING") == "" {
		return errors.New("no DB_CONNECTION_STRING provided")
	}
	return nil
}

func (s *Server) handleReady(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, s.dbService.Health())
}

func (s *Server) RegisterRoutes() {
	protect := s.authService.CookieAuthMiddleware

	// Public routes
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("POST /api/users/register", http.HandlerFunc(s.userHandler.HandleRegister))
	publicRoutes.Handle("GET /api/users/verify-user", http.HandlerFunc(s.userHandler.HandleVerifyUser))
	publicRoutes.Handle("POST /api/users/authenticate", http.HandlerFunc(s.authHandler.HandleAuthenticate))
	publicRoutes.Handle("POST /api/users/verify-2fa", http.HandlerFunc(s.authHandler.HandleVerifyTwoFactor))
	publicRoutes.Handle("POST /api/users/request-email-code", http.HandlerFunc(s.authHandler.HandleRequestEmailCode))
	publicRoutes.Handle("POST /api/users/logout", http.HandlerFunc(s.authHandler.HandleLogout))
	publicRoutes.Handle("POST /api/users/forgot-password", http.HandlerFunc(s.userHandler.HandleForgotPassword))
	publicRoutes.Handle("GET /api/users/reset-password", http.HandlerFunc(s.userHandler.HandleResetPasswordPage))
	publicRoutes.Handle("POST /api/users/reset-password", http.HandlerFunc(s.userHandler.HandleResetPassword))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))
	publicRoutes.Handle("GET /api/health", http.HandlerFunc(s.handleHealth))

	// User management requires an authenticated caller; non-admins may only
	// target themselves, enforced in the handlers.
	publicRoutes.Handle("GET /api/users/current", protect(http.HandlerFunc(s.userHandler.HandleGetCurrentUser)))
	publicRoutes.Handle("GET /api/users", protect(http.HandlerFunc(s.userHandler.HandleListUsers)))
	publicRoutes.Handle("GET /api/users/{id}", protect(http.HandlerFunc(s.userHandler.HandleGetUser)))
	publicRoutes.Handle("PUT /api/users/{id}", protect(http.HandlerFunc(s.userHandler.HandleUpdateUser)))
	publicRoutes.Handle("DELETE /api/users/{id}", protect(http.HandlerFunc(s.userHandler.HandleDeleteUser)))

	// Protected routes (cookie token middleware)
	protectedRoutes := http.NewServeMux()

	protectedRoutes.Handle("POST /api/protected/2fa/enroll", protect(http.HandlerFunc(s.authHandler.HandleEnrollTwoFactor)))
	protectedRoutes.Handle("POST /api/protected/2fa/confirm", protect(http.HandlerFunc(s.authHandler.HandleConfirmTwoFactor)))
	protectedRoutes.Handle("DELETE /api/protected/2fa", protect(http.HandlerFunc(s.authHandler.HandleDisableTwoFactor)))

	// CATEGORIES API
	protectedRoutes.Handle("GET /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.GetCategories)))
	protectedRoutes.Handle("GET /api/protected/categories/search", protect(http.HandlerFunc(s.categoryHandler.SearchCategories)))
	protectedRoutes.Handle("GET /api/protected/categories/{categoryID}", protect(http.HandlerFunc(s.categoryHandler.GetCategory)))
	protectedRoutes.Handle("POST /api/protected/categories", protect(http.HandlerFunc(s.categoryHandler.CreateCategory)))
	protectedRoutes.Handle("PUT /api/protected/categories/{categoryID}", protect(http.HandlerFunc(s.categoryHandler.UpdateCategory)))
	protectedRoutes.Handle("DELETE /api/protected/categories/{categoryID}", protect(http.HandlerFunc(s.categoryHandler.DeleteCategory)))

	// WALLETS API
	protectedRoutes.Handle("POST /api/protected/wallets", protect(http.HandlerFunc(s.walletHandler.CreateWallet)))
	protectedRoutes.Handle("GET /api/protected/wallets", protect(http.HandlerFunc(s.walletHandler.ListWallets)))
	protectedRoutes.Handle("GET /api/protected/wallets/{walletID}", protect(http.HandlerFunc(s.walletHandler.GetWallet)))
	protectedRoutes.Handle("PUT /api/protected/wallets/{walletID}", protect(http.HandlerFunc(s.walletHandler.UpdateWallet)))
	protectedRoutes.Handle("DELETE /api/protected/wallets/{walletID}", protect(http.HandlerFunc(s.walletHandler.DeleteWallet)))
	protectedRoutes.Handle("GET /api/protected/wallets/{walletID}/balance", protect(http.HandlerFunc(s.walletHandler.GetBalance)))

	// TRANSACTIONS API
	protectedRoutes.Handle("POST /api/protected/wallets/{walletID}/transactions", protect(http.HandlerFunc(s.transactionHandler.RecordTransaction)))
	protectedRoutes.Handle("GET /api/protected/wallets/{walletID}/transactions", protect(http.HandlerFunc(s.transactionHandler.ListTransactions)))

	// Main router
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func main() {
	if err := checkConfiguration(); err != nil {
		log.Fatalf("Missing configuration, update to start server: %v", err)
	}

	dbService, err := database.NewDBService()
	if err != nil {
		log.Fatalf("Could not initialize database: %v", err)
	}
	defer dbService.Close()

	if err := database.RunMigrations(dbService.DB); err != nil {
		log.Fatalf("Could not run database migrations: %v", err)
	}

	sessionManager := auth.NewSessionManager()
	jwtManager := auth.NewJWTManager(os.Getenv("JWT_SECRET"))
	newEmailService := emailService.NewEmailService()
	authenticator := &auth.Authenticator{}

	userRepo := user.NewUserRepository(dbService.DB)
	userService := user.NewUserService(userRepo, newEmailService)
	userHandler := user.NewHandler(userService)

	twoFactorRepo := auth.NewTwoFactorRepository(dbService.DB)
	authService := auth.NewAuthService(twoFactorRepo, userService, sessionManager, jwtManager, newEmailService, authenticator)
	authHandler := auth.NewHandler(authService)

	categoryRepo := infrastructure.NewCategoryRepository(dbService.DB)
	categoryService := application.NewCategoryService(categoryRepo)
	categoryHandler := interfaces.NewCategoryHandler(categoryService, respondJSON, respondError)

	walletRepo := infrastructure.NewWalletRepository(dbService.DB)
	transactionRepo := infrastructure.NewTransactionRepository(dbService.DB)

	walletService := application.NewWalletService(walletRepo, transactionRepo)
	walletHandler := interfaces.NewWalletHandler(walletService, respondJSON, respondError)

	transactionService := application.NewTransactionService(transactionRepo, walletRepo)
	transactionHandler := interfaces.NewTransactionHandler(transactionService, respondJSON, respondError)

	server := NewServer(dbService, authHandler, authService, userHandler, categoryHandler, walletHandler, transactionHandler)
	server.RegisterRoutes()

	if err := StartMaintenanceScheduler(userService, sessionManager); err != nil {
		log.Fatalf("Scheduler didn't start, stopping the app: %v", err)
	}

	handler := loggingMiddleware(server.router)
	log.Println("Server starting on port 8080...")
	if err := http.ListenAndServe(":8080", handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// StartMaintenanceScheduler periodically drops expired verification and reset
// tokens from the database and stale interim session tokens from memory.
func StartMaintenanceScheduler(userService user.Service, sessionManager auth.SessionManagerInterface) error {
	c := cron.New()
	_, err := c.AddFunc("@every 1h", func() {
		purged, err := userService.PurgeExpiredTokens()
		if err != nil {
			log.Printf("Error purging expired user tokens: %v", err)
		} else if purged > 0 {
			log.Printf("Purged %d expired user tokens", purged)
		}
	})
	if err != nil {
		return err
	}
	_, err = c.AddFunc("@every 10m", func() {
		removed := sessionManager.CleanupExpiredTokens()
		if removed > 0 {
			log.Printf("Removed %d expired session tokens", removed)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	return nil
}
