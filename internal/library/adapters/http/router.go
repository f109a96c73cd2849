// Package http содержит компоненты HTTP сервера библиотеки.
package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	jsoniter "github.com/json-iterator/go"

	"libraryhub/internal/library/adapters/http/handlers"
	"libraryhub/internal/library/adapters/http/middleware"
	"libraryhub/internal/library/ports/api"
	"libraryhub/pkg/logger"
)

const (
	ErrMsgRouteNotFound = "route not found"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Services сценарии, которые обслуживает HTTP API.
type Services struct {
	Auth    api.AuthService
	Users   api.UserService
	Authors api.AuthorService
	Books   api.BookService
	Loans   api.LoanService
	Reports api.ReportService
	DB      handlers.Pinger
}

// RateLimits лимиты запросов по IP.
type RateLimits struct {
	Reads  middleware.RateLimit
	Writes middleware.RateLimit
	Login  middleware.RateLimit
}

// DefaultRateLimits 50 чтений, 20 изменений и 5 входов в минуту.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Reads:  middleware.RateLimit{Max: 50, Window: time.Minute},
		Writes: middleware.RateLimit{Max: 20, Window: time.Minute},
		Login:  middleware.RateLimit{Max: 5, Window: time.Minute},
	}
}

// ServerConfig параметры fiber.App.
type ServerConfig struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int
}

// NewApp создает fiber.App с кодеком jsoniter и JSON-ответом на ошибки fiber.
func NewApp(cfg ServerConfig) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		BodyLimit:    cfg.BodyLimit,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: errorHandler,
	})
}

func errorHandler(ctx fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := middleware.ErrMsgInternal
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}
	return ctx.Status(code).JSON(fiber.Map{"error": message})
}

// SetupRouter настраивает маршрутизацию HTTP сервера.
func SetupRouter(app *fiber.App, log *logger.Logger, svc Services, limits RateLimits) {
	healthHandler := handlers.NewHealthHandler(svc.DB)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	userHandler := handlers.NewUserHandler(svc.Users, svc.Loans)
	authorHandler := handlers.NewAuthorHandler(svc.Authors)
	bookHandler := handlers.NewBookHandler(svc.Books)
	loanHandler := handlers.NewLoanHandler(svc.Loans)
	reportHandler := handlers.NewReportHandler(svc.Reports)

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware(log))
	app.Use(middleware.NewRecoveryMiddleware())

	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.Health)

	apiV1 := app.Group("/api/v1")
	apiV1.Use(middleware.NewReadLimiter(limits.Reads))
	apiV1.Use(middleware.NewWriteLimiter(limits.Writes))

	requireAuth := middleware.NewAuthMiddleware(svc.Auth)

	// Публичные маршруты.
	auth := apiV1.Group("/auth", middleware.NewLoginLimiter(limits.Login))
	auth.Post("/token", authHandler.Token)
	apiV1.Post("/users", userHandler.Create)

	users := apiV1.Group("/users", requireAuth)
	users.Get("/", userHandler.List)
	users.Get("/:user_id", userHandler.Get)
	users.Get("/:user_id/loans", userHandler.Loans)
	users.Put("/:user_id", userHandler.Replace)
	users.Patch("/:user_id", userHandler.Patch)
	users.Delete("/:user_id", userHandler.Delete)

	authors := apiV1.Group("/authors", requireAuth)
	authors.Post("/", authorHandler.Create)
	authors.Get("/", authorHandler.List)
	authors.Get("/:author_id", authorHandler.Get)
	authors.Get("/:author_id/books", authorHandler.Books)
	authors.Put("/:author_id", authorHandler.Replace)
	authors.Patch("/:author_id", authorHandler.Patch)
	authors.Delete("/:author_id", authorHandler.Delete)

	books := apiV1.Group("/books", requireAuth)
	books.Post("/", bookHandler.Create)
	books.Get("/", bookHandler.List)
	books.Get("/available", bookHandler.Available)
	books.Get("/:book_id", bookHandler.Get)
	books.Put("/:book_id", bookHandler.Replace)
	books.Patch("/:book_id", bookHandler.Patch)
	books.Delete("/:book_id", bookHandler.Delete)

	loans := apiV1.Group("/loans", requireAuth)
	loans.Post("/", loanHandler.Create)
	loans.Get("/", loanHandler.List)
	loans.Get("/active/:user_id", loanHandler.Active)
	loans.Get("/overdue/:user_id", loanHandler.Overdue)
	loans.Get("/history/:user_id", loanHandler.History)
	loans.Get("/:loan_id", loanHandler.Get)
	loans.Put("/:loan_id", loanHandler.Replace)
	loans.Patch("/:loan_id", loanHandler.Patch)
	loans.Delete("/:loan_id", loanHandler.Delete)

	reports := apiV1.Group("/reports", requireAuth)
	reports.Get("/:format", reportHandler.Generate)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": ErrMsgRouteNotFound,
		})
	})
}
