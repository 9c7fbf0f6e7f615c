package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/jubbler/portal-service/internal/api/http"
	"github.com/jubbler/portal-service/internal/api/http/handlers"
	"github.com/jubbler/portal-service/internal/auth"
	"github.com/jubbler/portal-service/internal/config"
	"github.com/jubbler/portal-service/internal/events"
	"github.com/jubbler/portal-service/internal/observability"
	"github.com/jubbler/portal-service/internal/persistence"
	"github.com/jubbler/portal-service/internal/repository"
	"github.com/jubbler/portal-service/internal/service"
	"github.com/jubbler/portal-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	dataset := persistence.NewSeededDataset(logger)

	companyRepo := repository.NewCompanyRepository(dataset)
	userRepo := repository.NewUserRepository(dataset)
	ticketRepo := repository.NewTicketRepository(dataset)
	chatRepo := repository.NewChatRepository(dataset)
	projectRepo := repository.NewProjectRepository(dataset)
	billingRepo := repository.NewBillingRepository(dataset)
	notificationRepo := repository.NewNotificationRepository(dataset)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(cfg.Auth, userRepo)
	ticketService := service.NewTicketService(ticketRepo, companyRepo, dispatcher)
	commentService := service.NewCommentService(ticketRepo, dispatcher)
	chatService := service.NewChatService(chatRepo, companyRepo, dispatcher, cfg.Chat)
	userService := service.NewUserService(userRepo, companyRepo, dispatcher)
	projectService := service.NewProjectService(projectRepo)
	accountService := service.NewAccountService(billingRepo)
	dashboardService := service.NewDashboardService(ticketRepo, chatRepo, companyRepo)
	notificationService := service.NewNotificationService(dispatcher, notificationRepo, userRepo, logger, cfg.Notification)

	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dataset),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, commentService),
		AdminTickets:   handlers.NewAdminTicketsHandler(ticketService, commentService),
		Chats:          handlers.NewChatHandler(chatService),
		Users:          handlers.NewUsersHandler(userService),
		Portal:         handlers.NewPortalHandler(projectService, accountService, notificationService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, metrics),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
