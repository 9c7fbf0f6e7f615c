package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jubbler/portal-service/internal/api/http/handlers"
	"github.com/jubbler/portal-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	AdminTickets   *handlers.AdminTicketsHandler
	Chats          *handlers.ChatHandler
	Users          *handlers.UsersHandler
	Portal         *handlers.PortalHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Auth.Me)
	authProtected.Put("/profile", cfg.Auth.UpdateProfile)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)

	// Client portal. Agents use the /admin surface below.
	client := app.Group("", cfg.AuthMiddleware.Handle)

	tickets := client.Group("/tickets", auth.RequireClient())
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
	tickets.Post("/:id/comments/read", cfg.Tickets.MarkCommentsRead)

	chats := client.Group("/chats")
	chats.Post("", auth.RequireClient(), cfg.Chats.StartChat)
	chats.Get("", cfg.Chats.ListChats)
	chats.Get("/:id", cfg.Chats.GetChat)
	chats.Post("/:id/messages", cfg.Chats.SendMessage)
	chats.Post("/:id/read", cfg.Chats.MarkMessagesRead)

	client.Get("/projects", auth.RequirePermission(auth.CanViewProjects), cfg.Portal.ListProjects)

	account := client.Group("/account", auth.RequirePermission(auth.CanViewAccount))
	account.Get("", cfg.Portal.GetAccount)
	account.Get("/invoices", cfg.Portal.ListInvoices)
	account.Get("/movements", cfg.Portal.ListMovements)

	users := client.Group("/users", auth.RequirePermission(auth.CanViewUsers))
	users.Get("", cfg.Users.ListUsers)
	users.Post("", cfg.Users.CreateUser)
	users.Put("/:id", cfg.Users.UpdateUser)
	users.Delete("/:id", cfg.Users.DeleteUser)

	notifications := client.Group("/notifications")
	notifications.Get("", cfg.Portal.ListNotifications)
	notifications.Post("/read-all", cfg.Portal.MarkAllNotificationsRead)
	notifications.Post("/:id/read", cfg.Portal.MarkNotificationRead)

	// Agent surface.
	admin := app.Group("/admin", cfg.AuthMiddleware.Handle, auth.RequireAdmin())
	admin.Get("/dashboard", cfg.Dashboard.Stats)
	admin.Get("/metrics", cfg.Dashboard.Metrics)

	adminTickets := admin.Group("/tickets")
	adminTickets.Get("", cfg.AdminTickets.ListTickets)
	adminTickets.Get("/:id", cfg.AdminTickets.GetTicket)
	adminTickets.Patch("/:id/status", cfg.AdminTickets.UpdateStatus)
	adminTickets.Post("/:id/comments", cfg.AdminTickets.AddComment)
	adminTickets.Post("/:id/comments/read", cfg.AdminTickets.MarkCommentsRead)

	adminChats := admin.Group("/chats")
	adminChats.Get("", cfg.Chats.ListChats)
	adminChats.Post("/:id/close", cfg.Chats.CloseChat)

	adminUsers := admin.Group("/users")
	adminUsers.Get("", cfg.Users.ListUsers)
	adminUsers.Post("", cfg.Users.CreateUser)
	adminUsers.Put("/:id", cfg.Users.UpdateUser)
	adminUsers.Delete("/:id", cfg.Users.DeleteUser)
	adminUsers.Post("/:id/approve", cfg.Users.ApproveUser)
	adminUsers.Post("/:id/reject", cfg.Users.RejectUser)
}
