package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

// newTestApp wires the full HTTP surface against the seeded dataset, the
// same way cmd/api does.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		App:          config.AppConfig{Name: "portal-test", Version: "test"},
		Auth:         config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60},
		Chat:         config.ChatConfig{OpenHour: 0, CloseHour: 24},
		Notification: config.NotificationConfig{},
	}
	logger := zap.NewNop()
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

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dataset),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService, commentService),
		AdminTickets:   handlers.NewAdminTicketsHandler(ticketService, commentService),
		Chats:          handlers.NewChatHandler(chatService),
		Users:          handlers.NewUsersHandler(userService),
		Portal:         handlers.NewPortalHandler(projectService, accountService, notificationService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, metrics),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo),
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, raw := doRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{"email": email})
	require.Equal(t, http.StatusOK, status, string(raw))

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NotEmpty(t, envelope.Data.Token)
	return envelope.Data.Token
}

func errorCode(t *testing.T, raw []byte) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	return envelope.Error.Code
}

func TestHealthEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, _ := doRequest(t, app, fiber.MethodGet, "/health/live", "", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = doRequest(t, app, fiber.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestAuthRequired(t *testing.T) {
	app := newTestApp(t)

	status, raw := doRequest(t, app, fiber.MethodGet, "/tickets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, raw))

	status, raw = doRequest(t, app, fiber.MethodGet, "/tickets", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, raw))
}

func TestLoginRejectsPendingUser(t *testing.T) {
	app := newTestApp(t)

	status, raw := doRequest(t, app, fiber.MethodPost, "/auth/login", "", map[string]string{"email": "maria.garcia@techcorp.com"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, raw))
}

func TestAdminSurfaceRejectsClients(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "juan.perez@techcorp.com")

	status, raw := doRequest(t, app, fiber.MethodGet, "/admin/dashboard", token, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", errorCode(t, raw))
}

func TestClientTicketListScopedToCompany(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "juan.perez@techcorp.com")

	status, raw := doRequest(t, app, fiber.MethodGet, "/tickets", token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var envelope struct {
		Data []struct {
			ID                string `json:"id"`
			CompanyID         string `json:"companyId"`
			HasActionRequired bool   `json:"hasActionRequired"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.Len(t, envelope.Data, 2)
	for _, ticket := range envelope.Data {
		assert.Equal(t, "1", ticket.CompanyID)
	}
	// T-001 carries an unanswered information request, so it sorts first.
	assert.Equal(t, "T-001", envelope.Data[0].ID)
	assert.True(t, envelope.Data[0].HasActionRequired)
}

func TestInfoResponseClearsActionFlag(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "juan.perez@techcorp.com")

	responded := "T-001-c2"
	status, raw := doRequest(t, app, fiber.MethodPost, "/tickets/T-001/comments", token, map[string]any{
		"content":              "Versión 2.3.1, navegador Chrome",
		"commentType":          "RTAMASDACL",
		"respondedToCommentId": responded,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var envelope struct {
		Data struct {
			HasActionRequired bool `json:"hasActionRequired"`
			Comments          []struct {
				ID               string `json:"id"`
				RequiresResponse *bool  `json:"requiresResponse"`
			} `json:"comments"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.False(t, envelope.Data.HasActionRequired)
	require.Len(t, envelope.Data.Comments, 3)

	for _, comment := range envelope.Data.Comments {
		if comment.ID == responded {
			require.NotNil(t, comment.RequiresResponse)
			assert.False(t, *comment.RequiresResponse)
		}
	}
}

func TestInfoResponseWithBadLinkage(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "juan.perez@techcorp.com")

	status, raw := doRequest(t, app, fiber.MethodPost, "/tickets/T-001/comments", token, map[string]any{
		"content":              "respuesta",
		"commentType":          "RTAMASDACL",
		"respondedToCommentId": "T-001-c1",
	})
	assert.Equal(t, http.StatusBadRequest, status, string(raw))
	assert.Equal(t, "INVALID_LINKAGE", errorCode(t, raw))
}

func TestClientCannotPostAgentCommentTypes(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "juan.perez@techcorp.com")

	status, raw := doRequest(t, app, fiber.MethodPost, "/tickets/T-001/comments", token, map[string]any{
		"content":     "necesito más datos",
		"commentType": "MASDACLI",
	})
	assert.Equal(t, http.StatusForbidden, status, string(raw))
	assert.Equal(t, "UNAUTHORIZED_COMMENT_TYPE", errorCode(t, raw))
}

func TestClientCannotReachForeignTicket(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "juan.perez@techcorp.com")

	// T-003 belongs to another company.
	status, raw := doRequest(t, app, fiber.MethodGet, "/tickets/T-003", token, nil)
	assert.Equal(t, http.StatusForbidden, status, string(raw))
	assert.Equal(t, "FORBIDDEN", errorCode(t, raw))

	status, raw = doRequest(t, app, fiber.MethodGet, "/tickets/T-404", token, nil)
	assert.Equal(t, http.StatusNotFound, status, string(raw))
	assert.Equal(t, "NOT_FOUND", errorCode(t, raw))
}

func TestAdminStatusUpdateFlow(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin@jubbler.com")

	status, raw := doRequest(t, app, fiber.MethodPatch, "/admin/tickets/T-001/status", token, map[string]string{"status": "IN_PROGRESS"})
	require.Equal(t, http.StatusOK, status, string(raw))

	var envelope struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "IN_PROGRESS", envelope.Data.Status)

	// A closed ticket is terminal.
	status, raw = doRequest(t, app, fiber.MethodPatch, "/admin/tickets/T-002/status", token, map[string]string{"status": "OPEN"})
	assert.Equal(t, http.StatusConflict, status, string(raw))
	assert.Equal(t, "CONFLICT", errorCode(t, raw))
}

func TestApprovalRoundTripOverHTTP(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, "admin@jubbler.com")
	clientToken := login(t, app, "pedro.sanchez@digitalsol.com")

	// T-005 already has a pending approval request from the agent.
	approved := true
	status, raw := doRequest(t, app, fiber.MethodPost, "/tickets/T-005/comments", clientToken, map[string]any{
		"content":           "Aprobado, adelante",
		"commentType":       "APROBACLI",
		"approvedCommentId": "T-005-c1",
		"approved":          &approved,
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var envelope struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "RESOLVED", envelope.Data.Status)

	// The agent sees the same resolved state.
	status, raw = doRequest(t, app, fiber.MethodGet, "/admin/tickets/T-005", adminToken, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, "RESOLVED", envelope.Data.Status)
}

func TestCreateTicketAndValidation(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "juan.perez@techcorp.com")

	status, raw := doRequest(t, app, fiber.MethodPost, "/tickets", token, map[string]string{
		"title":       "Error en reportes",
		"description": "El reporte mensual no carga",
		"type":        "INCIDENT",
		"priority":    "HIGH",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var envelope struct {
		Data struct {
			ID        string `json:"id"`
			Status    string `json:"status"`
			CompanyID string `json:"companyId"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, fmt.Sprintf("T-%03d", 6), envelope.Data.ID)
	assert.Equal(t, "OPEN", envelope.Data.Status)
	assert.Equal(t, "1", envelope.Data.CompanyID)

	// Missing description fails payload validation.
	status, raw = doRequest(t, app, fiber.MethodPost, "/tickets", token, map[string]string{"title": "incompleto"})
	assert.Equal(t, http.StatusBadRequest, status, string(raw))
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, raw))
}

func TestAccountSectionPermissionGated(t *testing.T) {
	app := newTestApp(t)

	// Ana has only canViewProjects; the account section stays closed.
	token := login(t, app, "ana.martinez@innovate.com")
	status, raw := doRequest(t, app, fiber.MethodGet, "/account", token, nil)
	assert.Equal(t, http.StatusForbidden, status, string(raw))

	status, _ = doRequest(t, app, fiber.MethodGet, "/projects", token, nil)
	assert.Equal(t, http.StatusOK, status)

	token = login(t, app, "juan.perez@techcorp.com")
	status, raw = doRequest(t, app, fiber.MethodGet, "/account/invoices", token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var envelope struct {
		Data []struct {
			Number string `json:"number"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Len(t, envelope.Data, 2)
}

func TestAdminMetricsEndpoint(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "admin@jubbler.com")

	status, raw := doRequest(t, app, fiber.MethodGet, "/admin/metrics", token, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var envelope struct {
		Data struct {
			Requests map[string]int64 `json:"requests"`
			Errors   map[string]int64 `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.NotEmpty(t, envelope.Data.Requests)
}

func TestNotificationsEndToEnd(t *testing.T) {
	app := newTestApp(t)
	adminToken := login(t, app, "admin@jubbler.com")
	clientToken := login(t, app, "juan.perez@techcorp.com")

	status, raw := doRequest(t, app, fiber.MethodPost, "/admin/tickets/T-001/comments", adminToken, map[string]any{
		"content":     "Estamos revisando el caso",
		"commentType": "NORMAL",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = doRequest(t, app, fiber.MethodGet, "/notifications", clientToken, nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var envelope struct {
		Data []struct {
			ID   string `json:"id"`
			Read bool   `json:"read"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	require.NotEmpty(t, envelope.Data)

	status, _ = doRequest(t, app, fiber.MethodPost, "/notifications/read-all", clientToken, nil)
	assert.Equal(t, http.StatusOK, status)
}
