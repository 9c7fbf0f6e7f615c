package persistence

import (
	"time"

	"github.com/jubbler/portal-service/internal/domain"
)

// Seed fills the dataset with the portal's demo companies, users, tickets
// (including comment threads in every workflow state), chats, projects and
// billing records.
func Seed(ds *Dataset) {
	ds.Lock()
	defer ds.Unlock()

	ds.Companies = seedCompanies()
	ds.Users = seedUsers()
	ds.Tickets = seedTickets()
	ds.Chats = seedChats()
	ds.Projects = seedProjects()
	ds.Invoices = seedInvoices()
	ds.Movements = seedMovements()
	ds.Notifications = seedNotifications()
	ds.TicketSeq = len(ds.Tickets)
}

func seedCompanies() []domain.Company {
	return []domain.Company{
		{ID: "1", Name: "TechCorp S.A.", Email: "info@techcorp.com", Phone: "+54 11 4444-5555"},
		{ID: "2", Name: "Innovate Ltd.", Email: "contacto@innovate.com", Phone: "+54 11 5555-6666"},
		{ID: "3", Name: "Digital Solutions", Email: "info@digitalsol.com", Phone: "+54 11 6666-7777"},
	}
}

func seedUsers() []domain.User {
	creator := func(id string) *string { return &id }
	return []domain.User{
		{
			ID: "1", Email: "juan.perez@techcorp.com", Name: "Juan Pérez",
			Phone: "+54 911 1234-5678", Role: domain.RoleClient,
			Status: domain.UserStatusApproved, CompanyID: "1",
			Permissions: domain.Permissions{CanViewProjects: true, CanViewAccount: true, CanViewUsers: true},
			CreatedAt:   ts("2024-01-10T10:00:00Z"),
		},
		{
			ID: "2", Email: "maria.garcia@techcorp.com", Name: "María García",
			Phone: "+54 911 2345-6789", Role: domain.RoleClient,
			Status: domain.UserStatusPending, CompanyID: "1", CreatedBy: creator("1"),
			CreatedAt: ts("2025-01-03T14:30:00Z"),
		},
		{
			ID: "3", Email: "carlos.lopez@innovate.com", Name: "Carlos López",
			Phone: "+54 911 3456-7890", Role: domain.RoleClient,
			Status: domain.UserStatusApproved, CompanyID: "2",
			Permissions: domain.Permissions{CanViewProjects: true, CanViewAccount: true, CanViewUsers: true},
			CreatedAt:   ts("2024-02-15T09:00:00Z"),
		},
		{
			ID: "4", Email: "ana.martinez@innovate.com", Name: "Ana Martínez",
			Phone: "+54 911 4567-8901", Role: domain.RoleClient,
			Status: domain.UserStatusApproved, CompanyID: "2", CreatedBy: creator("3"),
			Permissions: domain.Permissions{CanViewProjects: true},
			CreatedAt:   ts("2024-05-20T11:00:00Z"),
		},
		{
			ID: "5", Email: "pedro.sanchez@digitalsol.com", Name: "Pedro Sánchez",
			Phone: "+54 911 5678-9012", Role: domain.RoleClient,
			Status: domain.UserStatusApproved, CompanyID: "3",
			Permissions: domain.Permissions{CanViewAccount: true},
			CreatedAt:   ts("2024-03-01T08:00:00Z"),
		},
		{
			ID: "admin1", Email: "admin@jubbler.com", Name: "Admin Jubbler",
			Phone: "+54 911 0000-0000", Role: domain.RoleSuperadmin,
			Status: domain.UserStatusApproved, CompanyID: "",
			CreatedAt: ts("2023-06-01T00:00:00Z"),
		},
	}
}

func seedTickets() []domain.Ticket {
	return []domain.Ticket{
		{
			ID: "T-001", Type: domain.TicketTypeIncident,
			Title:       "Error en módulo de facturación",
			Description: "Al generar una factura, el sistema muestra un error 500",
			Status:      domain.TicketStatusOpen, Priority: domain.TicketPriorityHigh,
			Urgency: domain.TicketLevelHigh, Impact: domain.TicketLevelMedium,
			Origin: domain.TicketOriginWeb, CompanyID: "1",
			CreatedBy: "1", CreatedByName: "Juan Pérez",
			CreatedAt: ts("2025-01-05T10:30:00Z"), UpdatedAt: ts("2025-01-05T10:30:00Z"),
			Comments: []domain.TicketComment{
				{
					ID: "T-001-c1", TicketID: "T-001", AuthorID: "1", AuthorName: "Juan Pérez",
					AuthorRole: domain.RoleClient,
					Content:    "El error aparece siempre que la factura tiene más de 10 ítems",
					CreatedAt:  ts("2025-01-05T11:00:00Z"), Read: false,
					Body: &domain.NormalBody{},
				},
				{
					ID: "T-001-c2", TicketID: "T-001", AuthorID: "admin1", AuthorName: "Admin Jubbler",
					AuthorRole: domain.RoleSuperadmin,
					Content:    "Necesitamos una captura de pantalla del error y el número de factura",
					CreatedAt:  ts("2025-01-05T12:00:00Z"), Read: false,
					Body: &domain.InfoRequestBody{AwaitingResponse: true},
				},
			},
		},
		{
			ID: "T-002", Type: domain.TicketTypeRequirement,
			Title:       "Exportación de reportes en Excel",
			Description: "Solicitud para agregar la funcionalidad de exportar reportes a formato Excel",
			Status:      domain.TicketStatusInProgress, Priority: domain.TicketPriorityMedium,
			Urgency: domain.TicketLevelMedium, Impact: domain.TicketLevelLow,
			Origin: domain.TicketOriginWeb, CompanyID: "1",
			CreatedBy: "1", CreatedByName: "Juan Pérez",
			CreatedAt: ts("2024-12-20T14:00:00Z"), UpdatedAt: ts("2025-01-02T09:00:00Z"),
			Comments: []domain.TicketComment{
				{
					ID: "T-002-c1", TicketID: "T-002", AuthorID: "admin1", AuthorName: "Admin Jubbler",
					AuthorRole: domain.RoleSuperadmin,
					Content:    "¿Qué reportes necesitan exportar exactamente?",
					CreatedAt:  ts("2024-12-21T10:00:00Z"), Read: true,
					Body: &domain.InfoRequestBody{AwaitingResponse: false},
				},
				{
					ID: "T-002-c2", TicketID: "T-002", AuthorID: "1", AuthorName: "Juan Pérez",
					AuthorRole: domain.RoleClient,
					Content:    "Los reportes mensuales de ventas y el listado de clientes",
					CreatedAt:  ts("2024-12-21T15:30:00Z"), Read: true,
					Body: &domain.InfoResponseBody{RespondedToCommentID: "T-002-c1"},
				},
				{
					ID: "T-002-c3", TicketID: "T-002", AuthorID: "admin1", AuthorName: "Admin Jubbler",
					AuthorRole: domain.RoleSuperadmin,
					Content:    "Comenzamos el desarrollo, estimamos dos semanas",
					CreatedAt:  ts("2025-01-02T09:00:00Z"), Read: false,
					Body: &domain.NormalBody{},
				},
			},
		},
		{
			ID: "T-003", Type: domain.TicketTypeIncident,
			Title:       "Login no funciona en Safari",
			Description: "Los usuarios que utilizan Safari no pueden iniciar sesión",
			Status:      domain.TicketStatusResolved, Priority: domain.TicketPriorityUrgent,
			Urgency: domain.TicketLevelHigh, Impact: domain.TicketLevelHigh,
			Origin: domain.TicketOriginEmail, CompanyID: "2",
			CreatedBy: "3", CreatedByName: "Carlos López",
			CreatedAt: ts("2024-12-28T11:15:00Z"), UpdatedAt: ts("2024-12-29T16:45:00Z"),
			Comments: []domain.TicketComment{
				{
					ID: "T-003-c1", TicketID: "T-003", AuthorID: "admin1", AuthorName: "Admin Jubbler",
					AuthorRole: domain.RoleSuperadmin,
					Content:    "Corregimos la validación de cookies, por favor confirmar el acceso",
					CreatedAt:  ts("2024-12-29T14:00:00Z"), Read: true,
					Body: &domain.ApprovalRequestBody{AwaitingApproval: false},
				},
				{
					ID: "T-003-c2", TicketID: "T-003", AuthorID: "3", AuthorName: "Carlos López",
					AuthorRole: domain.RoleClient,
					Content:    "Desarrollo aprobado",
					CreatedAt:  ts("2024-12-29T16:45:00Z"), Read: true,
					Body: &domain.ApprovalDecisionBody{ApprovedCommentID: "T-003-c1", Approved: true},
				},
			},
		},
		{
			ID: "T-004", Type: domain.TicketTypeRequirement,
			Title:       "Dashboard personalizado",
			Description: "Crear un dashboard personalizado con métricas específicas del negocio",
			Status:      domain.TicketStatusOpen, Priority: domain.TicketPriorityLow,
			Urgency: domain.TicketLevelLow, Impact: domain.TicketLevelLow,
			Origin: domain.TicketOriginMobile, CompanyID: "2",
			CreatedBy: "4", CreatedByName: "Ana Martínez",
			CreatedAt: ts("2025-01-04T09:30:00Z"), UpdatedAt: ts("2025-01-04T09:30:00Z"),
		},
		{
			ID: "T-005", Type: domain.TicketTypeIncident,
			Title:       "Lentitud en carga de datos",
			Description: "El sistema tarda más de 30 segundos en cargar el listado de clientes",
			Status:      domain.TicketStatusInProgress, Priority: domain.TicketPriorityMedium,
			Urgency: domain.TicketLevelMedium, Impact: domain.TicketLevelMedium,
			Origin: domain.TicketOriginPhone, CompanyID: "3",
			CreatedBy: "5", CreatedByName: "Pedro Sánchez",
			CreatedAt: ts("2025-01-03T16:20:00Z"), UpdatedAt: ts("2025-01-06T08:00:00Z"),
			Comments: []domain.TicketComment{
				{
					ID: "T-005-c1", TicketID: "T-005", AuthorID: "admin1", AuthorName: "Admin Jubbler",
					AuthorRole: domain.RoleSuperadmin,
					Content:    "Optimizamos la consulta principal, por favor validar los tiempos de carga",
					CreatedAt:  ts("2025-01-06T08:00:00Z"), Read: false,
					Body: &domain.ApprovalRequestBody{AwaitingApproval: true},
				},
			},
		},
	}
}

func seedChats() []domain.Chat {
	return []domain.Chat{
		{
			ID: "chat-1", CompanyID: "1", CompanyName: "TechCorp S.A.",
			UserID: "1", UserName: "Juan Pérez", UserEmail: "juan.perez@techcorp.com",
			Subject: "Consulta sobre facturación", Status: domain.ChatStatusActive,
			CreatedAt: ts("2025-01-06T09:30:00Z"),
			Messages: []domain.ChatMessage{
				{
					ID: "msg-1", ChatID: "chat-1", SenderID: "1", SenderName: "Juan Pérez",
					SenderRole: domain.RoleClient, Type: domain.ChatMessageText,
					Content: "Hola, tengo una consulta sobre la última factura",
					SentAt:  ts("2025-01-06T09:30:00Z"), Read: true,
				},
				{
					ID: "msg-2", ChatID: "chat-1", SenderID: "admin1", SenderName: "Admin Jubbler",
					SenderRole: domain.RoleSuperadmin, Type: domain.ChatMessageText,
					Content: "Hola Juan, decime en qué te puedo ayudar",
					SentAt:  ts("2025-01-06T09:32:00Z"), Read: false,
				},
			},
		},
		{
			ID: "chat-5", CompanyID: "2", CompanyName: "Innovate Ltd.",
			UserID: "3", UserName: "Carlos López", UserEmail: "carlos.lopez@innovate.com",
			Subject: "Acceso de nuevos usuarios", Status: domain.ChatStatusClosed,
			CreatedAt: ts("2024-12-28T15:00:00Z"), ClosedAt: tsPtr("2024-12-28T16:30:00Z"),
			Messages: []domain.ChatMessage{
				{
					ID: "msg-10", ChatID: "chat-5", SenderID: "3", SenderName: "Carlos López",
					SenderRole: domain.RoleClient, Type: domain.ChatMessageText,
					Content: "¿Cómo doy de alta un usuario nuevo?",
					SentAt:  ts("2024-12-28T15:00:00Z"), Read: true,
				},
				{
					ID: "msg-11", ChatID: "chat-5", SenderID: "admin1", SenderName: "Admin Jubbler",
					SenderRole: domain.RoleSuperadmin, Type: domain.ChatMessageText,
					Content: "Desde la sección Usuarios, con el botón Crear usuario",
					SentAt:  ts("2024-12-28T16:05:00Z"), Read: true,
				},
			},
		},
	}
}

func seedProjects() []domain.Project {
	return []domain.Project{
		{
			ID: "proj-1", Name: "Sistema de Gestión ERP",
			Description: "Implementación de sistema ERP completo", CompanyID: "1",
			ScheduleURL: "https://example.com/schedule/proj-1",
			Status:      domain.ProjectStatusActive,
			StartDate:   date("2024-06-01"), EstimatedEndDate: datePtr("2025-03-31"),
		},
		{
			ID: "proj-2", Name: "Migración Cloud",
			Description: "Migración de infraestructura a la nube", CompanyID: "1",
			ScheduleURL: "https://example.com/schedule/proj-2",
			Status:      domain.ProjectStatusActive,
			StartDate:   date("2024-10-01"), EstimatedEndDate: datePtr("2025-06-30"),
		},
		{
			ID: "proj-3", Name: "Desarrollo App Mobile",
			Description: "Aplicación móvil para clientes", CompanyID: "2",
			ScheduleURL: "https://example.com/schedule/proj-3",
			Status:      domain.ProjectStatusActive,
			StartDate:   date("2024-08-15"), EstimatedEndDate: datePtr("2025-02-28"),
		},
		{
			ID: "proj-4", Name: "Portal de Clientes",
			Description: "Portal web para autogestión de clientes", CompanyID: "3",
			ScheduleURL: "https://example.com/schedule/proj-4",
			Status:      domain.ProjectStatusCompleted,
			StartDate:   date("2024-03-01"), EstimatedEndDate: datePtr("2024-12-31"),
		},
	}
}

func seedInvoices() []domain.Invoice {
	return []domain.Invoice{
		{
			ID: "inv-1", Number: "FC-0001-00001234", CompanyID: "1",
			Date: date("2024-12-01"), DueDate: date("2024-12-31"),
			Amount: 150000, Balance: 0, Status: domain.InvoiceStatusPaid,
			PDFURL: "#invoice-1.pdf",
		},
		{
			ID: "inv-2", Number: "FC-0001-00001235", CompanyID: "1",
			Date: date("2025-01-01"), DueDate: date("2025-01-31"),
			Amount: 175000, Balance: 175000, Status: domain.InvoiceStatusPending,
			PDFURL: "#invoice-2.pdf",
		},
		{
			ID: "inv-3", Number: "FC-0002-00000456", CompanyID: "2",
			Date: date("2024-11-15"), DueDate: date("2024-12-15"),
			Amount: 220000, Balance: 220000, Status: domain.InvoiceStatusOverdue,
			PDFURL: "#invoice-3.pdf",
		},
		{
			ID: "inv-4", Number: "FC-0002-00000457", CompanyID: "2",
			Date: date("2024-12-15"), DueDate: date("2025-01-15"),
			Amount: 195000, Balance: 0, Status: domain.InvoiceStatusPaid,
			PDFURL: "#invoice-4.pdf",
		},
	}
}

func seedMovements() []domain.AccountMovement {
	invoice := func(id string) *string { return &id }
	return []domain.AccountMovement{
		{
			ID: "mov-1", CompanyID: "1", Date: date("2024-12-01"),
			Description: "Factura FC-0001-00001234",
			Debit:       150000, Credit: 0, Balance: 150000, InvoiceID: invoice("inv-1"),
		},
		{
			ID: "mov-2", CompanyID: "1", Date: date("2024-12-15"),
			Description: "Pago recibido - Transferencia",
			Debit:       0, Credit: 150000, Balance: 0, InvoiceID: invoice("inv-1"),
		},
		{
			ID: "mov-3", CompanyID: "1", Date: date("2025-01-01"),
			Description: "Factura FC-0001-00001235",
			Debit:       175000, Credit: 0, Balance: 175000, InvoiceID: invoice("inv-2"),
		},
	}
}

func seedNotifications() []domain.Notification {
	chat := func(id string) *string { return &id }
	ticket := func(id string) *string { return &id }
	project := func(id string) *string { return &id }
	return []domain.Notification{
		{
			ID: "notif-1", UserID: "1", Type: domain.NotificationNewMessage,
			Title: "Nuevo mensaje", Description: "Tienes un nuevo mensaje de Admin Jubbler",
			Timestamp: ts("2025-01-06T09:32:00Z"), Read: false, ChatID: chat("chat-1"),
		},
		{
			ID: "notif-2", UserID: "1", Type: domain.NotificationTicketUpdate,
			Title: "Actualización de ticket", Description: "El ticket #T-002 cambió de estado a EN PROGRESO",
			Timestamp: ts("2025-01-02T09:05:00Z"), Read: false, TicketID: ticket("T-002"),
		},
		{
			ID: "notif-3", UserID: "1", Type: domain.NotificationProjectUpdate,
			Title: "Actualización de proyecto", Description: "El proyecto Sistema de Gestión ERP fue actualizado",
			Timestamp: ts("2025-01-05T14:20:00Z"), Read: false, ProjectID: project("proj-1"),
		},
		{
			ID: "notif-4", UserID: "2", Type: domain.NotificationUserApproved,
			Title: "Usuario aprobado", Description: "Tu usuario fue aprobado por la administración",
			Timestamp: ts("2025-01-04T11:00:00Z"), Read: true,
		},
		{
			ID: "notif-6", UserID: "3", Type: domain.NotificationTicketUpdate,
			Title: "Ticket resuelto", Description: "El ticket #T-003 cambió de estado a RESUELTO",
			Timestamp: ts("2024-12-29T16:50:00Z"), Read: true, TicketID: ticket("T-003"),
		},
	}
}

func ts(value string) time.Time {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func tsPtr(value string) *time.Time {
	parsed := ts(value)
	return &parsed
}

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return parsed
}

func datePtr(value string) *time.Time {
	parsed := date(value)
	return &parsed
}
