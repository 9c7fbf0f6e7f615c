package domain

// Company groups client users, tickets, chats, projects and billing.
type Company struct {
	ID    string
	Name  string
	Email string
	Phone string
}
