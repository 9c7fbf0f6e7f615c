package domain

import "time"

// ProjectStatus enumerates delivery states.
type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
)

// Project is a client-visible engagement tracked in the portal.
type Project struct {
	ID               string
	Name             string
	Description      string
	CompanyID        string
	ScheduleURL      string
	Status           ProjectStatus
	StartDate        time.Time
	EstimatedEndDate *time.Time
}
