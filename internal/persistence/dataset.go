package persistence

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jubbler/portal-service/internal/domain"
)

// Dataset is the portal's in-process datastore. All collections live in one
// struct guarded by a single RWMutex; repositories take the lock for every
// access so handler goroutines never observe partial updates. Nothing is
// persisted across restarts.
type Dataset struct {
	mu sync.RWMutex

	Companies     []domain.Company
	Users         []domain.User
	Tickets       []domain.Ticket
	Chats         []domain.Chat
	Projects      []domain.Project
	Invoices      []domain.Invoice
	Movements     []domain.AccountMovement
	Notifications []domain.Notification

	TicketSeq int
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{}
}

// NewSeededDataset returns a dataset filled with the portal's demo fixtures.
func NewSeededDataset(logger *zap.Logger) *Dataset {
	ds := NewDataset()
	Seed(ds)
	if logger != nil {
		logger.Info("seeded in-memory dataset",
			zap.Int("companies", len(ds.Companies)),
			zap.Int("users", len(ds.Users)),
			zap.Int("tickets", len(ds.Tickets)),
			zap.Int("chats", len(ds.Chats)))
	}
	return ds
}

// RLock acquires the shared read lock.
func (d *Dataset) RLock() { d.mu.RLock() }

// RUnlock releases the shared read lock.
func (d *Dataset) RUnlock() { d.mu.RUnlock() }

// Lock acquires the exclusive write lock.
func (d *Dataset) Lock() { d.mu.Lock() }

// Unlock releases the exclusive write lock.
func (d *Dataset) Unlock() { d.mu.Unlock() }
