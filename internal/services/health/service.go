package health

import (
	"context"
	"time"
)

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Service encapsulates health-related checks.
type Service struct {
	db        Pinger
	storeType string
}

// NewService constructs a health service. db may be nil when repositories are
// in memory.
func NewService(db Pinger, storeType string) *Service {
	return &Service{db: db, storeType: storeType}
}

// Status reports liveness of the process and its backing services. OK is
// false only when a configured database does not answer.
type Status struct {
	OK          bool   `json:"ok"`
	Database    string `json:"database"`
	ObjectStore string `json:"objectStore"`
}

// Check pings the database, if any.
func (s *Service) Check(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", ObjectStore: s.storeType}
	if s.db == nil {
		return st
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		st.OK = false
		st.Database = "down"
		return st
	}
	st.Database = "up"
	return st
}
