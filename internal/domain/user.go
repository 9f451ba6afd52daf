package domain

import "time"

// User is one tracked profile: unit price, current stock and the reference
// to the dashboard message that gets edited in place.
type User struct {
	UserID             int64
	UnitPrice          float64
	Stock              int
	DashboardMessageID *int      // nil until the first dashboard is sent
	StartDate          string    // "YYYY-MM-DD", empty when never set
	CreatedAt          time.Time // UTC
}

// UsageEvent is one immutable consumption record.
type UsageEvent struct {
	ID        int64
	UserID    int64
	Timestamp time.Time
	Quantity  int
	Cost      float64 // quantity * unit price at the time of the event
}
