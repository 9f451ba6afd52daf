package store

import (
	"context"
	"errors"
	"time"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/domain"
)

// ErrUserNotFound is returned by GetUser when no profile row exists.
var ErrUserNotFound = errors.New("user not found")

// Repo defines storage operations for profiles and usage events.
type Repo interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
	CreateUser(ctx context.Context, userID int64, unitPrice float64) error
	UpdateUnitPrice(ctx context.Context, userID int64, price float64) error
	UpdateStock(ctx context.Context, userID int64, stock int) error
	UpdateDashboardMessageID(ctx context.Context, userID int64, messageID int) error
	UpdateStartDate(ctx context.Context, userID int64, startDate string) error
	LogUsage(ctx context.Context, userID int64, at time.Time, quantity int, cost float64) error
	SumUsage(ctx context.Context, userID int64, from, to time.Time) (domain.WindowStats, error)
	Close() error
}
