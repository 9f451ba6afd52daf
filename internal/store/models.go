package store

import (
	"database/sql"
	"time"

	"github.com/AZZOUZ007/SMOKED-MONEY/internal/domain"
)

type userRow struct {
	UserID             int64          `db:"user_id"`
	UnitPrice          float64        `db:"unit_price"`
	Stock              int            `db:"stock"`
	DashboardMessageID sql.NullInt64  `db:"dashboard_message_id"`
	StartDate          sql.NullString `db:"start_date"`
	CreatedAt          int64          `db:"created_at"`
}

func (r userRow) toDomain() *domain.User {
	u := &domain.User{
		UserID:    r.UserID,
		UnitPrice: r.UnitPrice,
		Stock:     r.Stock,
		StartDate: r.StartDate.String,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
	}
	if r.DashboardMessageID.Valid {
		id := int(r.DashboardMessageID.Int64)
		u.DashboardMessageID = &id
	}
	return u
}
