package entity

import (
	"database/sql"
	"time"
)

// ModLog is an append-only record of administrative actions.
type ModLog struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time

	CommunityID string `gorm:"index"`
	Action      string
	ActorID     string
	TargetID    sql.NullString
	Reason      sql.NullString
}
