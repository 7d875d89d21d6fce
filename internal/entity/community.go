package entity

import (
	"database/sql"
	"time"
)

// CommunitySettings is created lazily the first time a community is read.
type CommunitySettings struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	CommunityID string `gorm:"primaryKey"`

	CongratsChannelID sql.NullString
	CongratsTemplate  sql.NullString

	AutoReplyEnabled bool `gorm:"default:true"`
}
