package entity

import "time"

// LevelRole binds a role reward to one exact level. At most one role per
// (community, level).
type LevelRole struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	CommunityID string `gorm:"primaryKey"`
	Level       int    `gorm:"primaryKey"`

	RoleID string
}
