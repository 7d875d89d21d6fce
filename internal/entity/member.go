package entity

import (
	"database/sql"
	"time"
)

// Member is the per-(community, user) XP record. Counters are only ever
// mutated through atomic UPDATE expressions in the member repository, never
// read-modified-written.
type Member struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	CommunityID string `gorm:"primaryKey"`
	UserID      string `gorm:"primaryKey"`

	TextLifetime  int64
	VoiceLifetime int64
	TextDay       int64
	VoiceDay      int64
	TextWeek      int64
	VoiceWeek     int64

	Level int

	// MessageBucket counts messages toward the next text XP credit. It cycles
	// in [0, threshold).
	MessageBucket int
	LastMessageAt sql.NullTime
}

func (m *Member) TotalXP() int64 {
	return m.TextLifetime + m.VoiceLifetime
}
