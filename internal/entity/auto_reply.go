package entity

import "time"

// AutoReply is an exact-match trigger/reply pair.
type AutoReply struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	CommunityID string `gorm:"primaryKey"`

	// The column avoids the bare name trigger, a reserved word in mysql.
	Trigger string `gorm:"primaryKey;column:trigger_text"`

	Reply string
}
