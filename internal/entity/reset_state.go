package entity

import "time"

// ResetState records, per timer, the last calendar period a scheduled reset
// fired for. It is the restart-safe exactly-once guard of the reset
// scheduler: a trigger minute observed twice (or again after a restart)
// within the same period is a no-op.
type ResetState struct {
	UpdatedAt time.Time

	Name         string `gorm:"primaryKey"`
	LastFiredKey string
}
