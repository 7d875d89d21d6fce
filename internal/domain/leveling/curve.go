// Package leveling holds the pure level curve arithmetic. Nothing here
// touches storage or the platform, so resolving is safe to re-run from any
// fresh (level, total) pair.
package leveling

import (
	"errors"

	"github.com/tr10-lab/backend/config"
)

// Curve defines how much XP each level transition costs. RequiredXP(L) is the
// amount needed to advance from L to L+1; a member's level is the largest L
// whose cumulative cost fits into the lifetime total.
type Curve struct {
	Base         int64
	Linear       int64
	Quadratic    int64
	InitialLevel int
}

func NewCurve(cfg config.LevelConfigs) Curve {
	return Curve{
		Base:         cfg.Base,
		Linear:       cfg.Linear,
		Quadratic:    cfg.Quadratic,
		InitialLevel: cfg.InitialLevel,
	}
}

func (c Curve) Validate() error {
	if c.Base <= 0 {
		return errors.New("level curve base must be positive")
	}

	if c.Linear < 0 || c.Quadratic < 0 {
		return errors.New("level curve must not decrease")
	}

	return nil
}

// RequiredXP returns the XP needed to advance from level to level+1.
func (c Curve) RequiredXP(level int) int64 {
	n := int64(level - c.InitialLevel)
	return c.Base + c.Linear*n + c.Quadratic*n*n
}

// CumulativeXP returns the lifetime total at which the given level is
// reached. The initial level is reached at zero.
func (c Curve) CumulativeXP(level int) int64 {
	var total int64
	for l := c.InitialLevel; l < level; l++ {
		total += c.RequiredXP(l)
	}

	return total
}

// Resolve computes the level implied by the lifetime total, starting from the
// level currently on record. It returns the new level together with every
// level crossed on the way, in ascending order, so the caller can reward each
// one. No crossing returns a nil slice; calling again with the result is a
// no-op.
func (c Curve) Resolve(currentLevel int, total int64) (int, []int) {
	level := currentLevel
	cumulative := c.CumulativeXP(level)

	var crossed []int
	for total >= cumulative+c.RequiredXP(level) {
		cumulative += c.RequiredXP(level)
		level++
		crossed = append(crossed, level)
	}

	return level, crossed
}
