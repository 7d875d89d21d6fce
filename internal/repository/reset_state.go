package repository

import (
	"context"
	"errors"

	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResetStateRepository interface {
	// GetLastFiredKey returns an empty string when the timer never fired.
	GetLastFiredKey(ctx context.Context, name string) (string, error)
	SetLastFiredKey(ctx context.Context, name, key string) error
}

type resetStateRepository struct{}

func NewResetStateRepository() *resetStateRepository {
	return &resetStateRepository{}
}

func (r *resetStateRepository) GetLastFiredKey(ctx context.Context, name string) (string, error) {
	var result entity.ResetState
	err := xcontext.DB(ctx).Where("name=?", name).Take(&result).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", err
	}

	return result.LastFiredKey, nil
}

func (r *resetStateRepository) SetLastFiredKey(ctx context.Context, name, key string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_fired_key", "updated_at"}),
		}).
		Create(&entity.ResetState{Name: name, LastFiredKey: key}).Error
}
