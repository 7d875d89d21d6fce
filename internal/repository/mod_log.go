package repository

import (
	"context"

	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/pkg/xcontext"
)

type ModLogRepository interface {
	Create(ctx context.Context, log *entity.ModLog) error
	GetByCommunity(ctx context.Context, communityID string, limit int) ([]entity.ModLog, error)
}

type modLogRepository struct{}

func NewModLogRepository() *modLogRepository {
	return &modLogRepository{}
}

func (r *modLogRepository) Create(ctx context.Context, log *entity.ModLog) error {
	return xcontext.DB(ctx).Create(log).Error
}

func (r *modLogRepository) GetByCommunity(
	ctx context.Context, communityID string, limit int,
) ([]entity.ModLog, error) {
	var result []entity.ModLog
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("created_at DESC").
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
