package repository

import (
	"context"

	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type LevelRoleRepository interface {
	GetExact(ctx context.Context, communityID string, level int) (*entity.LevelRole, error)
	GetByCommunity(ctx context.Context, communityID string) ([]entity.LevelRole, error)
	Upsert(ctx context.Context, binding *entity.LevelRole) error
	Delete(ctx context.Context, communityID string, level int) error
	DeleteByCommunity(ctx context.Context, communityID string) error
}

type levelRoleRepository struct{}

func NewLevelRoleRepository() *levelRoleRepository {
	return &levelRoleRepository{}
}

func (r *levelRoleRepository) GetExact(
	ctx context.Context, communityID string, level int,
) (*entity.LevelRole, error) {
	var result entity.LevelRole
	err := xcontext.DB(ctx).
		Where("community_id=? AND level=?", communityID, level).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *levelRoleRepository) GetByCommunity(
	ctx context.Context, communityID string,
) ([]entity.LevelRole, error) {
	var result []entity.LevelRole
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("level ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *levelRoleRepository) Upsert(ctx context.Context, binding *entity.LevelRole) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_id"}, {Name: "level"}},
			DoUpdates: clause.AssignmentColumns([]string{"role_id"}),
		}).
		Create(binding).Error
}

func (r *levelRoleRepository) Delete(ctx context.Context, communityID string, level int) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND level=?", communityID, level).
		Delete(&entity.LevelRole{}).Error
}

func (r *levelRoleRepository) DeleteByCommunity(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.LevelRole{}).Error
}
