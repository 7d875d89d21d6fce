package repository

import (
	"context"

	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type AutoReplyRepository interface {
	Get(ctx context.Context, communityID, trigger string) (*entity.AutoReply, error)
	GetByCommunity(ctx context.Context, communityID string) ([]entity.AutoReply, error)
	Upsert(ctx context.Context, reply *entity.AutoReply) error
	Delete(ctx context.Context, communityID, trigger string) error
	DeleteByCommunity(ctx context.Context, communityID string) error
}

type autoReplyRepository struct{}

func NewAutoReplyRepository() *autoReplyRepository {
	return &autoReplyRepository{}
}

func (r *autoReplyRepository) Get(
	ctx context.Context, communityID, trigger string,
) (*entity.AutoReply, error) {
	var result entity.AutoReply
	err := xcontext.DB(ctx).
		Where("community_id=? AND trigger_text=?", communityID, trigger).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *autoReplyRepository) GetByCommunity(
	ctx context.Context, communityID string,
) ([]entity.AutoReply, error) {
	var result []entity.AutoReply
	err := xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order("trigger_text ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *autoReplyRepository) Upsert(ctx context.Context, reply *entity.AutoReply) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "community_id"}, {Name: "trigger_text"}},
			DoUpdates: clause.AssignmentColumns([]string{"reply"}),
		}).
		Create(reply).Error
}

func (r *autoReplyRepository) Delete(ctx context.Context, communityID, trigger string) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND trigger_text=?", communityID, trigger).
		Delete(&entity.AutoReply{}).Error
}

func (r *autoReplyRepository) DeleteByCommunity(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.AutoReply{}).Error
}
