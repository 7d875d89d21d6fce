package repository

import (
	"context"
	"database/sql"

	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CommunityRepository interface {
	// GetOrCreateSettings lazily creates the settings row with defaults on
	// the first read of a community.
	GetOrCreateSettings(ctx context.Context, communityID string) (*entity.CommunitySettings, error)

	UpdateCongratsChannel(ctx context.Context, communityID string, channelID sql.NullString) error
	UpdateCongratsTemplate(ctx context.Context, communityID string, template sql.NullString) error
	SetAutoReplyEnabled(ctx context.Context, communityID string, enabled bool) error

	DeleteSettings(ctx context.Context, communityID string) error
}

type communityRepository struct{}

func NewCommunityRepository() *communityRepository {
	return &communityRepository{}
}

func (r *communityRepository) GetOrCreateSettings(
	ctx context.Context, communityID string,
) (*entity.CommunitySettings, error) {
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.CommunitySettings{
			CommunityID:      communityID,
			AutoReplyEnabled: true,
		}).Error
	if err != nil {
		return nil, err
	}

	var result entity.CommunitySettings
	err = xcontext.DB(ctx).Where("community_id=?", communityID).Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *communityRepository) UpdateCongratsChannel(
	ctx context.Context, communityID string, channelID sql.NullString,
) error {
	return xcontext.DB(ctx).
		Model(&entity.CommunitySettings{}).
		Where("community_id=?", communityID).
		Update("congrats_channel_id", channelID).Error
}

func (r *communityRepository) UpdateCongratsTemplate(
	ctx context.Context, communityID string, template sql.NullString,
) error {
	return xcontext.DB(ctx).
		Model(&entity.CommunitySettings{}).
		Where("community_id=?", communityID).
		Update("congrats_template", template).Error
}

func (r *communityRepository) SetAutoReplyEnabled(
	ctx context.Context, communityID string, enabled bool,
) error {
	return xcontext.DB(ctx).
		Model(&entity.CommunitySettings{}).
		Where("community_id=?", communityID).
		Update("auto_reply_enabled", enabled).Error
}

func (r *communityRepository) DeleteSettings(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.CommunitySettings{}).Error
}
