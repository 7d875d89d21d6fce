package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Metric names accepted by GetTop.
const (
	MetricTextLifetime  = "text"
	MetricVoiceLifetime = "voice"
	MetricTotal         = "total"
	MetricTextDay       = "text_day"
	MetricVoiceDay      = "voice_day"
	MetricTextWeek      = "text_week"
	MetricVoiceWeek     = "voice_week"
	MetricTotalDay      = "total_day"
	MetricTotalWeek     = "total_week"
)

func orderExprByMetric(metric string) (string, error) {
	switch metric {
	case MetricTextLifetime:
		return "text_lifetime DESC", nil
	case MetricVoiceLifetime:
		return "voice_lifetime DESC", nil
	case MetricTotal:
		return "(text_lifetime + voice_lifetime) DESC", nil
	case MetricTextDay:
		return "text_day DESC", nil
	case MetricVoiceDay:
		return "voice_day DESC", nil
	case MetricTextWeek:
		return "text_week DESC", nil
	case MetricVoiceWeek:
		return "voice_week DESC", nil
	case MetricTotalDay:
		return "(text_day + voice_day) DESC", nil
	case MetricTotalWeek:
		return "(text_week + voice_week) DESC", nil
	}

	return "", fmt.Errorf("invalid metric %s", metric)
}

type MemberRepository interface {
	Get(ctx context.Context, communityID, userID string) (*entity.Member, error)
	GetOrCreate(ctx context.Context, communityID, userID string) (*entity.Member, error)

	// IncreaseTextXP and IncreaseVoiceXP add the amount to the lifetime, day,
	// and week buckets of their source in one atomic UPDATE.
	IncreaseTextXP(ctx context.Context, communityID, userID string, amount int64) error
	IncreaseVoiceXP(ctx context.Context, communityID, userID string, amount int64) error

	// AdvanceMessageBucket atomically counts one message and reports whether
	// the bucket reached the threshold (and was cycled back to zero).
	AdvanceMessageBucket(ctx context.Context, communityID, userID string, threshold int) (bool, error)

	// UpdateLevel writes the resolved level guarded by the level it was
	// resolved from. A concurrent resolver that already advanced the level
	// makes this a no-op returning gorm.ErrRecordNotFound.
	UpdateLevel(ctx context.Context, communityID, userID string, newLevel, fromLevel int) error

	SetLevel(ctx context.Context, communityID, userID string, level int) error
	SetXP(ctx context.Context, communityID, userID string, text, voice int64) error

	ResetDayBuckets(ctx context.Context) error
	ResetWeekBuckets(ctx context.Context) error

	GetTop(ctx context.Context, communityID, metric string, limit int) ([]entity.Member, error)
	CountWithMoreTotalXP(ctx context.Context, communityID string, total int64) (int64, error)
	GetByCommunity(ctx context.Context, communityID string) ([]entity.Member, error)

	Delete(ctx context.Context, communityID, userID string) error
	DeleteByCommunity(ctx context.Context, communityID string) error
}

type memberRepository struct{}

func NewMemberRepository() *memberRepository {
	return &memberRepository{}
}

func (r *memberRepository) Get(ctx context.Context, communityID, userID string) (*entity.Member, error) {
	var result entity.Member
	err := xcontext.DB(ctx).
		Where("community_id=? AND user_id=?", communityID, userID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *memberRepository) GetOrCreate(ctx context.Context, communityID, userID string) (*entity.Member, error) {
	level := xcontext.Configs(ctx).Level.InitialLevel
	err := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.Member{
			CommunityID: communityID,
			UserID:      userID,
			Level:       level,
		}).Error
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, communityID, userID)
}

func (r *memberRepository) IncreaseTextXP(
	ctx context.Context, communityID, userID string, amount int64,
) error {
	return r.increase(ctx, communityID, userID, map[string]any{
		"text_lifetime": gorm.Expr("text_lifetime+?", amount),
		"text_day":      gorm.Expr("text_day+?", amount),
		"text_week":     gorm.Expr("text_week+?", amount),
	})
}

func (r *memberRepository) IncreaseVoiceXP(
	ctx context.Context, communityID, userID string, amount int64,
) error {
	return r.increase(ctx, communityID, userID, map[string]any{
		"voice_lifetime": gorm.Expr("voice_lifetime+?", amount),
		"voice_day":      gorm.Expr("voice_day+?", amount),
		"voice_week":     gorm.Expr("voice_week+?", amount),
	})
}

func (r *memberRepository) increase(
	ctx context.Context, communityID, userID string, updateMap map[string]any,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("community_id=? AND user_id=?", communityID, userID).
		Updates(updateMap)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *memberRepository) AdvanceMessageBucket(
	ctx context.Context, communityID, userID string, threshold int,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("community_id=? AND user_id=?", communityID, userID).
		Updates(map[string]any{
			"message_bucket":  gorm.Expr("message_bucket+1"),
			"last_message_at": time.Now(),
		})

	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected == 0 {
		return false, gorm.ErrRecordNotFound
	}

	// The reset is guarded by the threshold, so if two messages race at the
	// boundary only one of them observes the cycle and credits.
	tx = xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("community_id=? AND user_id=? AND message_bucket >= ?", communityID, userID, threshold).
		Update("message_bucket", 0)

	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *memberRepository) UpdateLevel(
	ctx context.Context, communityID, userID string, newLevel, fromLevel int,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("community_id=? AND user_id=? AND level=?", communityID, userID, fromLevel).
		Update("level", newLevel)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *memberRepository) SetLevel(
	ctx context.Context, communityID, userID string, level int,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("community_id=? AND user_id=?", communityID, userID).
		Update("level", level)

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *memberRepository) SetXP(
	ctx context.Context, communityID, userID string, text, voice int64,
) error {
	tx := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("community_id=? AND user_id=?", communityID, userID).
		Updates(map[string]any{
			"text_lifetime":  text,
			"voice_lifetime": voice,
		})

	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *memberRepository) ResetDayBuckets(ctx context.Context) error {
	return xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("text_day > 0 OR voice_day > 0").
		Updates(map[string]any{"text_day": 0, "voice_day": 0}).Error
}

func (r *memberRepository) ResetWeekBuckets(ctx context.Context) error {
	return xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("text_week > 0 OR voice_week > 0").
		Updates(map[string]any{"text_week": 0, "voice_week": 0}).Error
}

func (r *memberRepository) GetTop(
	ctx context.Context, communityID, metric string, limit int,
) ([]entity.Member, error) {
	orderExpr, err := orderExprByMetric(metric)
	if err != nil {
		return nil, err
	}

	var result []entity.Member
	err = xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Order(orderExpr).
		Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *memberRepository) CountWithMoreTotalXP(
	ctx context.Context, communityID string, total int64,
) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).
		Model(&entity.Member{}).
		Where("community_id=? AND text_lifetime + voice_lifetime > ?", communityID, total).
		Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

func (r *memberRepository) GetByCommunity(
	ctx context.Context, communityID string,
) ([]entity.Member, error) {
	var result []entity.Member
	err := xcontext.DB(ctx).Where("community_id=?", communityID).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *memberRepository) Delete(ctx context.Context, communityID, userID string) error {
	return xcontext.DB(ctx).
		Where("community_id=? AND user_id=?", communityID, userID).
		Delete(&entity.Member{}).Error
}

func (r *memberRepository) DeleteByCommunity(ctx context.Context, communityID string) error {
	return xcontext.DB(ctx).
		Where("community_id=?", communityID).
		Delete(&entity.Member{}).Error
}
