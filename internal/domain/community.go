package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/internal/model"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/errorx"
	"github.com/tr10-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type CommunityDomain interface {
	SetCongratsChannel(ctx context.Context, req *model.SetCongratsChannelRequest) (*model.SetCongratsChannelResponse, error)
	SetCongratsTemplate(ctx context.Context, req *model.SetCongratsTemplateRequest) (*model.SetCongratsTemplateResponse, error)

	SetLevelRole(ctx context.Context, req *model.SetLevelRoleRequest) (*model.SetLevelRoleResponse, error)
	RemoveLevelRole(ctx context.Context, req *model.RemoveLevelRoleRequest) (*model.RemoveLevelRoleResponse, error)
	ListLevelRoles(ctx context.Context, req *model.ListLevelRolesRequest) (*model.ListLevelRolesResponse, error)

	UpsertAutoReply(ctx context.Context, req *model.UpsertAutoReplyRequest) (*model.UpsertAutoReplyResponse, error)
	RemoveAutoReply(ctx context.Context, req *model.RemoveAutoReplyRequest) (*model.RemoveAutoReplyResponse, error)
	ToggleAutoReply(ctx context.Context, req *model.ToggleAutoReplyRequest) (*model.ToggleAutoReplyResponse, error)

	// LookupAutoReply matches an inbound message against the community's
	// triggers. An empty reply means no match or replies disabled.
	LookupAutoReply(ctx context.Context, communityID, content string) (string, error)
}

type communityDomain struct {
	communityRepo repository.CommunityRepository
	levelRoleRepo repository.LevelRoleRepository
	autoReplyRepo repository.AutoReplyRepository
}

func NewCommunityDomain(
	communityRepo repository.CommunityRepository,
	levelRoleRepo repository.LevelRoleRepository,
	autoReplyRepo repository.AutoReplyRepository,
) *communityDomain {
	return &communityDomain{
		communityRepo: communityRepo,
		levelRoleRepo: levelRoleRepo,
		autoReplyRepo: autoReplyRepo,
	}
}

func (d *communityDomain) SetCongratsChannel(
	ctx context.Context, req *model.SetCongratsChannelRequest,
) (*model.SetCongratsChannelResponse, error) {
	if _, err := d.communityRepo.GetOrCreateSettings(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community settings: %v", err)
		return nil, errorx.Unknown
	}

	channel := sql.NullString{}
	if req.ChannelID != "" {
		channel = sql.NullString{Valid: true, String: req.ChannelID}
	}

	if err := d.communityRepo.UpdateCongratsChannel(ctx, req.CommunityID, channel); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update congrats channel: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetCongratsChannelResponse{}, nil
}

func (d *communityDomain) SetCongratsTemplate(
	ctx context.Context, req *model.SetCongratsTemplateRequest,
) (*model.SetCongratsTemplateResponse, error) {
	if _, err := d.communityRepo.GetOrCreateSettings(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community settings: %v", err)
		return nil, errorx.Unknown
	}

	template := sql.NullString{}
	if req.Template != "" {
		if !strings.Contains(req.Template, "{user}") {
			return nil, errorx.New(errorx.BadRequest, "Template must contain the {user} placeholder")
		}

		template = sql.NullString{Valid: true, String: req.Template}
	}

	if err := d.communityRepo.UpdateCongratsTemplate(ctx, req.CommunityID, template); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update congrats template: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetCongratsTemplateResponse{}, nil
}

func (d *communityDomain) SetLevelRole(
	ctx context.Context, req *model.SetLevelRoleRequest,
) (*model.SetLevelRoleResponse, error) {
	initial := xcontext.Configs(ctx).Level.InitialLevel
	if req.Level <= initial {
		return nil, errorx.New(errorx.BadRequest, "Level must be greater than %d", initial)
	}

	if req.RoleID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty role")
	}

	err := d.levelRoleRepo.Upsert(ctx, &entity.LevelRole{
		CommunityID: req.CommunityID,
		Level:       req.Level,
		RoleID:      req.RoleID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert level role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.SetLevelRoleResponse{}, nil
}

func (d *communityDomain) RemoveLevelRole(
	ctx context.Context, req *model.RemoveLevelRoleRequest,
) (*model.RemoveLevelRoleResponse, error) {
	if err := d.levelRoleRepo.Delete(ctx, req.CommunityID, req.Level); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete level role: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveLevelRoleResponse{}, nil
}

func (d *communityDomain) ListLevelRoles(
	ctx context.Context, req *model.ListLevelRolesRequest,
) (*model.ListLevelRolesResponse, error) {
	bindings, err := d.levelRoleRepo.GetByCommunity(ctx, req.CommunityID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot list level roles: %v", err)
		return nil, errorx.Unknown
	}

	resp := []model.LevelRoleBinding{}
	for _, b := range bindings {
		resp = append(resp, model.LevelRoleBinding{Level: b.Level, RoleID: b.RoleID})
	}

	return &model.ListLevelRolesResponse{Bindings: resp}, nil
}

func (d *communityDomain) UpsertAutoReply(
	ctx context.Context, req *model.UpsertAutoReplyRequest,
) (*model.UpsertAutoReplyResponse, error) {
	trigger := normalizeTrigger(req.Trigger)
	if trigger == "" || req.Reply == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty trigger or reply")
	}

	err := d.autoReplyRepo.Upsert(ctx, &entity.AutoReply{
		CommunityID: req.CommunityID,
		Trigger:     trigger,
		Reply:       req.Reply,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert auto reply: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertAutoReplyResponse{}, nil
}

func (d *communityDomain) RemoveAutoReply(
	ctx context.Context, req *model.RemoveAutoReplyRequest,
) (*model.RemoveAutoReplyResponse, error) {
	err := d.autoReplyRepo.Delete(ctx, req.CommunityID, normalizeTrigger(req.Trigger))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete auto reply: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveAutoReplyResponse{}, nil
}

func (d *communityDomain) ToggleAutoReply(
	ctx context.Context, req *model.ToggleAutoReplyRequest,
) (*model.ToggleAutoReplyResponse, error) {
	if _, err := d.communityRepo.GetOrCreateSettings(ctx, req.CommunityID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get community settings: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.communityRepo.SetAutoReplyEnabled(ctx, req.CommunityID, req.Enabled); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot toggle auto reply: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ToggleAutoReplyResponse{}, nil
}

func (d *communityDomain) LookupAutoReply(
	ctx context.Context, communityID, content string,
) (string, error) {
	settings, err := d.communityRepo.GetOrCreateSettings(ctx, communityID)
	if err != nil {
		return "", err
	}

	if !settings.AutoReplyEnabled {
		return "", nil
	}

	reply, err := d.autoReplyRepo.Get(ctx, communityID, normalizeTrigger(content))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}

		return "", err
	}

	return reply.Reply, nil
}

// Triggers match the whole message, case-insensitively, ignoring surrounding
// whitespace.
func normalizeTrigger(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
