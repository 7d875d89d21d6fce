package model

type SetCongratsChannelRequest struct {
	CommunityID string `json:"community_id"`
	ChannelID   string `json:"channel_id"` // empty clears the channel
}

type SetCongratsChannelResponse struct{}

type SetCongratsTemplateRequest struct {
	CommunityID string `json:"community_id"`
	Template    string `json:"template"` // empty restores the default
}

type SetCongratsTemplateResponse struct{}

type SetLevelRoleRequest struct {
	CommunityID string `json:"community_id"`
	Level       int    `json:"level"`
	RoleID      string `json:"role_id"`
}

type SetLevelRoleResponse struct{}

type RemoveLevelRoleRequest struct {
	CommunityID string `json:"community_id"`
	Level       int    `json:"level"`
}

type RemoveLevelRoleResponse struct{}

type LevelRoleBinding struct {
	Level  int    `json:"level"`
	RoleID string `json:"role_id"`
}

type ListLevelRolesRequest struct {
	CommunityID string `json:"community_id" form:"community_id"`
}

type ListLevelRolesResponse struct {
	Bindings []LevelRoleBinding `json:"bindings"`
}

type UpsertAutoReplyRequest struct {
	CommunityID string `json:"community_id"`
	Trigger     string `json:"trigger"`
	Reply       string `json:"reply"`
}

type UpsertAutoReplyResponse struct{}

type RemoveAutoReplyRequest struct {
	CommunityID string `json:"community_id"`
	Trigger     string `json:"trigger"`
}

type RemoveAutoReplyResponse struct{}

type ToggleAutoReplyRequest struct {
	CommunityID string `json:"community_id"`
	Enabled     bool   `json:"enabled"`
}

type ToggleAutoReplyResponse struct{}
