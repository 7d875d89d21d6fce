package model

type GrantBulkXPRequest struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	Amount      int64  `json:"amount"`
	Source      string `json:"source"` // "text" or "voice"
	ActorID     string `json:"actor_id"`
}

type GrantBulkXPResponse struct {
	Level         int   `json:"level"`
	CrossedLevels []int `json:"crossed_levels,omitempty"`
}

type SetXPRequest struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	TextXP      int64  `json:"text_xp"`
	VoiceXP     int64  `json:"voice_xp"`
	ActorID     string `json:"actor_id"`
}

type SetXPResponse struct {
	Level int `json:"level"`
}

type SetLevelRequest struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	Level       int    `json:"level"`
	ActorID     string `json:"actor_id"`
}

type SetLevelResponse struct{}

type ResetMemberRequest struct {
	CommunityID string `json:"community_id"`
	UserID      string `json:"user_id"`
	ActorID     string `json:"actor_id"`
}

type ResetMemberResponse struct{}

type WipeCommunityRequest struct {
	CommunityID string `json:"community_id"`
	ActorID     string `json:"actor_id"`
}

type WipeCommunityResponse struct{}
