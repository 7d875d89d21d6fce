package model

type GetRankRequest struct {
	CommunityID string `json:"community_id" form:"community_id"`
	UserID      string `json:"user_id" form:"user_id"`
}

type GetRankResponse struct {
	TextLifetime  int64 `json:"text_lifetime"`
	VoiceLifetime int64 `json:"voice_lifetime"`
	TextDay       int64 `json:"text_day"`
	VoiceDay      int64 `json:"voice_day"`
	TextWeek      int64 `json:"text_week"`
	VoiceWeek     int64 `json:"voice_week"`

	TotalXP int64 `json:"total_xp"`
	Level   int   `json:"level"`

	// NextLevelXP is the total XP at which the next level is reached,
	// RemainingXP the distance to it.
	NextLevelXP int64 `json:"next_level_xp"`
	RemainingXP int64 `json:"remaining_xp"`

	Position int64 `json:"position"`
}

type GetTopRequest struct {
	CommunityID string `json:"community_id" form:"community_id"`
	Metric      string `json:"metric" form:"metric"`
	Limit       int    `json:"limit" form:"limit"`
}

type TopEntry struct {
	UserID string `json:"user_id"`
	Value  int64  `json:"value"`
	Level  int    `json:"level"`
}

type GetTopResponse struct {
	Entries []TopEntry `json:"entries"`
}

type GetLeaderBoardRequest struct {
	CommunityID string `json:"community_id" form:"community_id"`
	Period      string `json:"period" form:"period"`
	Offset      int    `json:"offset" form:"offset"`
	Limit       int    `json:"limit" form:"limit"`
}

type MemberStatistic struct {
	UserID      string `json:"user_id"`
	Value       int64  `json:"value"`
	CurrentRank int    `json:"current_rank"`
}

type GetLeaderBoardResponse struct {
	LeaderBoard []MemberStatistic `json:"leaderboard"`
}
