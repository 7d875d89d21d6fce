package testutil

import "context"

type MockDiscordClient struct {
	SendMessageFunc func(ctx context.Context, channelID, content string) error
	GrantRoleFunc   func(ctx context.Context, communityID, userID, roleID string) error
	HasRoleFunc     func(ctx context.Context, communityID, userID, roleID string) (bool, error)
	InVoiceFunc     func(ctx context.Context, communityID, userID string) (bool, error)
}

func (m *MockDiscordClient) SendMessage(ctx context.Context, channelID, content string) error {
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, channelID, content)
	}

	return nil
}

func (m *MockDiscordClient) GrantRole(ctx context.Context, communityID, userID, roleID string) error {
	if m.GrantRoleFunc != nil {
		return m.GrantRoleFunc(ctx, communityID, userID, roleID)
	}

	return nil
}

func (m *MockDiscordClient) HasRole(
	ctx context.Context, communityID, userID, roleID string,
) (bool, error) {
	if m.HasRoleFunc != nil {
		return m.HasRoleFunc(ctx, communityID, userID, roleID)
	}

	return false, nil
}

func (m *MockDiscordClient) InVoice(ctx context.Context, communityID, userID string) (bool, error) {
	if m.InVoiceFunc != nil {
		return m.InVoiceFunc(ctx, communityID, userID)
	}

	return false, nil
}
