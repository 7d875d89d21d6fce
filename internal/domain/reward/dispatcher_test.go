package reward

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tr10-lab/backend/internal/entity"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/testutil"
)

func Test_dispatcher_DispatchLevelUp_grantsEveryCrossedRole(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	levelRoleRepo := repository.NewLevelRoleRepository()

	for level, roleID := range map[int]string{2: "role2", 3: "role3", 5: "role5"} {
		err := levelRoleRepo.Upsert(ctx, &entity.LevelRole{
			CommunityID: testutil.Community1,
			Level:       level,
			RoleID:      roleID,
		})
		require.NoError(t, err)
	}

	granted := []string{}
	discordClient := &testutil.MockDiscordClient{
		GrantRoleFunc: func(ctx context.Context, communityID, userID, roleID string) error {
			granted = append(granted, roleID)
			return nil
		},
	}

	d := NewDispatcher(communityRepo, levelRoleRepo, discordClient)

	// A multi-level jump grants the role of every crossed level, including
	// the skipped ones. Level 4 has no binding and level 5 was not crossed.
	d.DispatchLevelUp(ctx, testutil.Community1, testutil.User1, []int{2, 3, 4})
	require.Equal(t, []string{"role2", "role3"}, granted)
}

func Test_dispatcher_DispatchLevelUp_skipsHeldRoles(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	levelRoleRepo := repository.NewLevelRoleRepository()

	err := levelRoleRepo.Upsert(ctx, &entity.LevelRole{
		CommunityID: testutil.Community1,
		Level:       2,
		RoleID:      "role2",
	})
	require.NoError(t, err)

	granted := 0
	discordClient := &testutil.MockDiscordClient{
		HasRoleFunc: func(ctx context.Context, communityID, userID, roleID string) (bool, error) {
			return true, nil
		},
		GrantRoleFunc: func(ctx context.Context, communityID, userID, roleID string) error {
			granted++
			return nil
		},
	}

	d := NewDispatcher(communityRepo, levelRoleRepo, discordClient)
	d.DispatchLevelUp(ctx, testutil.Community1, testutil.User1, []int{2})
	require.Zero(t, granted)
}

func Test_dispatcher_DispatchLevelUp_announcesFinalLevelOnly(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	levelRoleRepo := repository.NewLevelRoleRepository()

	_, err := communityRepo.GetOrCreateSettings(ctx, testutil.Community1)
	require.NoError(t, err)

	err = communityRepo.UpdateCongratsChannel(ctx, testutil.Community1,
		sql.NullString{Valid: true, String: "channel1"})
	require.NoError(t, err)

	sent := []string{}
	discordClient := &testutil.MockDiscordClient{
		SendMessageFunc: func(ctx context.Context, channelID, content string) error {
			sent = append(sent, content)
			return nil
		},
	}

	d := NewDispatcher(communityRepo, levelRoleRepo, discordClient)
	d.DispatchLevelUp(ctx, testutil.Community1, testutil.User1, []int{2, 3, 4})

	require.Len(t, sent, 1)
	require.Contains(t, sent[0], "<@"+testutil.User1+">")
	require.Contains(t, sent[0], "4")
}

func Test_dispatcher_DispatchLevelUp_noChannelNoMessage(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	levelRoleRepo := repository.NewLevelRoleRepository()

	sent := 0
	discordClient := &testutil.MockDiscordClient{
		SendMessageFunc: func(ctx context.Context, channelID, content string) error {
			sent++
			return nil
		},
	}

	d := NewDispatcher(communityRepo, levelRoleRepo, discordClient)
	d.DispatchLevelUp(ctx, testutil.Community1, testutil.User1, []int{2})
	require.Zero(t, sent)
}

func Test_dispatcher_DispatchLevelUp_customTemplate(t *testing.T) {
	ctx := testutil.MockContext()
	communityRepo := repository.NewCommunityRepository()
	levelRoleRepo := repository.NewLevelRoleRepository()

	_, err := communityRepo.GetOrCreateSettings(ctx, testutil.Community1)
	require.NoError(t, err)

	err = communityRepo.UpdateCongratsChannel(ctx, testutil.Community1,
		sql.NullString{Valid: true, String: "channel1"})
	require.NoError(t, err)

	err = communityRepo.UpdateCongratsTemplate(ctx, testutil.Community1,
		sql.NullString{Valid: true, String: "gg {user}, now {level}"})
	require.NoError(t, err)

	var got string
	discordClient := &testutil.MockDiscordClient{
		SendMessageFunc: func(ctx context.Context, channelID, content string) error {
			got = content
			return nil
		},
	}

	d := NewDispatcher(communityRepo, levelRoleRepo, discordClient)
	d.DispatchLevelUp(ctx, testutil.Community1, testutil.User1, []int{7})
	require.Equal(t, "gg <@"+testutil.User1+">, now 7", got)
}
