package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tr10-lab/backend/pkg/testutil"
)

func Test_VoiceCollector_Tick_creditsConnectedMembers(t *testing.T) {
	ctx := testutil.MockContext()
	crediter := &mockCrediter{}
	discordClient := &testutil.MockDiscordClient{
		InVoiceFunc: func(ctx context.Context, communityID, userID string) (bool, error) {
			return true, nil
		},
	}

	c := NewVoiceCollector(NewPresenceSet(), crediter, discordClient)
	c.HandlePresenceChange(ctx, testutil.Community1, testutil.User1, true)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Tick(ctx))
	}

	require.Equal(t, []int64{10, 10, 10}, crediter.voiceCredits)
}

func Test_VoiceCollector_Tick_dropsDisconnectedMembers(t *testing.T) {
	ctx := testutil.MockContext()
	crediter := &mockCrediter{}

	connected := true
	discordClient := &testutil.MockDiscordClient{
		InVoiceFunc: func(ctx context.Context, communityID, userID string) (bool, error) {
			return connected, nil
		},
	}

	c := NewVoiceCollector(NewPresenceSet(), crediter, discordClient)
	c.HandlePresenceChange(ctx, testutil.Community1, testutil.User1, true)

	require.NoError(t, c.Tick(ctx))
	require.NoError(t, c.Tick(ctx))

	// The platform no longer sees the member in voice, so the stale entry is
	// evicted without credit.
	connected = false
	require.NoError(t, c.Tick(ctx))

	// And it stays evicted on following ticks.
	connected = true
	require.NoError(t, c.Tick(ctx))

	require.Equal(t, []int64{10, 10}, crediter.voiceCredits)
}

func Test_VoiceCollector_Tick_leaveTransitionStopsCredit(t *testing.T) {
	ctx := testutil.MockContext()
	crediter := &mockCrediter{}
	discordClient := &testutil.MockDiscordClient{
		InVoiceFunc: func(ctx context.Context, communityID, userID string) (bool, error) {
			return true, nil
		},
	}

	c := NewVoiceCollector(NewPresenceSet(), crediter, discordClient)
	c.HandlePresenceChange(ctx, testutil.Community1, testutil.User1, true)
	require.NoError(t, c.Tick(ctx))

	c.HandlePresenceChange(ctx, testutil.Community1, testutil.User1, false)
	require.NoError(t, c.Tick(ctx))

	require.Equal(t, []int64{10}, crediter.voiceCredits)
}

func Test_VoiceCollector_Tick_keepsMemberOnCheckError(t *testing.T) {
	ctx := testutil.MockContext()
	crediter := &mockCrediter{}

	fail := true
	discordClient := &testutil.MockDiscordClient{
		InVoiceFunc: func(ctx context.Context, communityID, userID string) (bool, error) {
			if fail {
				return false, errors.New("gateway hiccup")
			}

			return true, nil
		},
	}

	c := NewVoiceCollector(NewPresenceSet(), crediter, discordClient)
	c.HandlePresenceChange(ctx, testutil.Community1, testutil.User1, true)

	// A failing check neither credits nor evicts.
	require.NoError(t, c.Tick(ctx))
	require.Empty(t, crediter.voiceCredits)

	fail = false
	require.NoError(t, c.Tick(ctx))
	require.Equal(t, []int64{10}, crediter.voiceCredits)
}
