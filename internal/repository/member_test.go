package repository_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/testutil"
	"gorm.io/gorm"
)

func Test_memberRepository_IncreaseXP(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertMembers(ctx)
	memberRepo := repository.NewMemberRepository()

	err := memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User1, 3)
	require.NoError(t, err)

	err = memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User1, 4)
	require.NoError(t, err)

	err = memberRepo.IncreaseVoiceXP(ctx, testutil.Community1, testutil.User1, 10)
	require.NoError(t, err)

	member, err := memberRepo.Get(ctx, testutil.Community1, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, int64(7), member.TextLifetime)
	require.Equal(t, int64(7), member.TextDay)
	require.Equal(t, int64(7), member.TextWeek)
	require.Equal(t, int64(10), member.VoiceLifetime)
	require.Equal(t, int64(10), member.VoiceDay)
	require.Equal(t, int64(10), member.VoiceWeek)
	require.Equal(t, int64(17), member.TotalXP())

	// Other members are untouched.
	other, err := memberRepo.Get(ctx, testutil.Community1, testutil.User2)
	require.NoError(t, err)
	require.Equal(t, int64(0), other.TotalXP())
}

func Test_memberRepository_IncreaseXP_unknownMember(t *testing.T) {
	ctx := testutil.MockContext()
	memberRepo := repository.NewMemberRepository()

	err := memberRepo.IncreaseTextXP(ctx, testutil.Community1, "nobody", 3)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func Test_memberRepository_AdvanceMessageBucket(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertMembers(ctx)
	memberRepo := repository.NewMemberRepository()

	// The first four messages fill the bucket without crediting.
	for i := 0; i < 4; i++ {
		credited, err := memberRepo.AdvanceMessageBucket(ctx, testutil.Community1, testutil.User1, 5)
		require.NoError(t, err)
		require.False(t, credited)
	}

	// The fifth cycles the bucket and credits.
	credited, err := memberRepo.AdvanceMessageBucket(ctx, testutil.Community1, testutil.User1, 5)
	require.NoError(t, err)
	require.True(t, credited)

	member, err := memberRepo.Get(ctx, testutil.Community1, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 0, member.MessageBucket)
	require.True(t, member.LastMessageAt.Valid)

	// The count starts over after the cycle.
	credited, err = memberRepo.AdvanceMessageBucket(ctx, testutil.Community1, testutil.User1, 5)
	require.NoError(t, err)
	require.False(t, credited)
}

func Test_memberRepository_UpdateLevel_guarded(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertMembers(ctx)
	memberRepo := repository.NewMemberRepository()

	err := memberRepo.UpdateLevel(ctx, testutil.Community1, testutil.User1, 3, 1)
	require.NoError(t, err)

	// A second write guarded by the stale level loses.
	err = memberRepo.UpdateLevel(ctx, testutil.Community1, testutil.User1, 2, 1)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	member, err := memberRepo.Get(ctx, testutil.Community1, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, 3, member.Level)
}

func Test_memberRepository_ResetBuckets(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertMembers(ctx)
	memberRepo := repository.NewMemberRepository()

	require.NoError(t, memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User1, 100))
	require.NoError(t, memberRepo.IncreaseVoiceXP(ctx, testutil.Community1, testutil.User2, 50))

	require.NoError(t, memberRepo.ResetDayBuckets(ctx))

	member, err := memberRepo.Get(ctx, testutil.Community1, testutil.User1)
	require.NoError(t, err)
	require.Equal(t, int64(0), member.TextDay)
	require.Equal(t, int64(100), member.TextWeek)
	require.Equal(t, int64(100), member.TextLifetime)

	require.NoError(t, memberRepo.ResetWeekBuckets(ctx))

	member, err = memberRepo.Get(ctx, testutil.Community1, testutil.User2)
	require.NoError(t, err)
	require.Equal(t, int64(0), member.VoiceDay)
	require.Equal(t, int64(0), member.VoiceWeek)
	require.Equal(t, int64(50), member.VoiceLifetime)
}

func Test_memberRepository_GetTop(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertMembers(ctx)
	memberRepo := repository.NewMemberRepository()

	require.NoError(t, memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User1, 10))
	require.NoError(t, memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User2, 30))
	require.NoError(t, memberRepo.IncreaseVoiceXP(ctx, testutil.Community1, testutil.User3, 20))

	top, err := memberRepo.GetTop(ctx, testutil.Community1, repository.MetricTotal, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	require.Equal(t, testutil.User2, top[0].UserID)
	require.Equal(t, testutil.User3, top[1].UserID)
	require.Equal(t, testutil.User1, top[2].UserID)

	// The text metric ignores voice XP.
	top, err = memberRepo.GetTop(ctx, testutil.Community1, repository.MetricTextLifetime, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	require.Equal(t, testutil.User2, top[0].UserID)

	_, err = memberRepo.GetTop(ctx, testutil.Community1, "bogus", 10)
	require.Error(t, err)
}

func Test_memberRepository_CountWithMoreTotalXP(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.InsertMembers(ctx)
	memberRepo := repository.NewMemberRepository()

	require.NoError(t, memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User1, 10))
	require.NoError(t, memberRepo.IncreaseTextXP(ctx, testutil.Community1, testutil.User2, 30))

	ahead, err := memberRepo.CountWithMoreTotalXP(ctx, testutil.Community1, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), ahead)
}
