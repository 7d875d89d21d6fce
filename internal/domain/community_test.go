package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tr10-lab/backend/internal/model"
	"github.com/tr10-lab/backend/internal/repository"
	"github.com/tr10-lab/backend/pkg/errorx"
	"github.com/tr10-lab/backend/pkg/testutil"
)

func newTestCommunityDomain() *communityDomain {
	return NewCommunityDomain(
		repository.NewCommunityRepository(),
		repository.NewLevelRoleRepository(),
		repository.NewAutoReplyRepository(),
	)
}

func Test_communityDomain_LevelRoles(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestCommunityDomain()

	_, err := d.SetLevelRole(ctx, &model.SetLevelRoleRequest{
		CommunityID: testutil.Community1,
		Level:       5,
		RoleID:      "role5",
	})
	require.NoError(t, err)

	// Rebinding the same level replaces the role.
	_, err = d.SetLevelRole(ctx, &model.SetLevelRoleRequest{
		CommunityID: testutil.Community1,
		Level:       5,
		RoleID:      "role5b",
	})
	require.NoError(t, err)

	_, err = d.SetLevelRole(ctx, &model.SetLevelRoleRequest{
		CommunityID: testutil.Community1,
		Level:       10,
		RoleID:      "role10",
	})
	require.NoError(t, err)

	resp, err := d.ListLevelRoles(ctx, &model.ListLevelRolesRequest{
		CommunityID: testutil.Community1,
	})
	require.NoError(t, err)
	require.Equal(t, []model.LevelRoleBinding{
		{Level: 5, RoleID: "role5b"},
		{Level: 10, RoleID: "role10"},
	}, resp.Bindings)

	_, err = d.RemoveLevelRole(ctx, &model.RemoveLevelRoleRequest{
		CommunityID: testutil.Community1,
		Level:       5,
	})
	require.NoError(t, err)

	resp, err = d.ListLevelRoles(ctx, &model.ListLevelRolesRequest{
		CommunityID: testutil.Community1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bindings, 1)
}

func Test_communityDomain_SetLevelRole_rejectsInitialLevel(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestCommunityDomain()

	_, err := d.SetLevelRole(ctx, &model.SetLevelRoleRequest{
		CommunityID: testutil.Community1,
		Level:       1,
		RoleID:      "role1",
	})

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_communityDomain_SetCongratsTemplate_requiresUserPlaceholder(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestCommunityDomain()

	_, err := d.SetCongratsTemplate(ctx, &model.SetCongratsTemplateRequest{
		CommunityID: testutil.Community1,
		Template:    "well done, level {level}",
	})

	var errx errorx.Error
	require.True(t, errors.As(err, &errx))
	require.Equal(t, errorx.BadRequest, errx.Code)

	_, err = d.SetCongratsTemplate(ctx, &model.SetCongratsTemplateRequest{
		CommunityID: testutil.Community1,
		Template:    "well done {user}, level {level}",
	})
	require.NoError(t, err)
}

func Test_communityDomain_LookupAutoReply(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestCommunityDomain()

	_, err := d.UpsertAutoReply(ctx, &model.UpsertAutoReplyRequest{
		CommunityID: testutil.Community1,
		Trigger:     "Hello",
		Reply:       "hey there",
	})
	require.NoError(t, err)

	// Matching ignores case and surrounding whitespace.
	reply, err := d.LookupAutoReply(ctx, testutil.Community1, "  HELLO ")
	require.NoError(t, err)
	require.Equal(t, "hey there", reply)

	reply, err = d.LookupAutoReply(ctx, testutil.Community1, "hello world")
	require.NoError(t, err)
	require.Empty(t, reply)

	// Disabling the feature silences every trigger.
	_, err = d.ToggleAutoReply(ctx, &model.ToggleAutoReplyRequest{
		CommunityID: testutil.Community1,
		Enabled:     false,
	})
	require.NoError(t, err)

	reply, err = d.LookupAutoReply(ctx, testutil.Community1, "hello")
	require.NoError(t, err)
	require.Empty(t, reply)

	// Other communities never see the trigger.
	reply, err = d.LookupAutoReply(ctx, testutil.Community2, "hello")
	require.NoError(t, err)
	require.Empty(t, reply)
}

func Test_communityDomain_RemoveAutoReply(t *testing.T) {
	ctx := testutil.MockContext()
	d := newTestCommunityDomain()

	_, err := d.UpsertAutoReply(ctx, &model.UpsertAutoReplyRequest{
		CommunityID: testutil.Community1,
		Trigger:     "gm",
		Reply:       "gm!",
	})
	require.NoError(t, err)

	_, err = d.RemoveAutoReply(ctx, &model.RemoveAutoReplyRequest{
		CommunityID: testutil.Community1,
		Trigger:     "GM",
	})
	require.NoError(t, err)

	reply, err := d.LookupAutoReply(ctx, testutil.Community1, "gm")
	require.NoError(t, err)
	require.Empty(t, reply)
}
