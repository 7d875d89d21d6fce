package entity

import (
	"context"

	"github.com/tr10-lab/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Member{},
		&CommunitySettings{},
		&LevelRole{},
		&AutoReply{},
		&ModLog{},
		&ResetState{},
	)
}
