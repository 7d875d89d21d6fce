package testutil

import (
	"context"

	"github.com/tr10-lab/backend/internal/repository"
)

const (
	Community1 = "community1"
	Community2 = "community2"

	User1 = "user1"
	User2 = "user2"
	User3 = "user3"
)

// InsertMembers creates the fixture members of Community1 at the initial
// level with zero XP.
func InsertMembers(ctx context.Context) {
	memberRepo := repository.NewMemberRepository()
	for _, userID := range []string{User1, User2, User3} {
		if _, err := memberRepo.GetOrCreate(ctx, Community1, userID); err != nil {
			panic(err)
		}
	}
}
