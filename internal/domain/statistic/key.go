package statistic

import (
	"fmt"
	"time"

	"github.com/tr10-lab/backend/pkg/dateutil"
)

const (
	PeriodAll  = "all"
	PeriodDay  = "day"
	PeriodWeek = "week"
)

func redisKeyXPLeaderBoard(communityID, period string, now time.Time) (string, error) {
	switch period {
	case PeriodAll:
		return fmt.Sprintf("%s:xp:all", communityID), nil
	case PeriodDay:
		return fmt.Sprintf("%s:xp:day:%s", communityID, dateutil.DayKey(now)), nil
	case PeriodWeek:
		return fmt.Sprintf("%s:xp:week:%s", communityID, dateutil.WeekKey(now)), nil
	}

	return "", fmt.Errorf("invalid period, expected all, day, or week, but got %s", period)
}
