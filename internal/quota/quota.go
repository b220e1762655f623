package quota

import (
	"time"

	"github.com/sharlabs/shar-backend/pkg/config"
	"github.com/sharlabs/shar-backend/pkg/db/models"
)

// dayKeyLayout is the calendar-day granularity used for quota windows. Day
// boundaries are evaluated in UTC regardless of where the client is.
const dayKeyLayout = "2006-01-02"

// DayKey returns the UTC calendar-day key for the given instant.
func DayKey(now time.Time) string {
	return now.UTC().Format(dayKeyLayout)
}

// LimitFor returns the daily ceiling for the user's tier.
func LimitFor(entitled bool, cfg config.QuotaConfig) int {
	if entitled {
		return cfg.EntitledDailyLimit
	}
	return cfg.BaseDailyLimit
}

// EffectiveCount returns today's consumed count. A stale or missing reset
// marker means the stored counter belongs to a previous day and reads as zero;
// the row itself is only rewritten on the next admission.
func EffectiveCount(profile *models.Profile, today string) int {
	if profile == nil || profile.LastChatReset == nil {
		return 0
	}
	if *profile.LastChatReset != today {
		return 0
	}
	return profile.DailyChatCount
}

// Remaining returns how many admissions are left today, never negative.
func Remaining(profile *models.Profile, today string, limit int) int {
	left := limit - EffectiveCount(profile, today)
	if left < 0 {
		return 0
	}
	return left
}
