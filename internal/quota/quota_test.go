package quota

import (
	"testing"
	"time"

	"github.com/sharlabs/shar-backend/pkg/config"
	"github.com/sharlabs/shar-backend/pkg/db/models"
)

var testCfg = config.QuotaConfig{BaseDailyLimit: 5, EntitledDailyLimit: 20}

func TestDayKeyUsesUTC(t *testing.T) {
	// 23:30 in Bangkok (UTC+7) is 16:30 UTC the same day; 06:30 in Bangkok is
	// 23:30 UTC the previous day.
	bangkok := time.FixedZone("ICT", 7*60*60)

	late := time.Date(2025, 3, 2, 6, 30, 0, 0, bangkok)
	if got := DayKey(late); got != "2025-03-01" {
		t.Fatalf("DayKey = %q, want 2025-03-01", got)
	}

	evening := time.Date(2025, 3, 2, 23, 30, 0, 0, bangkok)
	if got := DayKey(evening); got != "2025-03-02" {
		t.Fatalf("DayKey = %q, want 2025-03-02", got)
	}
}

func TestLimitForTiers(t *testing.T) {
	if got := LimitFor(false, testCfg); got != 5 {
		t.Fatalf("base limit = %d, want 5", got)
	}
	if got := LimitFor(true, testCfg); got != 20 {
		t.Fatalf("entitled limit = %d, want 20", got)
	}
}

func TestEffectiveCountStaleDayReadsZero(t *testing.T) {
	yesterday := "2025-02-28"
	profile := &models.Profile{DailyChatCount: 5, LastChatReset: &yesterday}

	if got := EffectiveCount(profile, "2025-03-01"); got != 0 {
		t.Fatalf("stale count = %d, want 0", got)
	}
	if got := Remaining(profile, "2025-03-01", 5); got != 5 {
		t.Fatalf("stale remaining = %d, want 5", got)
	}
}

func TestEffectiveCountCurrentDay(t *testing.T) {
	today := "2025-03-01"
	profile := &models.Profile{DailyChatCount: 3, LastChatReset: &today}

	if got := EffectiveCount(profile, today); got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
	if got := Remaining(profile, today, 5); got != 2 {
		t.Fatalf("remaining = %d, want 2", got)
	}
}

func TestRemainingNeverNegative(t *testing.T) {
	// A user downgraded from the entitled tier can hold a count above the
	// base limit for the rest of the day.
	today := "2025-03-01"
	profile := &models.Profile{DailyChatCount: 12, LastChatReset: &today}

	if got := Remaining(profile, today, 5); got != 0 {
		t.Fatalf("remaining = %d, want 0", got)
	}
}

func TestEffectiveCountNilResetReadsZero(t *testing.T) {
	profile := &models.Profile{DailyChatCount: 4}
	if got := EffectiveCount(profile, "2025-03-01"); got != 0 {
		t.Fatalf("count = %d, want 0", got)
	}
}
