package services

import (
	"testing"
	"time"

	"bettrack/internal/models/db_models"

	"github.com/stretchr/testify/require"
)

func TestPlanCeiling(t *testing.T) {
	require.Equal(t, 30, PlanCeiling(db_models.PlanFree))
	require.Equal(t, 1000, PlanCeiling(db_models.PlanPro))
	require.Equal(t, 10000, PlanCeiling(db_models.PlanProPlus))
	require.Equal(t, 30, PlanCeiling(db_models.Plan("enterprise")))
}

func TestNextMonthStart(t *testing.T) {
	now := time.Date(2025, time.March, 17, 14, 30, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), NextMonthStart(now))

	// December rolls into January of the next year.
	dec := time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC)
	require.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), NextMonthStart(dec))
}

func TestResetIfElapsed(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)

	t.Run("future reset date leaves the counter alone", func(t *testing.T) {
		user := db_models.User{UsageCount: 12, UsageResetDate: now.Add(24 * time.Hour)}
		updated, changed := ResetIfElapsed(user, now)
		require.False(t, changed)
		require.Equal(t, 12, updated.UsageCount)
	})

	t.Run("elapsed reset date zeroes and advances", func(t *testing.T) {
		user := db_models.User{UsageCount: 30, UsageResetDate: now.Add(-time.Hour)}
		updated, changed := ResetIfElapsed(user, now)
		require.True(t, changed)
		require.Equal(t, 0, updated.UsageCount)
		require.Equal(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), updated.UsageResetDate)
	})

	t.Run("reset date exactly now counts as elapsed", func(t *testing.T) {
		user := db_models.User{UsageCount: 5, UsageResetDate: now}
		_, changed := ResetIfElapsed(user, now)
		require.True(t, changed)
	})
}

func TestAdmit(t *testing.T) {
	user := db_models.User{Plan: db_models.PlanFree, UsageCount: 29}
	require.True(t, Admit(user))

	user.UsageCount = 30
	require.False(t, Admit(user))

	user.Plan = db_models.PlanPro
	require.True(t, Admit(user))
}
