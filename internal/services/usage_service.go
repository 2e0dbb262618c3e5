package services

import (
	"context"
	"time"

	"bettrack/internal/models/db_models"
	"bettrack/internal/repositories"
	"bettrack/pkg/utils"
)

// Monthly extraction ceilings per plan. Anything unrecognized is billed
// as free.
var planCeilings = map[db_models.Plan]int{
	db_models.PlanFree:    30,
	db_models.PlanPro:     1000,
	db_models.PlanProPlus: 10000,
}

func PlanCeiling(plan db_models.Plan) int {
	if limit, ok := planCeilings[plan]; ok {
		return limit
	}
	return planCeilings[db_models.PlanFree]
}

// NextMonthStart returns midnight UTC on the first day of the month
// after now.
func NextMonthStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

// ResetIfElapsed is pure: when the reset date has passed it returns a
// copy with the counter zeroed and the date advanced, and reports
// whether anything changed. The caller persists the result.
func ResetIfElapsed(user db_models.User, now time.Time) (db_models.User, bool) {
	if now.Before(user.UsageResetDate) {
		return user, false
	}
	user.UsageCount = 0
	user.UsageResetDate = NextMonthStart(now)
	return user, true
}

// Admit reports whether one more extraction fits under the plan ceiling.
// Only meaningful after ResetIfElapsed has been applied.
func Admit(user db_models.User) bool {
	return user.UsageCount < PlanCeiling(user.Plan)
}

type UsageLedgerInterface interface {
	// EnsureCurrent applies the monthly reset when elapsed, persisting
	// the rollover before any admission check.
	EnsureCurrent(ctx context.Context, user *db_models.User) error
	Consume(ctx context.Context, user *db_models.User) error
}

type usageLedger struct {
	users repositories.UserRepository
}

func NewUsageLedger(users repositories.UserRepository) UsageLedgerInterface {
	return &usageLedger{users: users}
}

func (l *usageLedger) EnsureCurrent(ctx context.Context, user *db_models.User) error {
	updated, changed := ResetIfElapsed(*user, time.Now())
	if !changed {
		return nil
	}
	if err := l.users.ResetUsage(ctx, user.ID, updated.UsageResetDate); err != nil {
		return utils.ErrDatabaseError
	}
	*user = updated
	return nil
}

func (l *usageLedger) Consume(ctx context.Context, user *db_models.User) error {
	if err := l.users.IncrementUsage(ctx, user.ID); err != nil {
		return utils.ErrDatabaseError
	}
	user.UsageCount++
	return nil
}
