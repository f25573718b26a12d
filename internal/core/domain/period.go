package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/kz_bookkeeping/internal/apperrors"
)

// PeriodStatus enumerates accounting period lifecycle stages.
type PeriodStatus string

const (
	PeriodOpen       PeriodStatus = "OPEN"
	PeriodSoftClosed PeriodStatus = "SOFT_CLOSED"
	PeriodHardClosed PeriodStatus = "HARD_CLOSED"
)

// Valid reports whether s is a known period status.
func (s PeriodStatus) Valid() bool {
	switch s {
	case PeriodOpen, PeriodSoftClosed, PeriodHardClosed:
		return true
	}
	return false
}

// Period is an accounting period of a tenant. Periods of one tenant never
// overlap and at most one of them is OPEN.
type Period struct {
	PeriodID  string       `json:"periodID"`
	TenantID  string       `json:"tenantID"`
	Name      string       `json:"name"`
	StartDate time.Time    `json:"startDate"` // inclusive
	EndDate   time.Time    `json:"endDate"`   // inclusive
	Status    PeriodStatus `json:"status"`
	ClosedBy  *string      `json:"closedBy,omitempty"`
	ClosedAt  *time.Time   `json:"closedAt,omitempty"`
	AuditFields
}

// CanWrite reports whether postings may land in the period.
func (p Period) CanWrite() bool {
	return p.Status == PeriodOpen
}

// Covers reports whether date falls inside [StartDate, EndDate] at day precision.
func (p Period) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// Overlaps reports whether two periods share at least one day.
func (p Period) Overlaps(other Period) bool {
	return !DateOnly(p.EndDate).Before(DateOnly(other.StartDate)) &&
		!DateOnly(other.EndDate).Before(DateOnly(p.StartDate))
}

// CanTransition reports whether the lifecycle allows moving from one status to another.
func CanTransition(from, to PeriodStatus) bool {
	switch from {
	case PeriodOpen:
		return to == PeriodSoftClosed
	case PeriodSoftClosed:
		return to == PeriodOpen || to == PeriodHardClosed
	}
	// HARD_CLOSED is terminal.
	return false
}

// PlanPeriodTransition computes the period rows that change when the period
// targetID moves to status to. Opening a period soft-closes every other open
// period of the tenant in the same plan, so applying the plan atomically never
// leaves two periods open. A transition to the current status is a no-op,
// except for hard-closed periods which accept nothing.
func PlanPeriodTransition(periods []Period, targetID string, to PeriodStatus, actorID string, at time.Time) ([]Period, error) {
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown period status %q", apperrors.ErrValidation, to)
	}

	idx := -1
	for i := range periods {
		if periods[i].PeriodID == targetID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, targetID)
	}

	target := periods[idx]
	if target.Status == to && to != PeriodHardClosed {
		return nil, nil
	}
	if !CanTransition(target.Status, to) {
		return nil, fmt.Errorf("%w: period %s cannot move from %s to %s", apperrors.ErrConflict, target.Name, target.Status, to)
	}

	var changes []Period
	if to == PeriodOpen {
		for _, p := range periods {
			if p.PeriodID == targetID || p.Status != PeriodOpen {
				continue
			}
			changes = append(changes, closePeriod(p, PeriodSoftClosed, actorID, at))
		}
	}

	if to == PeriodOpen {
		target.Status = PeriodOpen
		target.ClosedBy = nil
		target.ClosedAt = nil
		target.LastUpdatedAt = at
		target.LastUpdatedBy = actorID
	} else {
		target = closePeriod(target, to, actorID, at)
	}
	changes = append(changes, target)
	return changes, nil
}

func closePeriod(p Period, to PeriodStatus, actorID string, at time.Time) Period {
	by := actorID
	when := at
	p.Status = to
	p.ClosedBy = &by
	p.ClosedAt = &when
	p.LastUpdatedAt = at
	p.LastUpdatedBy = actorID
	return p
}

// ValidateNewPeriod checks a candidate period against the tenant's existing
// periods: the range must be well formed, must not overlap, and must be
// adjacent to an existing period so the calendar stays tiled without gaps.
func ValidateNewPeriod(existing []Period, candidate Period) error {
	start, end := DateOnly(candidate.StartDate), DateOnly(candidate.EndDate)
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: period start and end dates are required", apperrors.ErrValidation)
	}
	if start.After(end) {
		return fmt.Errorf("%w: period start %s is after end %s", apperrors.ErrValidation, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	if len(existing) == 0 {
		return nil
	}

	adjacent := false
	for _, p := range existing {
		if p.Overlaps(candidate) {
			return fmt.Errorf("%w: period overlaps %s", apperrors.ErrConflict, p.Name)
		}
		if DateOnly(p.EndDate).AddDate(0, 0, 1).Equal(start) || end.AddDate(0, 0, 1).Equal(DateOnly(p.StartDate)) {
			adjacent = true
		}
	}
	if !adjacent {
		return fmt.Errorf("%w: period %s..%s leaves a gap between existing periods", apperrors.ErrValidation, start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return nil
}

// FiscalYearStart returns the first day of the fiscal year containing date.
func FiscalYearStart(date time.Time, startMonth time.Month) time.Time {
	if startMonth < time.January || startMonth > time.December {
		startMonth = time.January
	}
	d := DateOnly(date)
	year := d.Year()
	if d.Month() < startMonth {
		year--
	}
	return time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC)
}

// FiscalYearOf returns the calendar year in which the fiscal year containing date starts.
func FiscalYearOf(date time.Time, startMonth time.Month) int {
	return FiscalYearStart(date, startMonth).Year()
}

// BuildFiscalYearPeriods returns twelve monthly periods tiling the fiscal year
// that starts in the given year and month. All of them start SOFT_CLOSED.
func BuildFiscalYearPeriods(tenantID string, year int, startMonth time.Month) []Period {
	first := FiscalYearStart(time.Date(year, startMonth, 1, 0, 0, 0, 0, time.UTC), startMonth)
	periods := make([]Period, 0, 12)
	for i := 0; i < 12; i++ {
		start := first.AddDate(0, i, 0)
		end := start.AddDate(0, 1, -1)
		periods = append(periods, Period{
			TenantID:  tenantID,
			Name:      start.Format("2006-01"),
			StartDate: start,
			EndDate:   end,
			Status:    PeriodSoftClosed,
		})
	}
	return periods
}
