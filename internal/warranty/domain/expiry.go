package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultAlertThreshold is the days-before-expiry window used when a tenant
// has not configured their own.
const DefaultAlertThreshold = 30

// Alert threshold bounds accepted from notification settings.
const (
	MinAlertThreshold = 1
	MaxAlertThreshold = 365
)

const dateLayout = "2006-01-02"

// PeriodKind is the calendar unit of a parsed warranty period
type PeriodKind int

const (
	PeriodDays PeriodKind = iota
	PeriodMonths
	PeriodYears
)

// PeriodOffset is a typed calendar offset parsed from a warranty period string
type PeriodOffset struct {
	Kind   PeriodKind
	Amount int
}

// Computation is the derived expiry state of a warranty. ExpiryDate and
// DaysRemaining are nil exactly when Status is unknown.
type Computation struct {
	ExpiryDate    *time.Time
	DaysRemaining *int
	Status        WarrantyStatus
	StatusText    string
}

// ParseWarrantyPeriod parses a free-text duration like "1 year", "90 days" or
// "2 weeks" into a calendar offset. A bare number is assumed to be years.
// "not specified" and "not found" are sentinel values meaning no period.
func ParseWarrantyPeriod(period string) (PeriodOffset, bool) {
	normalized := strings.ToLower(strings.TrimSpace(period))
	if normalized == "" || normalized == "not specified" || normalized == "not found" {
		return PeriodOffset{}, false
	}

	parts := strings.SplitN(normalized, " ", 2)
	value, err := strconv.Atoi(parts[0])
	if err != nil {
		return PeriodOffset{}, false
	}

	unit := "year"
	if len(parts) > 1 {
		unit = strings.TrimSpace(parts[1])
	}

	switch {
	case strings.HasPrefix(unit, "day"):
		return PeriodOffset{Kind: PeriodDays, Amount: value}, true
	case strings.HasPrefix(unit, "week"):
		return PeriodOffset{Kind: PeriodDays, Amount: value * 7}, true
	case strings.HasPrefix(unit, "month"):
		return PeriodOffset{Kind: PeriodMonths, Amount: value}, true
	case strings.HasPrefix(unit, "year"):
		return PeriodOffset{Kind: PeriodYears, Amount: value}, true
	default:
		return PeriodOffset{}, false
	}
}

// parseDate parses a calendar date anchored to midnight local time.
// Parsing "YYYY-MM-DD" in the local zone avoids the day shift that UTC
// conversion would introduce for dates entered by the user.
func parseDate(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.ParseInLocation(dateLayout, s, time.Local); err == nil {
		return t, true
	}
	// Receipt imports occasionally store full timestamps
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return normalizeToMidnight(t.Local()), true
	}
	return time.Time{}, false
}

func normalizeToMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ResolveExpiryDate produces the authoritative expiry date for a warranty.
// An explicit expiry date wins over the period; otherwise the parsed period
// is applied to the purchase date with native calendar-overflow rules.
func ResolveExpiryDate(purchaseDate, warrantyPeriod, explicitExpiry string) (time.Time, bool) {
	if expiry, ok := parseDate(explicitExpiry); ok {
		return expiry, true
	}

	start, ok := parseDate(purchaseDate)
	if !ok {
		return time.Time{}, false
	}

	offset, ok := ParseWarrantyPeriod(warrantyPeriod)
	if !ok {
		return time.Time{}, false
	}

	switch offset.Kind {
	case PeriodDays:
		return start.AddDate(0, 0, offset.Amount), true
	case PeriodMonths:
		return start.AddDate(0, offset.Amount, 0), true
	default:
		return start.AddDate(offset.Amount, 0, 0), true
	}
}

// CalculateWarrantyStatus classifies a warranty against today's date and the
// tenant's alert threshold. Pure: both the alert scheduler and the read API
// use this same function so their classifications can never drift.
func CalculateWarrantyStatus(w Warranty, alertThreshold int, today time.Time) Computation {
	if alertThreshold <= 0 {
		alertThreshold = DefaultAlertThreshold
	}

	expiry, ok := ResolveExpiryDate(w.PurchaseDate, w.WarrantyPeriod, w.ExpiryDate)
	if !ok {
		return Computation{Status: StatusUnknown, StatusText: unknownStatusText(w)}
	}

	todayMidnight := normalizeToMidnight(today)
	daysRemaining := int(math.Ceil(expiry.Sub(todayMidnight).Hours() / 24))

	switch {
	case daysRemaining < 0:
		return Computation{
			ExpiryDate:    &expiry,
			DaysRemaining: &daysRemaining,
			Status:        StatusExpired,
			StatusText:    fmt.Sprintf("Expired on %s", formatDateForDisplay(expiry)),
		}
	case daysRemaining <= alertThreshold:
		return Computation{
			ExpiryDate:    &expiry,
			DaysRemaining: &daysRemaining,
			Status:        StatusExpiringSoon,
			StatusText:    fmt.Sprintf("Expires in %d %s", daysRemaining, pluralDays(daysRemaining)),
		}
	default:
		return Computation{
			ExpiryDate:    &expiry,
			DaysRemaining: &daysRemaining,
			Status:        StatusActive,
			StatusText:    fmt.Sprintf("Expires on %s", formatDateForDisplay(expiry)),
		}
	}
}

// CollectExpiring classifies each warranty and returns those expiring soon,
// stable-sorted ascending by days remaining (ties keep original order).
func CollectExpiring(warranties []*Warranty, alertThreshold int, today time.Time) []ExpiringWarranty {
	var expiring []ExpiringWarranty
	for _, w := range warranties {
		if w == nil {
			continue
		}
		comp := CalculateWarrantyStatus(*w, alertThreshold, today)
		if comp.Status == StatusExpiringSoon && comp.DaysRemaining != nil {
			expiring = append(expiring, ExpiringWarranty{
				Warranty:           *w,
				DaysRemaining:      *comp.DaysRemaining,
				ResolvedExpiryDate: *comp.ExpiryDate,
			})
		}
	}
	sort.SliceStable(expiring, func(i, j int) bool {
		return expiring[i].DaysRemaining < expiring[j].DaysRemaining
	})
	return expiring
}

func unknownStatusText(w Warranty) string {
	period := strings.ToLower(strings.TrimSpace(w.WarrantyPeriod))
	if w.PurchaseDate == "" || period == "" || period == "not specified" || period == "not found" {
		return "Unknown Warranty"
	}
	if _, ok := parseDate(w.PurchaseDate); !ok {
		return "Invalid Purchase Date"
	}
	return "Invalid Warranty Period"
}

func formatDateForDisplay(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
