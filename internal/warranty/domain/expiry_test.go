package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(value string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseWarrantyPeriod(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   PeriodOffset
		wantOK bool
	}{
		{"years", "1 year", PeriodOffset{Kind: PeriodYears, Amount: 1}, true},
		{"years plural", "2 years", PeriodOffset{Kind: PeriodYears, Amount: 2}, true},
		{"days", "90 days", PeriodOffset{Kind: PeriodDays, Amount: 90}, true},
		{"weeks convert to days", "2 weeks", PeriodOffset{Kind: PeriodDays, Amount: 14}, true},
		{"months", "6 months", PeriodOffset{Kind: PeriodMonths, Amount: 6}, true},
		{"bare number defaults to years", "3", PeriodOffset{Kind: PeriodYears, Amount: 3}, true},
		{"case insensitive with padding", "  1 YEAR  ", PeriodOffset{Kind: PeriodYears, Amount: 1}, true},
		{"not specified sentinel", "Not specified", PeriodOffset{}, false},
		{"not found sentinel", "not found", PeriodOffset{}, false},
		{"empty", "", PeriodOffset{}, false},
		{"non-numeric value", "abc days", PeriodOffset{}, false},
		{"unsupported unit", "3 decades", PeriodOffset{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseWarrantyPeriod(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestResolveExpiryDate(t *testing.T) {
	t.Run("one year from purchase", func(t *testing.T) {
		expiry, ok := ResolveExpiryDate("2024-01-01", "1 year", "")
		require.True(t, ok)
		assert.Equal(t, date("2025-01-01"), expiry)
	})

	t.Run("90 days from purchase", func(t *testing.T) {
		expiry, ok := ResolveExpiryDate("2024-06-15", "90 days", "")
		require.True(t, ok)
		assert.Equal(t, date("2024-09-13"), expiry)
	})

	t.Run("explicit expiry date is authoritative", func(t *testing.T) {
		expiry, ok := ResolveExpiryDate("2024-01-01", "1 year", "2024-03-31")
		require.True(t, ok)
		assert.Equal(t, date("2024-03-31"), expiry)
	})

	t.Run("explicit expiry skips unparseable period", func(t *testing.T) {
		expiry, ok := ResolveExpiryDate("garbage", "also garbage", "2024-03-31")
		require.True(t, ok)
		assert.Equal(t, date("2024-03-31"), expiry)
	})

	t.Run("month addition preserves native overflow rules", func(t *testing.T) {
		// Jan 31 + 1 month lands past Feb 29 in a leap year
		expiry, ok := ResolveExpiryDate("2024-01-31", "1 month", "")
		require.True(t, ok)
		assert.Equal(t, date("2024-03-02"), expiry)
	})

	t.Run("invalid purchase date", func(t *testing.T) {
		_, ok := ResolveExpiryDate("not-a-date", "1 year", "")
		assert.False(t, ok)
	})

	t.Run("unparseable period", func(t *testing.T) {
		_, ok := ResolveExpiryDate("2024-01-01", "forever", "")
		assert.False(t, ok)
	})

	t.Run("deterministic", func(t *testing.T) {
		first, ok1 := ResolveExpiryDate("2024-06-15", "90 days", "")
		second, ok2 := ResolveExpiryDate("2024-06-15", "90 days", "")
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, first, second)
	})
}

func TestCalculateWarrantyStatus(t *testing.T) {
	warranty := Warranty{
		ID:             "w1",
		ProductName:    "Laptop",
		PurchaseDate:   "2024-01-01",
		WarrantyPeriod: "1 year", // resolves to 2025-01-01
	}

	t.Run("threshold boundary is inclusive", func(t *testing.T) {
		comp := CalculateWarrantyStatus(warranty, 30, date("2024-12-02"))
		require.NotNil(t, comp.DaysRemaining)
		assert.Equal(t, 30, *comp.DaysRemaining)
		assert.Equal(t, StatusExpiringSoon, comp.Status)
	})

	t.Run("one day outside threshold is active", func(t *testing.T) {
		comp := CalculateWarrantyStatus(warranty, 30, date("2024-12-01"))
		require.NotNil(t, comp.DaysRemaining)
		assert.Equal(t, 31, *comp.DaysRemaining)
		assert.Equal(t, StatusActive, comp.Status)
	})

	t.Run("day after expiry is expired", func(t *testing.T) {
		comp := CalculateWarrantyStatus(warranty, 30, date("2025-01-02"))
		require.NotNil(t, comp.DaysRemaining)
		assert.Equal(t, -1, *comp.DaysRemaining)
		assert.Equal(t, StatusExpired, comp.Status)
	})

	t.Run("expiry day itself is expiring soon", func(t *testing.T) {
		comp := CalculateWarrantyStatus(warranty, 30, date("2025-01-01"))
		require.NotNil(t, comp.DaysRemaining)
		assert.Equal(t, 0, *comp.DaysRemaining)
		assert.Equal(t, StatusExpiringSoon, comp.Status)
	})

	t.Run("not specified period is unknown regardless of purchase date", func(t *testing.T) {
		w := Warranty{ProductName: "Toaster", PurchaseDate: "2024-01-01", WarrantyPeriod: "Not specified"}
		comp := CalculateWarrantyStatus(w, 30, date("2024-06-01"))
		assert.Equal(t, StatusUnknown, comp.Status)
		assert.Nil(t, comp.DaysRemaining)
		assert.Nil(t, comp.ExpiryDate)
	})

	t.Run("zero threshold falls back to default of 30", func(t *testing.T) {
		comp := CalculateWarrantyStatus(warranty, 0, date("2024-12-02"))
		assert.Equal(t, StatusExpiringSoon, comp.Status)
	})

	t.Run("idempotent classification", func(t *testing.T) {
		first := CalculateWarrantyStatus(warranty, 30, date("2024-12-02"))
		second := CalculateWarrantyStatus(warranty, 30, date("2024-12-02"))
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, *first.DaysRemaining, *second.DaysRemaining)
	})
}

func TestCollectExpiring(t *testing.T) {
	today := date("2024-12-01")
	warranties := []*Warranty{
		{ID: "a", ProductName: "A", PurchaseDate: "2024-01-01", WarrantyPeriod: "1 year"},     // 31 days, active
		{ID: "b", ProductName: "B", ExpiryDate: "2024-12-11"},                                 // 10 days
		{ID: "c", ProductName: "C", ExpiryDate: "2024-12-06"},                                 // 5 days
		{ID: "d", ProductName: "D", ExpiryDate: "2024-12-11"},                                 // 10 days, tie with b
		{ID: "e", ProductName: "E", PurchaseDate: "2020-01-01", WarrantyPeriod: "1 year"},     // expired
		{ID: "f", ProductName: "F", PurchaseDate: "2024-01-01", WarrantyPeriod: "not found"}, // unknown
	}

	expiring := CollectExpiring(warranties, 30, today)

	require.Len(t, expiring, 3)
	assert.Equal(t, "c", expiring[0].ID)
	// Stable sort: b before d on equal days remaining
	assert.Equal(t, "b", expiring[1].ID)
	assert.Equal(t, "d", expiring[2].ID)
	assert.Equal(t, 5, expiring[0].DaysRemaining)
	assert.Equal(t, 10, expiring[1].DaysRemaining)
}
