package ledger

import (
	"testing"
	"time"
)

func TestLastResetBoundary(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		resetHour int
		want      time.Time
	}{
		{
			name:      "after reset hour uses today",
			now:       time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
			resetHour: 9,
			want:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "before reset hour uses yesterday",
			now:       time.Date(2026, 3, 10, 8, 59, 59, 0, time.UTC),
			resetHour: 9,
			want:      time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly at reset hour uses today",
			now:       time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
			resetHour: 9,
			want:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "midnight reset",
			now:       time.Date(2026, 3, 10, 0, 0, 1, 0, time.UTC),
			resetHour: 0,
			want:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "non-UTC input is normalized",
			now:       time.Date(2026, 3, 10, 10, 0, 0, 0, time.FixedZone("CET", 3600)),
			resetHour: 9,
			want:      time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name:      "month boundary",
			now:       time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC),
			resetHour: 9,
			want:      time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		if got := lastResetBoundary(tt.now, tt.resetHour); !got.Equal(tt.want) {
			t.Fatalf("%s: lastResetBoundary(%v, %d) = %v, want %v", tt.name, tt.now, tt.resetHour, got, tt.want)
		}
	}
}

func TestClaimedWithin(t *testing.T) {
	boundary := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	if claimedWithin(nil, boundary) {
		t.Fatalf("nil last claim must not count as claimed")
	}

	before := boundary.Add(-time.Second)
	if claimedWithin(&before, boundary) {
		t.Fatalf("claim before the boundary must not count as claimed")
	}

	at := boundary
	if !claimedWithin(&at, boundary) {
		t.Fatalf("claim exactly at the boundary counts as claimed")
	}

	after := boundary.Add(time.Hour)
	if !claimedWithin(&after, boundary) {
		t.Fatalf("claim after the boundary counts as claimed")
	}
}
