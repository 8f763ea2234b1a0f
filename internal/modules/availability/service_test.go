// README: Availability index tests.
package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// at builds an instant on a known week: 2026-03-02 is a Monday.
func at(day time.Weekday, hour, minute int) time.Time {
	base := time.Date(2026, 3, 2, hour, minute, 0, 0, time.Local)
	offset := (int(day) - int(time.Monday) + 7) % 7
	return base.AddDate(0, 0, offset)
}

func TestAddSlotValidation(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	cases := []struct {
		name       string
		start, end int
		wantErr    error
	}{
		{"valid", 9 * 60, 17 * 60, nil},
		{"full day", 0, 1440, nil},
		{"negative start", -1, 60, ErrInvalidRange},
		{"end past midnight", 9 * 60, 1441, ErrInvalidRange},
		{"empty window", 600, 600, ErrInvalidRange},
		{"inverted window", 700, 600, ErrInvalidRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slot, err := svc.AddSlot(ctx, "d1", time.Monday, tc.start, tc.end)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, slot.ID)
		})
	}
}

func TestOverlappingSlotsAccepted(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, "d1", time.Monday, 9*60, 17*60)
	require.NoError(t, err)
	_, err = svc.AddSlot(ctx, "d1", time.Monday, 12*60, 20*60)
	require.NoError(t, err)

	slots, err := svc.ListSlots(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, slots, 2)

	// the union of both windows applies
	ok, err := svc.IsAvailable(ctx, "d1", at(time.Monday, 19, 0))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailableWindowBounds(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	_, err := svc.AddSlot(ctx, "d1", time.Monday, 9*60, 17*60)
	require.NoError(t, err)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"window start is inclusive", at(time.Monday, 9, 0), true},
		{"inside window", at(time.Monday, 12, 30), true},
		{"last minute inside", at(time.Monday, 16, 59), true},
		{"window end is exclusive", at(time.Monday, 17, 0), false},
		{"before window", at(time.Monday, 8, 59), false},
		{"same time wrong day", at(time.Tuesday, 12, 0), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.IsAvailable(ctx, "d1", tc.at)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEmptyScheduleMeansAlwaysAvailable(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	for _, day := range []time.Weekday{time.Sunday, time.Wednesday, time.Saturday} {
		ok, err := svc.IsAvailable(ctx, "no-schedule", at(day, 3, 0))
		require.NoError(t, err)
		assert.True(t, ok, "day %s", day)
	}
}

func TestRemoveSlot(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	slot, err := svc.AddSlot(ctx, "d1", time.Monday, 9*60, 17*60)
	require.NoError(t, err)
	require.NoError(t, svc.RemoveSlot(ctx, "d1", slot.ID))

	slots, err := svc.ListSlots(ctx, "d1")
	require.NoError(t, err)
	assert.Empty(t, slots)

	// removing again is a no-op, not an error
	assert.NoError(t, svc.RemoveSlot(ctx, "d1", slot.ID))
}

func TestRemoveSlotOtherDriver(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	slot, err := svc.AddSlot(ctx, "d1", time.Monday, 9*60, 17*60)
	require.NoError(t, err)

	// a different driver cannot delete d1's slot
	require.NoError(t, svc.RemoveSlot(ctx, "d2", slot.ID))
	slots, err := svc.ListSlots(ctx, "d1")
	require.NoError(t, err)
	assert.Len(t, slots, 1)
}

func TestParseDay(t *testing.T) {
	for name, want := range map[string]time.Weekday{
		"MON": time.Monday,
		"mon": time.Monday,
		" SUN ": time.Sunday,
		"Fri": time.Friday,
	} {
		got, err := ParseDay(name)
		require.NoError(t, err, "input %q", name)
		assert.Equal(t, want, got, "input %q", name)
	}

	_, err := ParseDay("MONDAY")
	assert.ErrorIs(t, err, ErrInvalidDay)
	_, err = ParseDay("")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestFormatDayRoundTrip(t *testing.T) {
	for _, name := range []string{"MON", "TUE", "WED", "THU", "FRI", "SAT", "SUN"} {
		day, err := ParseDay(name)
		require.NoError(t, err)
		assert.Equal(t, name, FormatDay(day))
	}
}
