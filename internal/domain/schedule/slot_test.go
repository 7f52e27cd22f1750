//go:build unit

package schedule_test

import (
	"testing"
	"time"

	"tablebook/internal/domain/schedule"
	"tablebook/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWallClock(t *testing.T) {
	cases := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{name: "evening", value: "18:00", want: 1080},
		{name: "midnight", value: "00:00", want: 0},
		{name: "with seconds", value: "18:30:00", want: 1110},
		{name: "hour out of range", value: "25:00", wantErr: true},
		{name: "empty", value: "", wantErr: true},
		{name: "garbage", value: "six pm", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := schedule.ParseWallClock(tc.value)
			if tc.wantErr {
				assert.ErrorIs(t, err, schedule.ErrInvalidWallClock)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDisplayWallClock(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{value: "18:00", want: "6:00 PM"},
		{value: "00:30", want: "12:30 AM"},
		{value: "12:00", want: "12:00 PM"},
		{value: "11:59", want: "11:59 AM"},
		{value: "bogus", want: "bogus"}, // invalid input passes through
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			assert.Equal(t, tc.want, schedule.DisplayWallClock(tc.value))
		})
	}
}

func TestSlotContains(t *testing.T) {
	slot := builder.NewSlotBuilder().WithWindow("18:00", "21:00").Build()

	assert.True(t, slot.Contains(18*60), "start is inclusive")
	assert.True(t, slot.Contains(19*60+30))
	assert.False(t, slot.Contains(21*60), "end is exclusive")
	assert.False(t, slot.Contains(17*60+59))
}

func TestSlotValidate(t *testing.T) {
	t.Run("weekly template", func(t *testing.T) {
		assert.NoError(t, builder.NewSlotBuilder().Build().Validate())
	})

	t.Run("date override", func(t *testing.T) {
		assert.NoError(t, builder.NewSlotBuilder().WithDate("2026-12-24").Build().Validate())
	})

	t.Run("both weekday and date rejected", func(t *testing.T) {
		s := builder.NewSlotBuilder().Build()
		date := "2026-12-24"
		s.Date = &date
		assert.ErrorIs(t, s.Validate(), schedule.ErrInvalidSlot)
	})

	t.Run("neither weekday nor date rejected", func(t *testing.T) {
		s := builder.NewSlotBuilder().Build()
		s.DayOfWeek = nil
		assert.ErrorIs(t, s.Validate(), schedule.ErrInvalidSlot)
	})

	t.Run("weekday out of range rejected", func(t *testing.T) {
		s := builder.NewSlotBuilder().WithWeekday(7).Build()
		assert.ErrorIs(t, s.Validate(), schedule.ErrInvalidSlot)
	})

	t.Run("bad wall clock rejected", func(t *testing.T) {
		s := builder.NewSlotBuilder().WithWindow("18:00", "25:00").Build()
		assert.ErrorIs(t, s.Validate(), schedule.ErrInvalidWallClock)
	})
}

func TestForDate(t *testing.T) {
	// 2026-09-10 is a Thursday.
	const date = "2026-09-10"
	weekday := time.Thursday

	t.Run("weekly templates sorted by start", func(t *testing.T) {
		late := builder.NewSlotBuilder().WithWeekday(4).WithWindow("21:00", "23:00").Build()
		early := builder.NewSlotBuilder().WithWeekday(4).WithWindow("11:00", "14:00").Build()
		otherDay := builder.NewSlotBuilder().WithWeekday(5).Build()

		got := schedule.ForDate([]schedule.Slot{late, early, otherDay}, date, weekday)
		require.Len(t, got, 2)
		assert.Equal(t, "11:00", got[0].Start)
		assert.Equal(t, "21:00", got[1].Start)
	})

	t.Run("date override replaces templates entirely", func(t *testing.T) {
		template := builder.NewSlotBuilder().WithWeekday(4).Build()
		override := builder.NewSlotBuilder().WithDate(date).WithWindow("12:00", "15:00").Build()

		got := schedule.ForDate([]schedule.Slot{template, override}, date, weekday)
		require.Len(t, got, 1)
		assert.Equal(t, "12:00", got[0].Start)
		assert.True(t, got[0].IsOverride())
	})

	t.Run("override for a different date is ignored", func(t *testing.T) {
		template := builder.NewSlotBuilder().WithWeekday(4).Build()
		override := builder.NewSlotBuilder().WithDate("2026-09-11").Build()

		got := schedule.ForDate([]schedule.Slot{template, override}, date, weekday)
		require.Len(t, got, 1)
		assert.False(t, got[0].IsOverride())
	})

	t.Run("inactive slots never apply", func(t *testing.T) {
		inactive := builder.NewSlotBuilder().WithWeekday(4).
			With(func(b *builder.SlotBuilder) { b.Active = false }).Build()

		got := schedule.ForDate([]schedule.Slot{inactive}, date, weekday)
		assert.Empty(t, got)
	})
}
