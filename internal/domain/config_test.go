package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, DefaultDayStart, cfg.Schedule.DayStart)
	assert.Equal(t, DefaultDayEnd, cfg.Schedule.DayEnd)
	assert.Equal(t, 30*time.Minute, cfg.Schedule.Buffer())
	assert.Equal(t, DefaultEventColor, cfg.Schedule.DefaultColor)
	assert.Equal(t, DefaultLogLevel, cfg.Log.Level)
	assert.False(t, cfg.Schedule.AnchorIncludesCompleted)
	assert.False(t, cfg.Schedule.RejectManualOverlap)
	assert.NoError(t, cfg.Schedule.Validate())
}

func TestScheduleConfig_Validate(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		wantErr    bool
	}{
		{"default", 9, 17, false},
		{"whole day", 0, 24, false},
		{"inverted", 17, 9, true},
		{"empty", 9, 9, true},
		{"past midnight", 9, 25, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ScheduleConfig{DayStart: tt.start, DayEnd: tt.end}.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidWorkingDay)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScheduleConfig_Location(t *testing.T) {
	loc, err := ScheduleConfig{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = ScheduleConfig{Timezone: "UTC"}.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = ScheduleConfig{Timezone: "Nowhere/Atlantis"}.Location()
	assert.Error(t, err)
}

func TestConfigTemplate_MentionsDefaults(t *testing.T) {
	content := ConfigTemplate()
	assert.True(t, strings.Contains(content, "[schedule]"))
	assert.Contains(t, content, "day_start = 9")
	assert.Contains(t, content, DefaultEventColor)
}

func TestSampleSeed(t *testing.T) {
	now := time.Date(2025, 3, 3, 8, 0, 0, 0, time.UTC)
	seed := SampleSeed(now)

	assert.Len(t, seed.Projects, 5)
	assert.Len(t, seed.Tasks, 14)

	scheduled := 0
	for i := range seed.Tasks {
		if seed.Tasks[i].IsScheduled() {
			scheduled++
		}
	}
	assert.Len(t, seed.Events, scheduled)

	for _, e := range seed.Events {
		assert.Equal(t, "event-"+e.TaskID, e.ID)
		assert.NotEmpty(t, e.Color)
	}
}
