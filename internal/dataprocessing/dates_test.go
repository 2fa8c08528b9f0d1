package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   time.Time
		wantOK bool
	}{
		{"excel serial", "43905", time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), true},
		{"iso date", "2021-07-12", time.Date(2021, 7, 12, 0, 0, 0, 0, time.UTC), true},
		{"iso timestamp", "2021-07-12 08:30:00", time.Date(2021, 7, 12, 8, 30, 0, 0, time.UTC), true},
		{"day first", "12/07/2021", time.Date(2021, 7, 12, 0, 0, 0, 0, time.UTC), true},
		{"day first with time", "12/07/2021 23:15", time.Date(2021, 7, 12, 23, 15, 0, 0, time.UTC), true},
		{"surrounding spaces", "  2019-01-02 ", time.Date(2019, 1, 2, 0, 0, 0, 0, time.UTC), true},
		{"empty", "", time.Time{}, false},
		{"text", "sem data", time.Time{}, false},
		{"zero serial", "0", time.Time{}, false},
		{"negative serial", "-3", time.Time{}, false},
		{"impossible day", "31/02/2020", time.Time{}, false},
		{"nan", "NaN", time.Time{}, false},
		{"inf", "Inf", time.Time{}, false},
		{"signed inf", "+Inf", time.Time{}, false},
		{"negative inf", "-Inf", time.Time{}, false},
		{"huge serial", "1e300", time.Time{}, false},
		{"past last excel day", "2958466", time.Time{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.in, false)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(got), "got %s want %s", got, tt.want)
			}
		})
	}
}

func TestParseDate1904(t *testing.T) {
	got, ok := ParseDate("0.5", true)
	assert.False(t, ok)
	assert.True(t, got.IsZero())

	got, ok = ParseDate("1", true)
	assert.True(t, ok)
	assert.Equal(t, 1904, got.Year())
}
