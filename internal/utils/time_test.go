package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{
			name:     "empty string returns local",
			timezone: "",
			wantErr:  false,
		},
		{
			name:     "Local returns local",
			timezone: "Local",
			wantErr:  false,
		},
		{
			name:     "valid timezone UTC",
			timezone: "UTC",
			wantErr:  false,
		},
		{
			name:     "valid timezone America/New_York",
			timezone: "America/New_York",
			wantErr:  false,
		},
		{
			name:     "invalid timezone",
			timezone: "Invalid/Timezone",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestParseDateInLocation(t *testing.T) {
	utc, _ := time.LoadLocation("UTC")

	tests := []struct {
		name      string
		dateStr   string
		wantYear  int
		wantMonth time.Month
		wantDay   int
		wantErr   bool
	}{
		{
			name:      "valid date",
			dateStr:   "2026-01-15",
			wantYear:  2026,
			wantMonth: time.January,
			wantDay:   15,
		},
		{
			name:    "invalid format",
			dateStr: "2026/01/15",
			wantErr: true,
		},
		{
			name:    "invalid date",
			dateStr: "2026-13-01",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDateInLocation(tt.dateStr, utc)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateInLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("ParseDateInLocation() = %v, want %04d-%02d-%02d", got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
				t.Errorf("ParseDateInLocation() time = %02d:%02d:%02d, want 00:00:00", got.Hour(), got.Minute(), got.Second())
			}
		})
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{
			name:     "empty string is valid",
			timezone: "",
			want:     true,
		},
		{
			name:     "Local is valid",
			timezone: "Local",
			want:     true,
		},
		{
			name:     "UTC is valid",
			timezone: "UTC",
			want:     true,
		},
		{
			name:     "Invalid/Timezone is invalid",
			timezone: "Invalid/Timezone",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateTimezone(tt.timezone); got != tt.want {
				t.Errorf("ValidateTimezone() = %v, want %v", got, tt.want)
			}
		})
	}
}
