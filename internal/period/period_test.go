package period

import (
	"testing"
	"time"

	"github.com/steadhq/stead/internal/constants"
)

func TestQuarterKey(t *testing.T) {
	tests := []struct {
		name string
		date string
		want string
	}{
		{
			name: "January is Q1",
			date: "2026-01-15",
			want: "2026-Q1",
		},
		{
			name: "March is Q1",
			date: "2026-03-31",
			want: "2026-Q1",
		},
		{
			name: "April is Q2",
			date: "2026-04-01",
			want: "2026-Q2",
		},
		{
			name: "September is Q3",
			date: "2026-09-30",
			want: "2026-Q3",
		},
		{
			name: "December is Q4",
			date: "2026-12-25",
			want: "2026-Q4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := time.Parse(constants.DateFormat, tt.date)
			if err != nil {
				t.Fatalf("failed to parse test date: %v", err)
			}
			if got := QuarterKey(d); got != tt.want {
				t.Errorf("QuarterKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestQuarterRange(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{
			name:      "Q1 spans Jan 1 to Mar 31",
			key:       "2026-Q1",
			wantStart: "2026-01-01",
			wantEnd:   "2026-03-31",
		},
		{
			name:      "Q2 spans Apr 1 to Jun 30",
			key:       "2026-Q2",
			wantStart: "2026-04-01",
			wantEnd:   "2026-06-30",
		},
		{
			name:      "Q4 spans Oct 1 to Dec 31",
			key:       "2026-Q4",
			wantStart: "2026-10-01",
			wantEnd:   "2026-12-31",
		},
		{
			name:    "quarter out of range",
			key:     "2026-Q5",
			wantErr: true,
		},
		{
			name:    "malformed key",
			key:     "Q1-2026",
			wantErr: true,
		},
		{
			name:    "empty key",
			key:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := QuarterRange(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("QuarterRange() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got := start.Format(constants.DateFormat); got != tt.wantStart {
				t.Errorf("QuarterRange() start = %v, want %v", got, tt.wantStart)
			}
			if got := end.Format(constants.DateFormat); got != tt.wantEnd {
				t.Errorf("QuarterRange() end = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestMonthRange(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{
			name:      "31-day month",
			key:       "2026-01",
			wantStart: "2026-01-01",
			wantEnd:   "2026-01-31",
		},
		{
			name:      "February non-leap",
			key:       "2026-02",
			wantStart: "2026-02-01",
			wantEnd:   "2026-02-28",
		},
		{
			name:      "February leap year",
			key:       "2028-02",
			wantStart: "2028-02-01",
			wantEnd:   "2028-02-29",
		},
		{
			name:    "malformed key",
			key:     "January 2026",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := MonthRange(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("MonthRange() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got := start.Format(constants.DateFormat); got != tt.wantStart {
				t.Errorf("MonthRange() start = %v, want %v", got, tt.wantStart)
			}
			if got := end.Format(constants.DateFormat); got != tt.wantEnd {
				t.Errorf("MonthRange() end = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}

func TestWeekRange(t *testing.T) {
	tests := []struct {
		name      string
		key       string
		wantStart string
		wantEnd   string
		wantErr   bool
	}{
		{
			name:      "mid-year week starts Monday",
			key:       "2026-W03",
			wantStart: "2026-01-12",
			wantEnd:   "2026-01-18",
		},
		{
			name:      "week 1 can start in prior year",
			key:       "2026-W01",
			wantStart: "2025-12-29",
			wantEnd:   "2026-01-04",
		},
		{
			name:    "week out of range",
			key:     "2026-W54",
			wantErr: true,
		},
		{
			name:      "week 53 exists in long ISO years",
			key:       "2026-W53",
			wantStart: "2026-12-28",
			wantEnd:   "2027-01-03",
		},
		{
			name:    "week 53 rejected in short ISO years",
			key:     "2025-W53",
			wantErr: true,
		},
		{
			name:    "malformed key",
			key:     "2026-3",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end, err := WeekRange(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("WeekRange() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got := start.Format(constants.DateFormat); got != tt.wantStart {
				t.Errorf("WeekRange() start = %v, want %v", got, tt.wantStart)
			}
			if got := end.Format(constants.DateFormat); got != tt.wantEnd {
				t.Errorf("WeekRange() end = %v, want %v", got, tt.wantEnd)
			}
			if start.Weekday() != time.Monday {
				t.Errorf("WeekRange() start weekday = %v, want Monday", start.Weekday())
			}
		})
	}
}

func TestWeekKeyRoundTrip(t *testing.T) {
	// Every day of a week must map back to the week that contains it.
	d, _ := time.Parse(constants.DateFormat, "2026-01-12")
	key := WeekKey(d)
	start, end, err := WeekRange(key)
	if err != nil {
		t.Fatalf("WeekRange() error = %v", err)
	}
	for cur := start; !cur.After(end); cur = cur.AddDate(0, 0, 1) {
		if got := WeekKey(cur); got != key {
			t.Errorf("WeekKey(%s) = %v, want %v", cur.Format(constants.DateFormat), got, key)
		}
	}
}

func TestKeyFor(t *testing.T) {
	d, _ := time.Parse(constants.DateFormat, "2026-02-14")

	tests := []struct {
		name    string
		horizon constants.Horizon
		want    string
		wantErr bool
	}{
		{
			name:    "week horizon",
			horizon: constants.HorizonWeek,
			want:    "2026-W07",
		},
		{
			name:    "month horizon",
			horizon: constants.HorizonMonth,
			want:    "2026-02",
		},
		{
			name:    "quarter horizon",
			horizon: constants.HorizonQuarter,
			want:    "2026-Q1",
		},
		{
			name:    "life horizon",
			horizon: constants.HorizonLife,
			want:    LifeKey,
		},
		{
			name:    "unknown horizon",
			horizon: constants.Horizon("decade"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeyFor(tt.horizon, d)
			if (err != nil) != tt.wantErr {
				t.Errorf("KeyFor() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("KeyFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRangeForLifeIsUnbounded(t *testing.T) {
	_, _, err := RangeFor(constants.HorizonLife, LifeKey)
	if err != ErrUnbounded {
		t.Errorf("RangeFor(life) error = %v, want ErrUnbounded", err)
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		horizon constants.Horizon
		key     string
		wantErr bool
	}{
		{
			name:    "valid week key",
			horizon: constants.HorizonWeek,
			key:     "2026-W10",
		},
		{
			name:    "valid quarter key",
			horizon: constants.HorizonQuarter,
			key:     "2026-Q3",
		},
		{
			name:    "life key for life horizon",
			horizon: constants.HorizonLife,
			key:     LifeKey,
		},
		{
			name:    "quarter key for week horizon",
			horizon: constants.HorizonWeek,
			key:     "2026-Q1",
			wantErr: true,
		},
		{
			name:    "arbitrary key for life horizon",
			horizon: constants.HorizonLife,
			key:     "2026-Q1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.horizon, tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
