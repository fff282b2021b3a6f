package cli

import (
	"reflect"
	"testing"
	"time"

	"github.com/steadhq/stead/internal/constants"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []time.Weekday
		wantErr bool
	}{
		{
			name:  "short names",
			input: "mon,wed,fri",
			want:  []time.Weekday{time.Monday, time.Wednesday, time.Friday},
		},
		{
			name:  "full names",
			input: "monday,thursday",
			want:  []time.Weekday{time.Monday, time.Thursday},
		},
		{
			name:  "mixed case with spaces",
			input: "Tue, SAT",
			want:  []time.Weekday{time.Tuesday, time.Saturday},
		},
		{
			name:  "numeric days",
			input: "0,6",
			want:  []time.Weekday{time.Sunday, time.Saturday},
		},
		{
			name:  "mixed names and numbers",
			input: "sun,3",
			want:  []time.Weekday{time.Sunday, time.Wednesday},
		},
		{
			name:    "number out of range",
			input:   "7",
			wantErr: true,
		},
		{
			name:    "unknown name",
			input:   "funday",
			wantErr: true,
		},
		{
			name:    "empty entry",
			input:   "mon,,fri",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWeekdays(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseWeekdays(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseWeekdays(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFrequency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    constants.Frequency
		wantErr bool
	}{
		{name: "daily", input: "daily", want: constants.FrequencyDaily},
		{name: "weekdays", input: "weekdays", want: constants.FrequencyWeekdays},
		{name: "weekends", input: "weekends", want: constants.FrequencyWeekends},
		{name: "specific hyphenated", input: "specific-days", want: constants.FrequencySpecificDays},
		{name: "specific underscored", input: "specific_days", want: constants.FrequencySpecificDays},
		{name: "always", input: "always", want: constants.FrequencyAlways},
		{name: "uppercase", input: "DAILY", want: constants.FrequencyDaily},
		{name: "padded", input: " weekdays ", want: constants.FrequencyWeekdays},
		{name: "unknown", input: "fortnightly", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFrequency(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFrequency(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFrequency(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    constants.Rating
		wantErr bool
	}{
		{name: "nailed", input: "nailed", want: constants.RatingNailedIt},
		{name: "nailed-it", input: "nailed-it", want: constants.RatingNailedIt},
		{name: "nailed_it", input: "nailed_it", want: constants.RatingNailedIt},
		{name: "close", input: "close", want: constants.RatingClose},
		{name: "missed", input: "missed", want: constants.RatingMissed},
		{name: "uppercase", input: "MISSED", want: constants.RatingMissed},
		{name: "unknown", input: "great", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRating(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseRating(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRating(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseHorizon(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    constants.Horizon
		wantErr bool
	}{
		{name: "week", input: "week", want: constants.HorizonWeek},
		{name: "month", input: "month", want: constants.HorizonMonth},
		{name: "quarter", input: "quarter", want: constants.HorizonQuarter},
		{name: "life", input: "life", want: constants.HorizonLife},
		{name: "uppercase", input: "Quarter", want: constants.HorizonQuarter},
		{name: "unknown", input: "decade", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHorizon(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHorizon(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHorizon(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRatingMarker(t *testing.T) {
	tests := []struct {
		rating constants.Rating
		want   string
	}{
		{constants.RatingNailedIt, "[x]"},
		{constants.RatingClose, "[~]"},
		{constants.RatingMissed, "[!]"},
		{constants.Rating("bogus"), "[?]"},
	}

	for _, tt := range tests {
		if got := RatingMarker(tt.rating); got != tt.want {
			t.Errorf("RatingMarker(%q) = %q, want %q", tt.rating, got, tt.want)
		}
	}
}
