package timezone

import (
	"testing"
	"time"
)

func TestIsValid(t *testing.T) {
	if !IsValid("America/Sao_Paulo") {
		t.Fatal("America/Sao_Paulo should be valid")
	}
	if IsValid("") {
		t.Fatal("empty timezone should be invalid")
	}
	if IsValid("Marte/Olympus") {
		t.Fatal("unknown timezone should be invalid")
	}
}

func TestLocation_FallsBackToDefault(t *testing.T) {
	loc := Location("Marte/Olympus")
	if loc.String() != DefaultTimezone {
		t.Fatalf("fallback location = %s, want %s", loc, DefaultTimezone)
	}
}

func TestShortFormats(t *testing.T) {
	// 17:00 UTC = 14:00 em São Paulo (UTC-3).
	at := time.Date(2026, 8, 31, 17, 0, 0, 0, time.UTC)

	if got := ShortTime(at, DefaultTimezone); got != "14:00" {
		t.Fatalf("ShortTime = %s", got)
	}
	if got := ShortDate(at, DefaultTimezone); got != "31/08/2026" {
		t.Fatalf("ShortDate = %s", got)
	}
	// 31/08/2026 é uma segunda-feira.
	if got := WeekdayTime(at, DefaultTimezone); got != "segunda-feira, 14:00" {
		t.Fatalf("WeekdayTime = %s", got)
	}
	if got := DayKey(at, DefaultTimezone); got != "2026-08-31" {
		t.Fatalf("DayKey = %s", got)
	}
}

func TestDayLabel(t *testing.T) {
	loc := Location(DefaultTimezone)
	today := time.Date(2026, 8, 31, 10, 0, 0, 0, loc)

	cases := []struct {
		name string
		day  time.Time
		want string
	}{
		{name: "same day", day: today.Add(5 * time.Hour), want: "Hoje"},
		{name: "next day", day: today.AddDate(0, 0, 1), want: "Amanhã"},
		{name: "later day capitalized", day: today.AddDate(0, 0, 2), want: "Quarta-feira, 2 de setembro"},
		{name: "across month", day: time.Date(2026, 10, 5, 9, 0, 0, 0, loc), want: "Segunda-feira, 5 de outubro"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DayLabel(tc.day, today, DefaultTimezone); got != tc.want {
				t.Fatalf("DayLabel = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestDayKey_GroupsByLocalDay(t *testing.T) {
	// 02:00 UTC do dia 1 ainda é dia anterior em São Paulo.
	at := time.Date(2026, 9, 1, 2, 0, 0, 0, time.UTC)
	if got := DayKey(at, DefaultTimezone); got != "2026-08-31" {
		t.Fatalf("DayKey = %s, want previous local day", got)
	}
}
