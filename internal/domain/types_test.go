package domain

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewSeriesSortsAndDedups(t *testing.T) {
	bars := []Bar{
		{Symbol: "SPY", Timestamp: day(2024, 1, 3), Close: 102},
		{Symbol: "SPY", Timestamp: day(2024, 1, 2), Close: 100},
		{Symbol: "SPY", Timestamp: day(2024, 1, 3), Close: 103}, // later bar wins
		{Symbol: "SPY", Timestamp: day(2024, 1, 4), Close: 104},
	}

	s, err := NewSeries("SPY", bars)
	if err != nil {
		t.Fatalf("NewSeries returned error: %v", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if s.Closes[0] != 100 || s.Closes[1] != 103 || s.Closes[2] != 104 {
		t.Errorf("Closes = %v, want [100 103 104]", s.Closes)
	}
	if !s.Dates[0].Equal(day(2024, 1, 2)) {
		t.Errorf("first date = %v, want 2024-01-02", s.Dates[0])
	}
}

func TestNewSeriesRejectsNonPositiveClose(t *testing.T) {
	bars := []Bar{
		{Symbol: "SPY", Timestamp: day(2024, 1, 2), Close: 100},
		{Symbol: "SPY", Timestamp: day(2024, 1, 3), Close: 0},
	}
	if _, err := NewSeries("SPY", bars); err == nil {
		t.Fatal("NewSeries should reject a zero close")
	}
}

func TestValidateMisalignedSlices(t *testing.T) {
	s := Series{
		Symbol: "SPY",
		Dates:  []time.Time{day(2024, 1, 2)},
		Closes: []float64{100, 101},
	}
	if err := s.Validate(); err == nil {
		t.Fatal("Validate should reject misaligned dates/closes")
	}
}

func TestValidateDuplicateDates(t *testing.T) {
	s := Series{
		Symbol: "SPY",
		Dates:  []time.Time{day(2024, 1, 2), day(2024, 1, 2)},
		Closes: []float64{100, 101},
	}
	if err := s.Validate(); err == nil {
		t.Fatal("Validate should reject duplicate dates")
	}
}
