package extract

import (
	"testing"

	"github.com/use-agent/farescout/models"
)

func TestAirline(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"exact name", "IndiGo 6E-123 06:30", "IndiGo"},
		{"lowercase", "flight by spicejet departs soon", "SpiceJet"},
		{"uppercase", "VISTARA UK-834", "Vistara"},
		{"embedded", "cheapest airasia fare today", "AirAsia"},
		{"two-word carrier", "Air India AI-504 07:15", "Air India"},
		{"no carrier", "Jet Airways 9W-101 08:00", models.Sentinel},
		{"empty", "", models.Sentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Airline(tt.text); got != tt.want {
				t.Errorf("Airline(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestAirline_OrderResolvesAmbiguity(t *testing.T) {
	// IndiGo precedes AirAsia in the carrier list, so text mentioning both
	// resolves to IndiGo.
	got := Airline("operated by AirAsia in partnership with IndiGo")
	if got != "IndiGo" {
		t.Errorf("ambiguous text resolved to %q, want IndiGo", got)
	}
}

func TestFlightNumber(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"spaced", "IndiGo 6E 123 departs 06:30", "6E-123"},
		{"hyphenated", "IndiGo 6E-123", "6E-123"},
		{"joined", "IndiGo 6E123", "6E-123"},
		{"letters only", "Air India AI-504", "AI-504"},
		{"four digits", "SpiceJet SG 8256", "SG-8256"},
		{"digit-led code", "GoAir G8-456", "G8-456"},
		{"too few digits", "gate B2 12", models.Sentinel},
		{"no designator", "departure 06:30 arrival 09:10", models.Sentinel},
		{"empty", "", models.Sentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlightNumber(tt.text); got != tt.want {
				t.Errorf("FlightNumber(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"with separator", "fare ₹5,450 per adult", "₹5,450"},
		{"spaced symbol", "₹ 6,120", "₹6,120"},
		{"no separator", "₹450", "₹450"},
		{"first of several", "₹3,450 was ₹4,200", "₹3,450"},
		{"no rupee amount", "fare $120", models.Sentinel},
		{"empty", "", models.Sentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Price(tt.text); got != tt.want {
				t.Errorf("Price(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestTimes_SingleOccurrence(t *testing.T) {
	text := "IndiGo 6E-123 departs 06:30 from T1"

	if got := DepartureTime(text); got != "06:30" {
		t.Errorf("DepartureTime = %q, want 06:30", got)
	}
	// Only one time present: arrival has nothing to point at.
	if got := ArrivalTime(text); got != models.Sentinel {
		t.Errorf("ArrivalTime = %q, want sentinel", got)
	}
}

func TestTimes_TwoOccurrences(t *testing.T) {
	text := "IndiGo 6E-123 06:30 → 09:10 ₹5,450"

	if got := DepartureTime(text); got != "06:30" {
		t.Errorf("DepartureTime = %q, want 06:30", got)
	}
	if got := ArrivalTime(text); got != "09:10" {
		t.Errorf("ArrivalTime = %q, want 09:10", got)
	}
}

func TestArrivalTime_SecondOccurrenceVerbatim(t *testing.T) {
	// The heuristic takes the second time in document order even when it is
	// not semantically an arrival (here it is earlier than the first).
	text := "lands 09:10 after departing 06:30"
	if got := ArrivalTime(text); got != "06:30" {
		t.Errorf("ArrivalTime = %q, want 06:30 (second occurrence)", got)
	}
}

func TestTimes_SingleDigitHour(t *testing.T) {
	text := "9:05 then 11:45"
	if got := DepartureTime(text); got != "9:05" {
		t.Errorf("DepartureTime = %q, want 9:05", got)
	}
	if got := ArrivalTime(text); got != "11:45" {
		t.Errorf("ArrivalTime = %q, want 11:45", got)
	}
}

func TestTimes_NoOccurrence(t *testing.T) {
	if got := DepartureTime("non-stop, meal included"); got != models.Sentinel {
		t.Errorf("DepartureTime = %q, want sentinel", got)
	}
	if got := ArrivalTime("non-stop, meal included"); got != models.Sentinel {
		t.Errorf("ArrivalTime = %q, want sentinel", got)
	}
}
