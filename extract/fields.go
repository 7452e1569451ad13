// Package extract turns the free text of one page element into normalized
// flight fields. Every extractor is pure and total: it never fails, it only
// falls back to the models.Sentinel value when the text yields nothing.
package extract

import (
	"regexp"
	"strings"

	"github.com/use-agent/farescout/models"
)

// knownAirlines is the closed carrier set, in priority order. Ambiguous text
// that mentions several carriers resolves to the earliest entry.
var knownAirlines = []string{
	"IndiGo",
	"Air India",
	"SpiceJet",
	"GoAir",
	"Vistara",
	"AirAsia",
}

var (
	// flightNumberRe matches an IATA-style designator: a two-character
	// alphanumeric carrier code (6E, AI, G8, I5, ...) followed by 3-4
	// digits, with optional spacing or a hyphen in between.
	flightNumberRe = regexp.MustCompile(`([0-9A-Z]{2})\s*-?\s*([0-9]{3,4})`)

	// priceRe matches a rupee amount with optional thousands separators.
	priceRe = regexp.MustCompile(`₹\s*([\d,]+)`)

	// clockRe matches an H:MM or HH:MM time of day.
	clockRe = regexp.MustCompile(`(\d{1,2}):(\d{2})`)
)

// Airline returns the first known carrier whose name appears in the text
// (case-insensitive substring match), or the sentinel.
func Airline(text string) string {
	lower := strings.ToLower(text)
	for _, airline := range knownAirlines {
		if strings.Contains(lower, strings.ToLower(airline)) {
			return airline
		}
	}
	return models.Sentinel
}

// FlightNumber returns the first flight designator in the text, normalized to
// "<CODE>-<DIGITS>" regardless of how the source spaced it, or the sentinel.
func FlightNumber(text string) string {
	m := flightNumberRe.FindStringSubmatch(text)
	if m == nil {
		return models.Sentinel
	}
	return m[1] + "-" + m[2]
}

// Price returns the first rupee amount in the text as "₹<digits>" with the
// source's thousands separators preserved, or the sentinel.
func Price(text string) string {
	m := priceRe.FindStringSubmatch(text)
	if m == nil {
		return models.Sentinel
	}
	return "₹" + m[1]
}

// DepartureTime returns the first H:MM occurrence in the text, or the sentinel.
func DepartureTime(text string) string {
	m := clockRe.FindString(text)
	if m == "" {
		return models.Sentinel
	}
	return m
}

// ArrivalTime returns the second H:MM occurrence in the text, or the sentinel
// when fewer than two times are present.
//
// This is a positional heuristic: listing pages print departure before
// arrival, so the second time in document order is taken as the arrival.
// Nothing validates that it is actually later than the first.
func ArrivalTime(text string) string {
	matches := clockRe.FindAllString(text, 2)
	if len(matches) < 2 {
		return models.Sentinel
	}
	return matches[1]
}
