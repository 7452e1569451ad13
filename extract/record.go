package extract

import (
	"time"

	"github.com/use-agent/farescout/models"
)

// Timestamp formats a capture time as UTC ISO-8601 with a trailing Z,
// the wire format of FlightRecord.SearchDatetime.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Records runs all five field extractors over each candidate text and
// assembles the retained FlightRecords. Origin and destination are echoed
// from the search inputs; every record shares the single capture timestamp.
//
// A record is retained only if at least one of departure time or price was
// extracted — candidates with neither are treated as page noise and dropped.
func Records(texts []string, origin, destination string, capturedAt time.Time) []models.FlightRecord {
	stamp := Timestamp(capturedAt)

	var records []models.FlightRecord
	for _, text := range texts {
		rec := models.FlightRecord{
			Airline:        Airline(text),
			FlightNumber:   FlightNumber(text),
			Departure:      DepartureTime(text),
			Arrival:        ArrivalTime(text),
			Price:          Price(text),
			Origin:         origin,
			Destination:    destination,
			SearchDatetime: stamp,
		}
		if Retained(rec) {
			records = append(records, rec)
		}
	}
	return records
}

// Retained reports whether a record carries enough real data to keep:
// at least one of departure time or price must not be the sentinel.
func Retained(rec models.FlightRecord) bool {
	return rec.Departure != models.Sentinel || rec.Price != models.Sentinel
}
