// Package catalog holds the static fallback dataset served when live
// extraction yields nothing usable.
package catalog

import (
	"time"

	"github.com/use-agent/farescout/extract"
	"github.com/use-agent/farescout/models"
)

// route keys the catalog. The journey date is deliberately not part of the
// key: the canned data is the same whichever day is searched.
type route struct {
	origin      string
	destination string
}

// template is a catalog entry before origin/destination/timestamp injection.
type template struct {
	airline      string
	flightNumber string
	departure    string
	arrival      string
	price        string
}

var routes = map[route][]template{
	{"Bangalore", "Delhi"}: {
		{"IndiGo", "6E-123", "06:30", "09:10", "₹5,450"},
		{"Air India", "AI-504", "07:15", "09:55", "₹6,120"},
		{"SpiceJet", "SG-8256", "08:45", "11:25", "₹4,890"},
		{"GoAir", "G8-456", "09:20", "12:00", "₹5,100"},
		{"Vistara", "UK-834", "10:00", "12:40", "₹7,200"},
		{"AirAsia", "I5-234", "12:15", "14:55", "₹3,450"},
		{"IndiGo", "6E-567", "14:30", "17:10", "₹5,890"},
		{"Air India", "AI-608", "16:00", "18:40", "₹6,450"},
		{"SpiceJet", "SG-8890", "17:45", "20:25", "₹5,200"},
		{"IndiGo", "6E-901", "19:15", "21:55", "₹6,100"},
	},
}

// Lookup returns the canned flights for a route with origin, destination and
// a shared capture timestamp injected. Unknown routes return an empty slice,
// not an error — the API layer decides what "no flights" means to the client.
func Lookup(origin, destination string, capturedAt time.Time) []models.FlightRecord {
	templates, ok := routes[route{origin, destination}]
	if !ok {
		return nil
	}

	stamp := extract.Timestamp(capturedAt)
	records := make([]models.FlightRecord, 0, len(templates))
	for _, t := range templates {
		records = append(records, models.FlightRecord{
			Airline:        t.airline,
			FlightNumber:   t.flightNumber,
			Departure:      t.departure,
			Arrival:        t.arrival,
			Price:          t.price,
			Origin:         origin,
			Destination:    destination,
			SearchDatetime: stamp,
		})
	}
	return records
}
