// Package route derives travel distances between the located items of a day.
package route

import (
	"math"

	"github.com/rpggio/wanderlist/internal/domain/trip"
)

const (
	earthRadiusKm = 6371.0

	walkingMaxKm      = 2.0
	walkingMinPerKm   = 15.0
	drivingMinPerKm   = 2.5
	drivingOverheadMn = 5
)

// Mode is how a leg is expected to be travelled.
type Mode string

const (
	ModeWalking Mode = "walking"
	ModeDriving Mode = "driving"
)

// Stop is an item with coordinates.
type Stop struct {
	ItemID string      `json:"item_id"`
	Title  string      `json:"title"`
	Time   string      `json:"time"`
	Coords trip.LatLng `json:"coords"`
}

// Leg connects two consecutive stops.
type Leg struct {
	FromItemID string  `json:"from_item_id"`
	ToItemID   string  `json:"to_item_id"`
	DistanceKm float64 `json:"distance_km"`
	Mode       Mode    `json:"mode"`
	Minutes    int     `json:"minutes"`
}

// Route is the path through a day's located items in itinerary order.
type Route struct {
	Stops   []Stop  `json:"stops"`
	Legs    []Leg   `json:"legs"`
	TotalKm float64 `json:"total_km"`
}

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b trip.LatLng) float64 {
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Estimate classifies a leg and estimates its duration in minutes.
func Estimate(km float64) (Mode, int) {
	if km <= walkingMaxKm {
		return ModeWalking, int(math.Ceil(km * walkingMinPerKm))
	}
	return ModeDriving, int(math.Ceil(km*drivingMinPerKm)) + drivingOverheadMn
}

// Plan builds the route through items. Items without coordinates are left out.
func Plan(items []trip.Item) Route {
	r := Route{Stops: []Stop{}, Legs: []Leg{}}
	for _, it := range items {
		ll, ok := it.Location()
		if !ok {
			continue
		}
		r.Stops = append(r.Stops, Stop{ItemID: it.ItemID(), Title: it.Title(), Time: it.SortTime(), Coords: ll})
	}

	for i := 1; i < len(r.Stops); i++ {
		from, to := r.Stops[i-1], r.Stops[i]
		km := Haversine(from.Coords, to.Coords)
		mode, minutes := Estimate(km)
		r.Legs = append(r.Legs, Leg{
			FromItemID: from.ItemID,
			ToItemID:   to.ItemID,
			DistanceKm: km,
			Mode:       mode,
			Minutes:    minutes,
		})
		r.TotalKm += km
	}
	return r
}
