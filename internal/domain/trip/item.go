package trip

// Item is one entry of a day's itinerary. It is either a PlaceItem or a
// FlightItem.
type Item interface {
	ItemID() string
	// SortTime is the HH:MM value items are ordered by.
	SortTime() string
	Title() string
	Location() (LatLng, bool)
	isItem()
}

// Category tags for place items. Custom tags are allowed.
const (
	CategorySightseeing   = "sightseeing"
	CategoryFood          = "food"
	CategoryShopping      = "shopping"
	CategoryTransport     = "transport"
	CategoryActivity      = "activity"
	CategoryAccommodation = "accommodation"

	flightType = "flight"
)

// DefaultCategories lists the built-in place categories.
var DefaultCategories = []string{
	CategorySightseeing,
	CategoryFood,
	CategoryShopping,
	CategoryTransport,
	CategoryActivity,
	CategoryAccommodation,
}

// PlaceItem is a visit to a place: a sight, a meal, a hotel and so on.
type PlaceItem struct {
	ID           string
	Time         string
	Name         string
	Note         string
	Category     string
	Rating       *float64
	Price        string
	OpenHours    string
	ImageURL     string
	ImageOffsetY *int
	Coords       *LatLng
}

func (p PlaceItem) ItemID() string   { return p.ID }
func (p PlaceItem) SortTime() string { return p.Time }
func (p PlaceItem) Title() string    { return p.Name }
func (PlaceItem) isItem()            {}

func (p PlaceItem) Location() (LatLng, bool) {
	if p.Coords == nil {
		return LatLng{}, false
	}
	return *p.Coords, true
}

// FlightItem is a departing or arriving flight.
type FlightItem struct {
	ID                  string
	FlightNumber        string
	Origin              string
	Destination         string
	OriginTerminal      string
	DestinationTerminal string
	DepartureTime       string
	ArrivalTime         string
	IsArrival           bool
	Note                string
	Coords              *LatLng
}

func (f FlightItem) ItemID() string { return f.ID }
func (FlightItem) isItem()          {}

// SortTime is the arrival time for arrivals and the departure time
// otherwise, falling back to whichever one is set.
func (f FlightItem) SortTime() string {
	if f.IsArrival {
		if f.ArrivalTime != "" {
			return f.ArrivalTime
		}
		return f.DepartureTime
	}
	if f.DepartureTime != "" {
		return f.DepartureTime
	}
	return f.ArrivalTime
}

func (f FlightItem) Title() string {
	if f.IsArrival {
		return "Arrive " + f.Destination
	}
	return "Depart " + f.Origin
}

func (f FlightItem) Location() (LatLng, bool) {
	if f.Coords == nil {
		return LatLng{}, false
	}
	return *f.Coords, true
}

// itemRecord is the stored shape of an item: one flat record with a type
// discriminator.
type itemRecord struct {
	ID                  string   `json:"id"`
	Time                string   `json:"time"`
	Location            string   `json:"location"`
	Description         string   `json:"description"`
	Type                string   `json:"type"`
	Lat                 *float64 `json:"lat,omitempty"`
	Lng                 *float64 `json:"lng,omitempty"`
	FlightNumber        string   `json:"flightNumber,omitempty"`
	IsArrival           bool     `json:"isArrival,omitempty"`
	Origin              string   `json:"origin,omitempty"`
	Destination         string   `json:"destination,omitempty"`
	OriginTerminal      string   `json:"originTerminal,omitempty"`
	DestinationTerminal string   `json:"destinationTerminal,omitempty"`
	DepartureTime       string   `json:"departureTime,omitempty"`
	ArrivalTime         string   `json:"arrivalTime,omitempty"`
	Rating              *float64 `json:"rating,omitempty"`
	Price               string   `json:"price,omitempty"`
	OpenTime            string   `json:"openTime,omitempty"`
	ImageURL            string   `json:"imageUrl,omitempty"`
	ImageOffsetY        *int     `json:"imageOffsetY,omitempty"`
}

func encodeItem(it Item) itemRecord {
	var rec itemRecord
	switch v := it.(type) {
	case PlaceItem:
		rec = itemRecord{
			ID:           v.ID,
			Time:         v.Time,
			Location:     v.Name,
			Description:  v.Note,
			Type:         v.Category,
			Rating:       v.Rating,
			Price:        v.Price,
			OpenTime:     v.OpenHours,
			ImageURL:     v.ImageURL,
			ImageOffsetY: v.ImageOffsetY,
		}
	case FlightItem:
		rec = itemRecord{
			ID:                  v.ID,
			Time:                v.SortTime(),
			Location:            v.Title(),
			Description:         v.Note,
			Type:                flightType,
			FlightNumber:        v.FlightNumber,
			IsArrival:           v.IsArrival,
			Origin:              v.Origin,
			Destination:         v.Destination,
			OriginTerminal:      v.OriginTerminal,
			DestinationTerminal: v.DestinationTerminal,
			DepartureTime:       v.DepartureTime,
			ArrivalTime:         v.ArrivalTime,
		}
	}
	if ll, ok := it.Location(); ok {
		rec.Lat, rec.Lng = &ll.Lat, &ll.Lng
	}
	return rec
}

func decodeItem(rec itemRecord) Item {
	var coords *LatLng
	// Records written without a lookup carry 0,0; treat those as unlocated.
	if rec.Lat != nil && rec.Lng != nil && (*rec.Lat != 0 || *rec.Lng != 0) {
		coords = &LatLng{Lat: *rec.Lat, Lng: *rec.Lng}
	}
	if rec.Type == flightType {
		f := FlightItem{
			ID:                  rec.ID,
			FlightNumber:        rec.FlightNumber,
			Origin:              rec.Origin,
			Destination:         rec.Destination,
			OriginTerminal:      rec.OriginTerminal,
			DestinationTerminal: rec.DestinationTerminal,
			DepartureTime:       rec.DepartureTime,
			ArrivalTime:         rec.ArrivalTime,
			IsArrival:           rec.IsArrival,
			Note:                rec.Description,
			Coords:              coords,
		}
		if f.DepartureTime == "" && f.ArrivalTime == "" {
			if f.IsArrival {
				f.ArrivalTime = rec.Time
			} else {
				f.DepartureTime = rec.Time
			}
		}
		return f
	}
	return PlaceItem{
		ID:           rec.ID,
		Time:         rec.Time,
		Name:         rec.Location,
		Note:         rec.Description,
		Category:     rec.Type,
		Rating:       rec.Rating,
		Price:        rec.Price,
		OpenHours:    rec.OpenTime,
		ImageURL:     rec.ImageURL,
		ImageOffsetY: rec.ImageOffsetY,
		Coords:       coords,
	}
}
