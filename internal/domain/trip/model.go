package trip

import "encoding/json"

// Trip is a shared travel plan. The document id lives in ID and is not
// written into the stored payload.
type Trip struct {
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name"`
	Destination    string    `json:"destination"`
	StartDate      Date      `json:"startDate"`
	EndDate        Date      `json:"endDate"`
	CoverImage     string    `json:"coverImage"`
	CoverImageDark string    `json:"coverImageDark,omitempty"`
	Days           []Day     `json:"days"`
	Expenses       []Expense `json:"expenses"`
	Participants   []string  `json:"participants,omitempty"`
}

// Day returns the day with the given id and its index.
func (t Trip) Day(id string) (Day, int, bool) {
	for i, d := range t.Days {
		if d.ID == id {
			return d, i, true
		}
	}
	return Day{}, -1, false
}

// HasParticipant reports whether userID is listed on the trip.
func (t Trip) HasParticipant(userID string) bool {
	for _, id := range t.Participants {
		if id == userID {
			return true
		}
	}
	return false
}

// Day is one calendar day of a trip.
type Day struct {
	ID      string
	Date    Date
	Label   string
	Items   []Item
	Weather *Weather
}

type dayRecord struct {
	ID      string       `json:"id"`
	Date    Date         `json:"date"`
	Label   string       `json:"dayLabel"`
	Items   []itemRecord `json:"items"`
	Weather *Weather     `json:"weather,omitempty"`
}

func (d Day) MarshalJSON() ([]byte, error) {
	rec := dayRecord{
		ID:      d.ID,
		Date:    d.Date,
		Label:   d.Label,
		Items:   make([]itemRecord, 0, len(d.Items)),
		Weather: d.Weather,
	}
	for _, it := range d.Items {
		rec.Items = append(rec.Items, encodeItem(it))
	}
	return json.Marshal(rec)
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var rec dayRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*d = Day{
		ID:      rec.ID,
		Date:    rec.Date,
		Label:   rec.Label,
		Items:   make([]Item, 0, len(rec.Items)),
		Weather: rec.Weather,
	}
	for _, r := range rec.Items {
		d.Items = append(d.Items, decodeItem(r))
	}
	return nil
}

// Condition is a coarse weather category.
type Condition string

const (
	ConditionSunny  Condition = "sunny"
	ConditionCloudy Condition = "cloudy"
	ConditionRain   Condition = "rain"
	ConditionStorm  Condition = "storm"
)

// Weather is a forecast snapshot cached on a day.
type Weather struct {
	Temperature         int       `json:"temp"`
	Condition           Condition `json:"condition"`
	Icon                string    `json:"icon"`
	PrecipitationChance int       `json:"precipitationChance"`
}

// Expense is a payment recorded in the reporting currency.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	PayerID     string  `json:"payerId"`
	Date        Date    `json:"date"`
}

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
