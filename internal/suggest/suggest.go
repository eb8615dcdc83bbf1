// Package suggest asks a generative model for itinerary ideas, place details
// and category icons.
package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rpggio/wanderlist/internal/domain/trip"
)

// DefaultIcon is used whenever no icon can be suggested.
const DefaultIcon = "fa-tag"

// ErrUnavailable indicates no AI provider is configured.
var ErrUnavailable = errors.New("ai provider not configured")

// Backend sends one prompt to a model and returns its text.
type Backend interface {
	// Generate returns the model output. With jsonOutput the model is asked
	// for a bare JSON object or array.
	Generate(ctx context.Context, prompt string, jsonOutput bool) (string, error)
	Close() error
}

// Draft is a suggested itinerary entry before it becomes an item.
type Draft struct {
	Time         string   `json:"time"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Type         string   `json:"type"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Rating       *float64 `json:"rating,omitempty"`
	Price        string   `json:"price,omitempty"`
	OpenTime     string   `json:"openTime,omitempty"`
	ImageKeyword string   `json:"imageKeyword,omitempty"`
}

// PlaceDetails is what a place lookup knows about a named place.
type PlaceDetails struct {
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	Rating       *float64 `json:"rating,omitempty"`
	OpenTime     string   `json:"openTime,omitempty"`
	PriceLevel   string   `json:"priceLevel,omitempty"`
	Description  string   `json:"description,omitempty"`
	ImageKeyword string   `json:"imageKeyword,omitempty"`
}

// Client builds prompts for a Backend and parses what comes back.
type Client struct {
	backend Backend
	logger  *slog.Logger
}

// NewClient creates a Client. A nil backend makes every request fail with
// ErrUnavailable.
func NewClient(backend Backend, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{backend: backend, logger: logger}
}

// Enabled reports whether a backend is configured.
func (c *Client) Enabled() bool {
	return c.backend != nil
}

// Close releases the backend.
func (c *Client) Close() error {
	if c.backend == nil {
		return nil
	}
	return c.backend.Close()
}

// Suggest returns 3 to 5 itinerary ideas for prompt. A response that can't be
// parsed yields an empty list; only transport failures are errors.
func (c *Client) Suggest(ctx context.Context, prompt, destination string) ([]Draft, error) {
	if c.backend == nil {
		return nil, ErrUnavailable
	}
	text, err := c.backend.Generate(ctx, suggestionPrompt(prompt, destination), true)
	if err != nil {
		return nil, fmt.Errorf("generating suggestions: %w", err)
	}
	drafts := ParseDrafts(text)
	c.logger.Debug("suggestions generated", "count", len(drafts))
	return drafts, nil
}

// LookupPlace returns coordinates and details for a place. A nil result with
// a nil error means the place wasn't found.
func (c *Client) LookupPlace(ctx context.Context, name, city string) (*PlaceDetails, error) {
	if c.backend == nil {
		return nil, ErrUnavailable
	}
	text, err := c.backend.Generate(ctx, placePrompt(name, city), true)
	if err != nil {
		return nil, fmt.Errorf("looking up place: %w", err)
	}
	return ParsePlace(text), nil
}

// SuggestIcon returns a Font Awesome class for a category, or DefaultIcon.
func (c *Client) SuggestIcon(ctx context.Context, category string) string {
	if c.backend == nil || strings.TrimSpace(category) == "" {
		return DefaultIcon
	}
	text, err := c.backend.Generate(ctx, iconPrompt(category), false)
	if err != nil {
		c.logger.Warn("icon suggestion failed", "category", category, "error", err)
		return DefaultIcon
	}
	return ParseIcon(text)
}

func suggestionPrompt(prompt, destination string) string {
	var b strings.Builder
	b.WriteString("You are a professional travel planner. Suggest 3 to 5 itinerary stops for this request: ")
	fmt.Fprintf(&b, "%q", prompt)
	if destination != "" {
		fmt.Fprintf(&b, " The trip destination is %s.", destination)
	}
	b.WriteString(`
Return JSON only, shaped as {"items": [...]}. Each item has:
"time" (HH:MM, 24h), "location", "description", "type" (one of sightseeing, food, shopping, transport, activity, accommodation),
"lat", "lng", "rating" (0-5.0), "price" ($, $$ or $$$), "openTime", and "imageKeyword".
imageKeyword must be a specific English search phrase, for example "Great Wall of China".`)
	return b.String()
}

func placePrompt(name, city string) string {
	where := fmt.Sprintf("%q", name)
	if city != "" {
		where += " in " + city
	}
	return fmt.Sprintf(`Look up the place %s.
Return JSON only: {"lat": number, "lng": number, "rating": number, "openTime": string, "priceLevel": string, "description": string, "imageKeyword": string}.
imageKeyword must be a specific English image search phrase. If the place does not exist return {}.`, where)
}

func iconPrompt(category string) string {
	return fmt.Sprintf("Single FontAwesome 6 icon class for: %q. Example: 'fa-utensils'. Reply with the class only.", category)
}

var fencePattern = regexp.MustCompile("(?s)^\\s*```[a-zA-Z]*\\s*(.*?)\\s*```\\s*$")

// cleanJSON strips a markdown code fence around a model response.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)
	if m := fencePattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

var clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// ClockTime normalizes a draft time to HH:MM, so "9:00" becomes "09:00".
func ClockTime(s string) (string, bool) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}
	if len(m[1]) == 1 {
		m[1] = "0" + m[1]
	}
	return m[1] + ":" + m[2], true
}

// ParseDrafts reads a JSON array of drafts or an object with an "items"
// array. Entries without a clock time or location are dropped.
func ParseDrafts(text string) []Draft {
	text = cleanJSON(text)
	var drafts []Draft
	if err := json.Unmarshal([]byte(text), &drafts); err != nil {
		var wrapped struct {
			Items []Draft `json:"items"`
		}
		if err := json.Unmarshal([]byte(text), &wrapped); err != nil {
			return []Draft{}
		}
		drafts = wrapped.Items
	}

	out := make([]Draft, 0, len(drafts))
	for _, d := range drafts {
		clock, ok := ClockTime(d.Time)
		if !ok || strings.TrimSpace(d.Location) == "" {
			continue
		}
		d.Time = clock
		out = append(out, d)
	}
	return out
}

// ParsePlace reads a place lookup response. Empty or coordinate-less
// responses mean not found.
func ParsePlace(text string) *PlaceDetails {
	text = cleanJSON(text)
	if text == "" || text == "null" {
		return nil
	}
	var p PlaceDetails
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil
	}
	if p.Lat == 0 && p.Lng == 0 {
		return nil
	}
	return &p
}

var iconPattern = regexp.MustCompile(`fa-[a-z0-9-]+`)

// ParseIcon picks the first icon class out of a model reply.
func ParseIcon(text string) string {
	for _, m := range iconPattern.FindAllString(strings.ToLower(text), -1) {
		// style prefixes such as fa-solid are not icons
		switch m {
		case "fa-solid", "fa-regular", "fa-light", "fa-thin", "fa-duotone", "fa-brands":
			continue
		}
		return m
	}
	return DefaultIcon
}

// ImageURL returns a photo URL for a search keyword.
func ImageURL(keyword string) string {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return ""
	}
	return "https://images.unsplash.com/featured/1200x800/?" + url.QueryEscape(keyword)
}

// ToItems turns drafts into place items with ids derived from now. Drafts
// without a clock time are skipped.
func ToItems(drafts []Draft, now time.Time) []trip.Item {
	items := make([]trip.Item, 0, len(drafts))
	for _, d := range drafts {
		clock, ok := ClockTime(d.Time)
		if !ok {
			continue
		}
		category := strings.TrimSpace(d.Type)
		if category == "" {
			category = trip.CategorySightseeing
		}
		item := trip.PlaceItem{
			ID:        fmt.Sprintf("ai-%d-%d", now.UnixMilli(), len(items)),
			Time:      clock,
			Name:      d.Location,
			Note:      d.Description,
			Category:  category,
			Rating:    d.Rating,
			Price:     d.Price,
			OpenHours: d.OpenTime,
			ImageURL:  ImageURL(d.ImageKeyword),
		}
		if d.Lat != 0 || d.Lng != 0 {
			item.Coords = &trip.LatLng{Lat: d.Lat, Lng: d.Lng}
		}
		items = append(items, item)
	}
	return items
}
