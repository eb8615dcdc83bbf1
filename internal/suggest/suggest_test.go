package suggest_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rpggio/wanderlist/internal/domain/trip"
	"github.com/rpggio/wanderlist/internal/suggest"
	"github.com/stretchr/testify/require"
)

type stubBackend struct {
	reply   string
	err     error
	prompts []string
	json    []bool
}

func (s *stubBackend) Generate(_ context.Context, prompt string, jsonOutput bool) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.json = append(s.json, jsonOutput)
	return s.reply, s.err
}

func (s *stubBackend) Close() error { return nil }

func TestSuggest_ParsesWrappedItems(t *testing.T) {
	backend := &stubBackend{reply: `{"items": [
		{"time": "09:00", "location": "Yu Garden", "description": "Classical garden", "type": "sightseeing", "lat": 31.227, "lng": 121.492, "rating": 4.6, "price": "$", "openTime": "09:00-17:00", "imageKeyword": "Yu Garden Shanghai"},
		{"time": "", "location": "No time", "type": "food", "lat": 1, "lng": 1}
	]}`}
	client := suggest.NewClient(backend, nil)

	drafts, err := client.Suggest(context.Background(), "a relaxed morning", "Shanghai")
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	require.Equal(t, "Yu Garden", drafts[0].Location)
	require.NotNil(t, drafts[0].Rating)
	require.Contains(t, backend.prompts[0], "a relaxed morning")
	require.Contains(t, backend.prompts[0], "Shanghai")
	require.True(t, backend.json[0])
}

func TestSuggest_MalformedDegradesToEmpty(t *testing.T) {
	for _, reply := range []string{"", "not json", `{"items": "nope"}`, "```json\n[]\n```"} {
		client := suggest.NewClient(&stubBackend{reply: reply}, nil)
		drafts, err := client.Suggest(context.Background(), "food", "")
		require.NoError(t, err, reply)
		require.NotNil(t, drafts, reply)
		require.Empty(t, drafts, reply)
	}
}

func TestSuggest_TransportErrorAndUnavailable(t *testing.T) {
	client := suggest.NewClient(&stubBackend{err: errors.New("quota")}, nil)
	_, err := client.Suggest(context.Background(), "food", "")
	require.Error(t, err)

	disabled := suggest.NewClient(nil, nil)
	require.False(t, disabled.Enabled())
	_, err = disabled.Suggest(context.Background(), "food", "")
	require.ErrorIs(t, err, suggest.ErrUnavailable)
	_, err = disabled.LookupPlace(context.Background(), "Bund", "")
	require.ErrorIs(t, err, suggest.ErrUnavailable)
	require.Equal(t, suggest.DefaultIcon, disabled.SuggestIcon(context.Background(), "spa"))
}

func TestParseDrafts_FencedArray(t *testing.T) {
	drafts := suggest.ParseDrafts("```json\n[{\"time\":\"10:00\",\"location\":\"Bund\",\"type\":\"sightseeing\",\"lat\":31.24,\"lng\":121.49}]\n```")
	require.Len(t, drafts, 1)
	require.Equal(t, "Bund", drafts[0].Location)
}

func TestLookupPlace(t *testing.T) {
	client := suggest.NewClient(&stubBackend{reply: `{"lat": 31.24, "lng": 121.49, "rating": 4.8, "priceLevel": "$$", "description": "Waterfront"}`}, nil)
	place, err := client.LookupPlace(context.Background(), "The Bund", "Shanghai")
	require.NoError(t, err)
	require.NotNil(t, place)
	require.InDelta(t, 31.24, place.Lat, 1e-9)
	require.Equal(t, "$$", place.PriceLevel)

	notFound := suggest.NewClient(&stubBackend{reply: `{}`}, nil)
	place, err = notFound.LookupPlace(context.Background(), "Nowhere", "")
	require.NoError(t, err)
	require.Nil(t, place)

	failing := suggest.NewClient(&stubBackend{err: errors.New("timeout")}, nil)
	_, err = failing.LookupPlace(context.Background(), "Bund", "")
	require.Error(t, err)
}

func TestSuggestIcon(t *testing.T) {
	client := suggest.NewClient(&stubBackend{reply: "fa-solid fa-spa"}, nil)
	require.Equal(t, "fa-spa", client.SuggestIcon(context.Background(), "Wellness"))

	client = suggest.NewClient(&stubBackend{reply: "I am not sure"}, nil)
	require.Equal(t, suggest.DefaultIcon, client.SuggestIcon(context.Background(), "Wellness"))

	client = suggest.NewClient(&stubBackend{err: errors.New("down")}, nil)
	require.Equal(t, suggest.DefaultIcon, client.SuggestIcon(context.Background(), "Wellness"))
}

func TestParseDrafts_NormalizesClockTimes(t *testing.T) {
	drafts := suggest.ParseDrafts(`[
		{"time": "10:00", "location": "Bund"},
		{"time": "9:00", "location": "Yu Garden"},
		{"time": "morning", "location": "Tea house"},
		{"time": "25:00", "location": "Night market"}
	]`)
	require.Len(t, drafts, 2)
	require.Equal(t, "10:00", drafts[0].Time)
	require.Equal(t, "09:00", drafts[1].Time)
	require.Less(t, drafts[1].Time, drafts[0].Time, "padded times sort as strings")
}

func TestClockTime(t *testing.T) {
	for in, want := range map[string]string{"9:05": "09:05", " 14:30 ": "14:30", "00:00": "00:00", "23:59": "23:59"} {
		got, ok := suggest.ClockTime(in)
		require.True(t, ok, in)
		require.Equal(t, want, got)
	}
	for _, in := range []string{"", "24:00", "9", "9:5", "noon", "09:00 AM"} {
		_, ok := suggest.ClockTime(in)
		require.False(t, ok, in)
	}
}

func TestToItems(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	items := suggest.ToItems([]suggest.Draft{
		{Time: "09:00", Location: "Great Wall", Type: "sightseeing", Lat: 40.43, Lng: 116.57, ImageKeyword: "Great Wall of China"},
		{Time: "evening", Location: "Acrobatics show"},
		{Time: "7:30", Location: "Lunch"},
	}, now)
	require.Len(t, items, 2)

	first := items[0].(trip.PlaceItem)
	require.Equal(t, "ai-1700000000000-0", first.ID)
	require.Equal(t, "https://images.unsplash.com/featured/1200x800/?Great+Wall+of+China", first.ImageURL)
	_, located := first.Location()
	require.True(t, located)

	second := items[1].(trip.PlaceItem)
	require.Equal(t, "ai-1700000000000-1", second.ID)
	require.Equal(t, "07:30", second.Time)
	require.Equal(t, trip.CategorySightseeing, second.Category)
	require.Empty(t, second.ImageURL)
	_, located = second.Location()
	require.False(t, located)
}

func TestNewBackend(t *testing.T) {
	backend, err := suggest.NewBackend(context.Background(), "gemini", "", "", "")
	require.NoError(t, err)
	require.Nil(t, backend)

	backend, err = suggest.NewBackend(context.Background(), "openai", "sk-test", "", "")
	require.NoError(t, err)
	require.IsType(t, &suggest.OpenAIBackend{}, backend)

	_, err = suggest.NewBackend(context.Background(), "llama", "key", "", "")
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "llama"))
}
