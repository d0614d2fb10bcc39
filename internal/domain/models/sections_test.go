package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSectionVisibility(t *testing.T) {
	v := DefaultSectionVisibility()

	require.Len(t, v, 11)
	for _, name := range SectionNames() {
		assert.True(t, v[name], "section %s should default visible", name)
	}
}

func TestSectionVisibility_EnsureComplete(t *testing.T) {
	v := SectionVisibility{SectionMenu: false}
	v.EnsureComplete()

	require.Len(t, v, 11)
	assert.False(t, v[SectionMenu], "explicit flag survives backfill")
	assert.True(t, v[SectionHero])
}

func TestSectionVisibility_IsVisible_MissingKeyDefaultsTrue(t *testing.T) {
	v := SectionVisibility{SectionMenu: false}

	assert.False(t, v.IsVisible(SectionMenu))
	assert.True(t, v.IsVisible(SectionHero))
}

func TestDefaultSectionContent(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	c := DefaultSectionContent("Anna & Ivan", "Riverside Manor", date)

	assert.Equal(t, "Anna & Ivan", c.Hero.Title)
	assert.Equal(t, "September 12, 2026", c.Hero.Subtitle)
	assert.Equal(t, "Riverside Manor", c.CeremonyVenue.Name)

	require.Len(t, c.Timeline.Items, 8)
	titles := make([]string, 0, 8)
	for _, item := range c.Timeline.Items {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{
		"Welcome Toast", "Ceremony", "Lunch", "Cake Cutting",
		"First Dance", "Cocktail Hour", "Dinner", "Fireworks",
	}, titles)

	for _, name := range SectionNames() {
		assert.NotNil(t, c.Section(name), "section %s", name)
	}
}

func TestSectionContent_Section_UnknownName(t *testing.T) {
	c := DefaultSectionContent("t", "v", time.Time{})
	assert.Nil(t, c.Section("guestbook"))
}

func TestSectionContent_MergeViaSectionPointer(t *testing.T) {
	c := DefaultSectionContent("Wedding", "Hall", time.Time{})
	c.Hero.ImageURL = "/old.jpg"

	require.NoError(t, json.Unmarshal([]byte(`{"subtitle":"June 2026"}`), c.Section(SectionHero)))

	assert.Equal(t, "Wedding", c.Hero.Title, "absent fields stay put")
	assert.Equal(t, "June 2026", c.Hero.Subtitle)
	assert.Equal(t, "/old.jpg", c.Hero.ImageURL)
}

func TestEvent_Normalize(t *testing.T) {
	date := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	t.Run("empty row gets full defaults", func(t *testing.T) {
		e := Event{Title: "T", Venue: "V", EventDate: date}
		e.Normalize()

		require.Len(t, e.Visibility, 11)
		assert.Equal(t, "T", e.Content.Hero.Title)
		assert.Equal(t, "V", e.Content.CeremonyVenue.Name)
	})

	t.Run("settings fallback wins over defaults", func(t *testing.T) {
		e := Event{
			Title: "T",
			Settings: EventSettings{
				SectionVisibility: SectionVisibility{SectionMenu: false},
				SectionContent: &SectionContent{
					Hero: &HeroContent{Title: "Legacy Hero"},
				},
			},
		}
		e.Normalize()

		assert.False(t, e.Visibility[SectionMenu])
		assert.True(t, e.Visibility[SectionHero], "missing keys still backfilled")
		assert.Equal(t, "Legacy Hero", e.Content.Hero.Title)
		assert.NotNil(t, e.Content.Menu, "missing sections still backfilled")
	})

	t.Run("column value wins over settings", func(t *testing.T) {
		e := Event{
			Content: &SectionContent{Hero: &HeroContent{Title: "Column Hero"}},
			Settings: EventSettings{
				SectionContent: &SectionContent{Hero: &HeroContent{Title: "Legacy Hero"}},
			},
		}
		e.Normalize()

		assert.Equal(t, "Column Hero", e.Content.Hero.Title)
	})
}
