package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Section names as they appear as keys in the section documents.
const (
	SectionHero           = "hero"
	SectionTimeline       = "timeline"
	SectionCeremony       = "ceremony"
	SectionCeremonyVenue  = "ceremonyVenue"
	SectionSeatingChart   = "seatingChart"
	SectionMenu           = "menu"
	SectionWishesAndGifts = "wishesAndGifts"
	SectionTeam           = "team"
	SectionAccommodation  = "accommodation"
	SectionTransportation = "transportation"
	SectionAdditionalInfo = "additionalInfo"
)

// SectionNames returns every known page section, in render order.
func SectionNames() []string {
	return []string{
		SectionHero,
		SectionTimeline,
		SectionCeremony,
		SectionCeremonyVenue,
		SectionSeatingChart,
		SectionMenu,
		SectionWishesAndGifts,
		SectionTeam,
		SectionAccommodation,
		SectionTransportation,
		SectionAdditionalInfo,
	}
}

// SectionVisibility controls which page sections the guest site renders.
// Keys missing from the stored document are treated as visible.
type SectionVisibility map[string]bool

func DefaultSectionVisibility() SectionVisibility {
	v := make(SectionVisibility, len(SectionNames()))
	for _, name := range SectionNames() {
		v[name] = true
	}
	return v
}

// EnsureComplete fills in every known section key missing from the document.
func (v *SectionVisibility) EnsureComplete() {
	if *v == nil {
		*v = DefaultSectionVisibility()
		return
	}
	for _, name := range SectionNames() {
		if _, ok := (*v)[name]; !ok {
			(*v)[name] = true
		}
	}
}

func (v SectionVisibility) IsVisible(section string) bool {
	shown, ok := v[section]
	if !ok {
		return true
	}
	return shown
}

func (v SectionVisibility) Value() (driver.Value, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func (v *SectionVisibility) Scan(value interface{}) error {
	if value == nil {
		*v = nil
		return nil
	}
	switch b := value.(type) {
	case []byte:
		return json.Unmarshal(b, v)
	case string:
		return json.Unmarshal([]byte(b), v)
	default:
		return fmt.Errorf("unsupported type %T for SectionVisibility", value)
	}
}

// HeroContent is the opening section of the guest site.
type HeroContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	ImageURL string `json:"imageUrl"`
}

type TimelineItem struct {
	Time        string `json:"time"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type TimelineContent struct {
	Title string         `json:"title"`
	Items []TimelineItem `json:"items"`
}

type CeremonyContent struct {
	Title       string `json:"title"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

type CeremonyVenueContent struct {
	Title   string `json:"title"`
	Name    string `json:"name"`
	Address string `json:"address"`
	MapURL  string `json:"mapUrl"`
}

type SeatingTable struct {
	Name   string   `json:"name"`
	Guests []string `json:"guests"`
}

type SeatingChartContent struct {
	Title  string         `json:"title"`
	Tables []SeatingTable `json:"tables"`
}

type MenuItem struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Allergens   []string `json:"allergens,omitempty"`
}

type MenuCourse struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

type MenuContent struct {
	Title   string       `json:"title"`
	Courses []MenuCourse `json:"courses"`
}

type WishesAndGiftsContent struct {
	Title       string `json:"title"`
	Message     string `json:"message"`
	RegistryURL string `json:"registryUrl"`
}

type TeamMember struct {
	Name     string `json:"name"`
	Role     string `json:"role"`
	PhotoURL string `json:"photoUrl"`
}

type TeamContent struct {
	Title   string       `json:"title"`
	Members []TeamMember `json:"members"`
}

type AccommodationPlace struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	URL     string `json:"url"`
}

type AccommodationContent struct {
	Title  string               `json:"title"`
	Places []AccommodationPlace `json:"places"`
}

type TransportOption struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type TransportationContent struct {
	Title   string            `json:"title"`
	Options []TransportOption `json:"options"`
}

type InfoItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type AdditionalInfoContent struct {
	Title string     `json:"title"`
	Items []InfoItem `json:"items"`
}

// SectionContent is the per-event CMS document: one sub-document per page
// section. Sub-documents are pointers so that sections absent from storage can
// be detected and backfilled with defaults on read.
type SectionContent struct {
	Hero           *HeroContent           `json:"hero,omitempty"`
	Timeline       *TimelineContent       `json:"timeline,omitempty"`
	Ceremony       *CeremonyContent       `json:"ceremony,omitempty"`
	CeremonyVenue  *CeremonyVenueContent  `json:"ceremonyVenue,omitempty"`
	SeatingChart   *SeatingChartContent   `json:"seatingChart,omitempty"`
	Menu           *MenuContent           `json:"menu,omitempty"`
	WishesAndGifts *WishesAndGiftsContent `json:"wishesAndGifts,omitempty"`
	Team           *TeamContent           `json:"team,omitempty"`
	Accommodation  *AccommodationContent  `json:"accommodation,omitempty"`
	Transportation *TransportationContent `json:"transportation,omitempty"`
	AdditionalInfo *AdditionalInfoContent `json:"additionalInfo,omitempty"`
}

// DefaultTimelineItems is the starter schedule every new event receives.
func DefaultTimelineItems() []TimelineItem {
	return []TimelineItem{
		{Time: "14:00", Title: "Welcome Toast", Icon: "/icons/toast.svg"},
		{Time: "15:00", Title: "Ceremony", Icon: "/icons/rings.svg"},
		{Time: "16:30", Title: "Lunch", Icon: "/icons/dinner.svg"},
		{Time: "18:00", Title: "Cake Cutting", Icon: "/icons/cake.svg"},
		{Time: "19:00", Title: "First Dance", Icon: "/icons/dance.svg"},
		{Time: "20:00", Title: "Cocktail Hour", Icon: "/icons/cocktail.svg"},
		{Time: "21:00", Title: "Dinner", Icon: "/icons/dinner.svg"},
		{Time: "23:00", Title: "Fireworks", Icon: "/icons/fireworks.svg"},
	}
}

// DefaultSectionContent builds the starter document, deriving titles from the
// event's own fields where they apply.
func DefaultSectionContent(title, venue string, eventDate time.Time) *SectionContent {
	subtitle := ""
	if !eventDate.IsZero() {
		subtitle = eventDate.Format("January 2, 2006")
	}
	return &SectionContent{
		Hero:           &HeroContent{Title: title, Subtitle: subtitle},
		Timeline:       &TimelineContent{Title: "Schedule", Items: DefaultTimelineItems()},
		Ceremony:       &CeremonyContent{Title: "Ceremony", Time: "15:00"},
		CeremonyVenue:  &CeremonyVenueContent{Title: "Venue", Name: venue},
		SeatingChart:   &SeatingChartContent{Title: "Seating Chart"},
		Menu:           &MenuContent{Title: "Menu"},
		WishesAndGifts: &WishesAndGiftsContent{Title: "Wishes & Gifts"},
		Team:           &TeamContent{Title: "Wedding Team"},
		Accommodation:  &AccommodationContent{Title: "Accommodation"},
		Transportation: &TransportationContent{Title: "Transportation"},
		AdditionalInfo: &AdditionalInfoContent{Title: "Good to Know"},
	}
}

// EnsureComplete backfills sub-sections missing from the stored document so a
// read never surfaces a nil section, regardless of when the row was created.
func (c *SectionContent) EnsureComplete(title, venue string, eventDate time.Time) {
	def := DefaultSectionContent(title, venue, eventDate)
	if c.Hero == nil {
		c.Hero = def.Hero
	}
	if c.Timeline == nil {
		c.Timeline = def.Timeline
	}
	if c.Ceremony == nil {
		c.Ceremony = def.Ceremony
	}
	if c.CeremonyVenue == nil {
		c.CeremonyVenue = def.CeremonyVenue
	}
	if c.SeatingChart == nil {
		c.SeatingChart = def.SeatingChart
	}
	if c.Menu == nil {
		c.Menu = def.Menu
	}
	if c.WishesAndGifts == nil {
		c.WishesAndGifts = def.WishesAndGifts
	}
	if c.Team == nil {
		c.Team = def.Team
	}
	if c.Accommodation == nil {
		c.Accommodation = def.Accommodation
	}
	if c.Transportation == nil {
		c.Transportation = def.Transportation
	}
	if c.AdditionalInfo == nil {
		c.AdditionalInfo = def.AdditionalInfo
	}
}

// Section returns a pointer to the named sub-document, or nil for an unknown
// name. The pointer targets the document itself, so unmarshalling a partial
// payload into it merges field-by-field.
func (c *SectionContent) Section(name string) interface{} {
	switch name {
	case SectionHero:
		return c.Hero
	case SectionTimeline:
		return c.Timeline
	case SectionCeremony:
		return c.Ceremony
	case SectionCeremonyVenue:
		return c.CeremonyVenue
	case SectionSeatingChart:
		return c.SeatingChart
	case SectionMenu:
		return c.Menu
	case SectionWishesAndGifts:
		return c.WishesAndGifts
	case SectionTeam:
		return c.Team
	case SectionAccommodation:
		return c.Accommodation
	case SectionTransportation:
		return c.Transportation
	case SectionAdditionalInfo:
		return c.AdditionalInfo
	default:
		return nil
	}
}

func (c SectionContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *SectionContent) Scan(value interface{}) error {
	if value == nil {
		*c = SectionContent{}
		return nil
	}
	switch b := value.(type) {
	case []byte:
		return json.Unmarshal(b, c)
	case string:
		return json.Unmarshal([]byte(b), c)
	default:
		return fmt.Errorf("unsupported type %T for SectionContent", value)
	}
}
