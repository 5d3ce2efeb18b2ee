package directory

import (
	"strings"
	"time"

	"github.com/couchcryptid/ajudejf/internal/domain"
)

// Tone is a badge color.
type Tone string

const (
	ToneRed   Tone = "red"
	ToneGold  Tone = "gold"
	ToneGreen Tone = "green"
	ToneBlue  Tone = "blue"
	ToneGray  Tone = "gray"
)

// Badge is a colored label next to a card title.
type Badge struct {
	Text string
	Tone Tone
}

// Line is one icon-prefixed detail row.
type Line struct {
	Icon string
	Text string
}

// Card is the view model of one record. All text is unescaped; the rendering
// adapter escapes it.
type Card struct {
	Title       string
	Badges      []Badge
	Lines       []Line
	Chips       []string
	Highlight   string
	Note        string
	Footer      string
	WhatsAppURL string
}

// Renderer builds the card of one record. city is the resolved city name.
type Renderer func(rec domain.Record, city string) Card

// Renderers binds each category to its card template.
var Renderers = map[domain.Category]Renderer{
	domain.CategoryShelter:       renderShelter,
	domain.CategoryDonationPoint: renderDonationPoint,
	domain.CategoryMissingPerson: renderMissingPerson,
	domain.CategoryFoodPoint:     renderFoodPoint,
	domain.CategoryCommunity:     renderCommunity,
	domain.CategoryVolunteer:     renderVolunteer,
}

var priorityTones = map[string]Tone{
	domain.PriorityHigh:   ToneRed,
	domain.PriorityMedium: ToneGold,
	domain.PriorityLow:    ToneGreen,
}

func priorityBadge(p domain.Text) []Badge {
	v := p.String()
	if v == "" {
		return nil
	}
	tone, ok := priorityTones[v]
	if !ok {
		tone = ToneGray
	}
	return []Badge{{Text: "Prioridade " + v, Tone: tone}}
}

func placeLine(city string, address domain.Text) Line {
	if a := address.String(); a != "" {
		return Line{Icon: "📍", Text: city + " · " + a}
	}
	return Line{Icon: "📍", Text: city}
}

// optional appends a line only when value is set.
func optional(lines []Line, icon, prefix string, value domain.Text) []Line {
	v := value.String()
	if v == "" {
		return lines
	}
	return append(lines, Line{Icon: icon, Text: prefix + v})
}

func chips(t domain.Tags) []string {
	out := make([]string, 0, len(t))
	for _, s := range t {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func needs(t domain.Tags) string {
	c := chips(t)
	if len(c) == 0 {
		return ""
	}
	return "Precisa agora: " + strings.Join(c, ", ")
}

func title(name domain.Text, fallback string) string {
	if n := name.String(); n != "" {
		return n
	}
	return fallback
}

func renderShelter(rec domain.Record, city string) Card {
	r := rec.(domain.Shelter)
	slots := r.Slots.String()
	if slots == "" {
		slots = "não informado"
	}
	lines := []Line{placeLine(city, r.Address), {Icon: "🛏️", Text: "Vagas: " + slots}}
	lines = optional(lines, "🐾", "Animais: ", r.Animals)
	return Card{
		Title:       title(r.Name, "Abrigo"),
		Badges:      priorityBadge(r.Priority),
		Lines:       lines,
		Chips:       chips(r.Resources),
		Highlight:   needs(r.Needs),
		WhatsAppURL: domain.WhatsAppURL(r.Phone.String()),
	}
}

func renderDonationPoint(rec domain.Record, city string) Card {
	r := rec.(domain.DonationPoint)
	lines := []Line{placeLine(city, r.Address)}
	lines = optional(lines, "🕐", "", r.Hours)
	if key := r.PixKey.String(); key != "" {
		pix := "PIX"
		if typ := r.PixType.String(); typ != "" && typ != domain.NoPixSentinel {
			pix += " (" + typ + ")"
		}
		pix += ": " + key
		if holder := r.PixHolder.String(); holder != "" {
			pix += " · " + holder
		}
		lines = append(lines, Line{Icon: "💰", Text: pix})
	}
	card := Card{
		Title:       title(r.Name, "Ponto de doação"),
		Lines:       lines,
		Chips:       chips(r.Accepts),
		WhatsAppURL: domain.WhatsAppURL(r.Phone.String()),
	}
	if n := r.NotNeeded.String(); n != "" {
		card.Note = "Não precisa: " + n
	}
	return card
}

func renderMissingPerson(rec domain.Record, city string) Card {
	r := rec.(domain.MissingPerson)
	lines := []Line{{Icon: "📍", Text: city}}
	if age := r.Age.String(); age != "" {
		lines = append(lines, Line{Icon: "🎂", Text: age + " anos"})
	}
	lines = optional(lines, "📝", "", r.Description)
	if seen := lastSeen(r.LastSeenAt.String(), r.LastSeenPlace.String()); seen != "" {
		lines = append(lines, Line{Icon: "👁️", Text: seen})
	}
	card := Card{
		Title:       title(r.Name, "Pessoa desaparecida"),
		Badges:      []Badge{{Text: "Desaparecido(a)", Tone: ToneRed}},
		Lines:       lines,
		WhatsAppURL: domain.WhatsAppURL(r.InformantPhone.String()),
	}
	if h := r.Health.String(); h != "" {
		card.Highlight = "Saúde: " + h
	}
	if n := r.InformantName.String(); n != "" {
		card.Footer = "Informante: " + n
		if rel := r.Relation.String(); rel != "" {
			card.Footer += " (" + rel + ")"
		}
	}
	return card
}

// lastSeenLayouts are the timestamp shapes the form and the backend produce.
var lastSeenLayouts = []string{"2006-01-02T15:04", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}

func lastSeen(at, place string) string {
	if at == "" && place == "" {
		return ""
	}
	for _, layout := range lastSeenLayouts {
		if t, err := time.Parse(layout, at); err == nil {
			at = t.Format("02/01/2006 15:04")
			break
		}
	}
	switch {
	case at == "":
		return "Visto por último em " + place
	case place == "":
		return "Visto por último: " + at
	default:
		return "Visto por último: " + at + " em " + place
	}
}

func renderFoodPoint(rec domain.Record, city string) Card {
	r := rec.(domain.FoodPoint)
	lines := []Line{placeLine(city, r.Address)}
	lines = optional(lines, "🕐", "", r.Hours)
	if c := r.Capacity.String(); c != "" {
		lines = append(lines, Line{Icon: "🍽️", Text: c + " refeições/dia"})
	}
	card := Card{
		Title:       title(r.Name, "Ponto de alimentação"),
		Lines:       lines,
		Chips:       chips(r.Meals),
		Highlight:   needs(r.Needs),
		WhatsAppURL: domain.WhatsAppURL(r.Phone.String()),
	}
	if r.Volunteers.String() == domain.VolunteersUrgent {
		card.Badges = []Badge{{Text: "Precisa de voluntários urgente", Tone: ToneRed}}
	}
	return card
}

func renderCommunity(rec domain.Record, city string) Card {
	r := rec.(domain.Community)
	lines := []Line{placeLine(city, r.Address)}
	if f := r.Families.String(); f != "" {
		lines = append(lines, Line{Icon: "👨‍👩‍👧", Text: "~" + f + " famílias afetadas"})
	}
	return Card{
		Title:       title(r.Name, "Comunidade"),
		Badges:      priorityBadge(r.Priority),
		Lines:       lines,
		Chips:       chips(r.Needs),
		Note:        r.Notes.String(),
		WhatsAppURL: domain.WhatsAppURL(r.Phone.String()),
	}
}

func renderVolunteer(rec domain.Record, city string) Card {
	r := rec.(domain.Volunteer)
	place := city
	if b := r.Neighborhood.String(); b != "" {
		place += " · " + b
	}
	lines := []Line{{Icon: "📍", Text: place}}
	lines = optional(lines, "🕐", "Disponibilidade: ", r.Availability)
	card := Card{
		Title:       title(r.Name, "Voluntário(a)"),
		Lines:       lines,
		Chips:       chips(r.Skills),
		WhatsAppURL: domain.WhatsAppURL(r.Phone.String()),
	}
	if v := r.Vehicle.String(); v != "" && v != domain.NoVehicle {
		card.Badges = []Badge{{Text: "🚗 " + v, Tone: ToneBlue}}
	}
	return card
}
