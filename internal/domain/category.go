package domain

// Category is the short tag identifying a record type, as used in form posts
// and query strings.
type Category string

const (
	CategoryShelter       Category = "abrigo"
	CategoryDonationPoint Category = "doacao"
	CategoryMissingPerson Category = "desaparecido"
	CategoryFoodPoint     Category = "alimentacao"
	CategoryCommunity     Category = "comunidade"
	CategoryVolunteer     Category = "voluntario"
)

// Storage names shared by every collection.
const (
	CitiesCollection = "cidades"
	ColumnID         = "id"
	ColumnCityID     = "cidade_id"
	ColumnCityName   = "nome"
	ColumnCreatedAt  = "created_at"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryShelter,
	CategoryDonationPoint,
	CategoryMissingPerson,
	CategoryFoodPoint,
	CategoryCommunity,
	CategoryVolunteer,
}

type categoryInfo struct {
	icon       string
	name       string
	plural     string
	collection string
}

var categoryTable = map[Category]categoryInfo{
	CategoryShelter:       {icon: "🏠", name: "Abrigo", plural: "Abrigos", collection: "abrigos"},
	CategoryDonationPoint: {icon: "📦", name: "Ponto de Doação", plural: "Pontos de Doação", collection: "pontos_doacao"},
	CategoryMissingPerson: {icon: "🔍", name: "Pessoa Desaparecida", plural: "Pessoas Desaparecidas", collection: "desaparecidos"},
	CategoryFoodPoint:     {icon: "🍽️", name: "Ponto de Alimentação", plural: "Pontos de Alimentação", collection: "pontos_alimentacao"},
	CategoryCommunity:     {icon: "🏘️", name: "Comunidade / Bairro", plural: "Comunidades", collection: "comunidades"},
	CategoryVolunteer:     {icon: "🙋", name: "Oferecer Ajuda", plural: "Voluntários", collection: "voluntarios"},
}

// ParseCategory returns the category for a tag, or false if the tag is unknown.
func ParseCategory(tag string) (Category, bool) {
	c := Category(tag)
	return c, c.Valid()
}

// Valid reports whether c is one of the six known categories.
func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

// Collection returns the record-store collection bound to c, or "" if c is unknown.
func (c Category) Collection() string {
	return categoryTable[c].collection
}

// Icon returns the emoji shown next to c.
func (c Category) Icon() string {
	return categoryTable[c].icon
}

// Label returns the human label with its icon, e.g. "🏠 Abrigo".
// Unknown categories fall back to the raw tag.
func (c Category) Label() string {
	info, ok := categoryTable[c]
	if !ok {
		return string(c)
	}
	return info.icon + " " + info.name
}

// SectionLabel returns the plural label used as a directory section header.
func (c Category) SectionLabel() string {
	info, ok := categoryTable[c]
	if !ok {
		return string(c)
	}
	return info.plural
}
