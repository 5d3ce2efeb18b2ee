package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text decodes a JSON string, number or boolean into its text form; null
// decodes to "". Numeric columns (vagas, idade, ...) arrive as numbers from
// one backend and as strings from another.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*t = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
	case len(b) > 0 && (b[0] == '{' || b[0] == '['):
		return fmt.Errorf("text: unexpected JSON %s", b)
	default:
		*t = Text(b)
	}
	return nil
}

// String returns t with surrounding whitespace removed.
func (t Text) String() string { return strings.TrimSpace(string(t)) }

// Tags decodes a JSON list of strings. A lone string becomes a one-item list
// and null becomes nil.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*t = nil
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*t = nil
			return nil
		}
		*t = Tags{s}
		return nil
	}
	var items []string
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*t = items
	return nil
}

// City is one row of the city reference collection.
type City struct {
	ID   Text   `json:"id"`
	Name string `json:"nome"`
}

// RecordBase holds the columns every category collection shares.
type RecordBase struct {
	ID        Text `json:"id"`
	CityID    Text `json:"cidade_id"`
	CreatedAt Text `json:"created_at"`
}

// Base returns the shared columns.
func (b RecordBase) Base() RecordBase { return b }

// Record is one stored category row. The concrete type identifies the category.
type Record interface {
	Category() Category
	Base() RecordBase
}

// Shelter is a row of "abrigos".
type Shelter struct {
	RecordBase
	Name      Text `json:"nome_local"`
	Manager   Text `json:"responsavel"`
	Phone     Text `json:"telefone"`
	Address   Text `json:"endereco"`
	Slots     Text `json:"vagas"`
	Resources Tags `json:"recursos"`
	Animals   Text `json:"animais"`
	Needs     Tags `json:"necessidades"`
	Priority  Text `json:"prioridade"`
}

func (Shelter) Category() Category { return CategoryShelter }

// DonationPoint is a row of "pontos_doacao".
type DonationPoint struct {
	RecordBase
	Name      Text `json:"nome_local"`
	Manager   Text `json:"responsavel"`
	Phone     Text `json:"telefone"`
	Address   Text `json:"endereco"`
	Hours     Text `json:"horario"`
	Accepts   Tags `json:"aceita"`
	NotNeeded Text `json:"nao_precisa"`
	PixType   Text `json:"pix_tipo"`
	PixKey    Text `json:"pix_chave"`
	PixHolder Text `json:"pix_titular"`
}

func (DonationPoint) Category() Category { return CategoryDonationPoint }

// MissingPerson is a row of "desaparecidos".
type MissingPerson struct {
	RecordBase
	Name           Text `json:"nome_pessoa"`
	Age            Text `json:"idade"`
	Description    Text `json:"descricao"`
	LastSeenAt     Text `json:"ultima_vez_visto"`
	LastSeenPlace  Text `json:"local_visto"`
	Health         Text `json:"condicao_saude"`
	InformantName  Text `json:"informante_nome"`
	InformantPhone Text `json:"informante_tel"`
	Relation       Text `json:"relacao"`
}

func (MissingPerson) Category() Category { return CategoryMissingPerson }

// FoodPoint is a row of "pontos_alimentacao".
type FoodPoint struct {
	RecordBase
	Name       Text `json:"nome_local"`
	Manager    Text `json:"responsavel"`
	Phone      Text `json:"telefone"`
	Address    Text `json:"endereco"`
	Hours      Text `json:"horario"`
	Capacity   Text `json:"capacidade"`
	Meals      Tags `json:"refeicoes"`
	Volunteers Text `json:"voluntarios"`
	Needs      Tags `json:"necessidades"`
}

func (FoodPoint) Category() Category { return CategoryFoodPoint }

// Community is a row of "comunidades".
type Community struct {
	RecordBase
	Name     Text `json:"nome_local"`
	Manager  Text `json:"responsavel"`
	Phone    Text `json:"telefone"`
	Address  Text `json:"endereco"`
	Priority Text `json:"prioridade"`
	Families Text `json:"familias"`
	Needs    Tags `json:"necessidades"`
	Notes    Text `json:"obs"`
}

func (Community) Category() Category { return CategoryCommunity }

// Volunteer is a row of "voluntarios".
type Volunteer struct {
	RecordBase
	Name         Text `json:"nome"`
	Phone        Text `json:"telefone"`
	Neighborhood Text `json:"bairro"`
	Vehicle      Text `json:"veiculo"`
	Skills       Tags `json:"habilidades"`
	Availability Text `json:"disponibilidade"`
}

func (Volunteer) Category() Category { return CategoryVolunteer }

// DecodeRecord decodes one stored row into the typed record for c.
func DecodeRecord(c Category, row json.RawMessage) (Record, error) {
	var (
		rec Record
		err error
	)
	switch c {
	case CategoryShelter:
		rec, err = decodeAs[Shelter](row)
	case CategoryDonationPoint:
		rec, err = decodeAs[DonationPoint](row)
	case CategoryMissingPerson:
		rec, err = decodeAs[MissingPerson](row)
	case CategoryFoodPoint:
		rec, err = decodeAs[FoodPoint](row)
	case CategoryCommunity:
		rec, err = decodeAs[Community](row)
	case CategoryVolunteer:
		rec, err = decodeAs[Volunteer](row)
	default:
		return nil, fmt.Errorf("decode %q record: %w", c, ErrConfigurationGap)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s record: %w", c, err)
	}
	return rec, nil
}

func decodeAs[T Record](row json.RawMessage) (Record, error) {
	var v T
	if err := json.Unmarshal(row, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeCity decodes one row of the city reference collection.
func DecodeCity(row json.RawMessage) (City, error) {
	var c City
	if err := json.Unmarshal(row, &c); err != nil {
		return City{}, fmt.Errorf("decode city: %w", err)
	}
	return c, nil
}
