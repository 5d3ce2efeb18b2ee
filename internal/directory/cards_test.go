package directory

import (
	"encoding/json"
	"testing"

	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, c domain.Category, row string) domain.Record {
	t.Helper()
	rec, err := domain.DecodeRecord(c, json.RawMessage(row))
	require.NoError(t, err)
	return rec
}

func TestRenderers_CoverEveryCategory(t *testing.T) {
	for _, c := range domain.Categories {
		_, ok := Renderers[c]
		assert.True(t, ok, "no renderer for %s", c)
	}
}

func TestRenderShelter(t *testing.T) {
	rec := decode(t, domain.CategoryShelter, `{
		"nome_local": "Escola Estadual", "endereco": "Rua Halfeld, 100", "vagas": 5,
		"animais": "Sim", "necessidades": ["Água", "Fraldas"], "recursos": ["Água", "Cobertas"],
		"prioridade": "Média", "telefone": "(32) 99999-8888"
	}`)

	card := renderShelter(rec, "Juiz de Fora")

	assert.Equal(t, "Escola Estadual", card.Title)
	assert.Equal(t, []Badge{{Text: "Prioridade Média", Tone: ToneGold}}, card.Badges)
	assert.Equal(t, []Line{
		{Icon: "📍", Text: "Juiz de Fora · Rua Halfeld, 100"},
		{Icon: "🛏️", Text: "Vagas: 5"},
		{Icon: "🐾", Text: "Animais: Sim"},
	}, card.Lines)
	assert.Equal(t, []string{"Água", "Cobertas"}, card.Chips)
	assert.Equal(t, "Precisa agora: Água, Fraldas", card.Highlight)
	assert.Equal(t, "https://wa.me/5532999998888", card.WhatsAppURL)
}

func TestPriorityBadgeTones(t *testing.T) {
	assert.Equal(t, ToneRed, priorityBadge("Alta")[0].Tone)
	assert.Equal(t, ToneGold, priorityBadge("Média")[0].Tone)
	assert.Equal(t, ToneGreen, priorityBadge("Baixa")[0].Tone)
	assert.Equal(t, ToneGray, priorityBadge("Urgentíssima")[0].Tone)
	assert.Nil(t, priorityBadge(""))
}

func TestRenderDonationPoint_Pix(t *testing.T) {
	rec := decode(t, domain.CategoryDonationPoint, `{
		"nome_local": "Paróquia", "horario": "8h às 18h", "aceita": ["Roupas"],
		"pix_tipo": "CNPJ", "pix_chave": "12.345.678/0001-90", "pix_titular": "Mitra",
		"nao_precisa": "Sapatos"
	}`)

	card := renderDonationPoint(rec, "Juiz de Fora")

	assert.Contains(t, card.Lines, Line{Icon: "🕐", Text: "8h às 18h"})
	assert.Contains(t, card.Lines, Line{Icon: "💰", Text: "PIX (CNPJ): 12.345.678/0001-90 · Mitra"})
	assert.Equal(t, []string{"Roupas"}, card.Chips)
	assert.Equal(t, "Não precisa: Sapatos", card.Note)
	assert.Empty(t, card.WhatsAppURL)
}

func TestRenderDonationPoint_NoPixKeyNoLine(t *testing.T) {
	rec := decode(t, domain.CategoryDonationPoint, `{"nome_local": "Paróquia", "pix_tipo": "CPF"}`)

	card := renderDonationPoint(rec, "Juiz de Fora")

	assert.Len(t, card.Lines, 1)
}

func TestRenderMissingPerson(t *testing.T) {
	rec := decode(t, domain.CategoryMissingPerson, `{
		"nome_pessoa": "José", "idade": 72, "descricao": "Camisa azul",
		"ultima_vez_visto": "2024-05-03T14:30", "local_visto": "Centro",
		"condicao_saude": "Diabético", "informante_nome": "Maria", "relacao": "Familiar",
		"informante_tel": "32988887777"
	}`)

	card := renderMissingPerson(rec, "Juiz de Fora")

	assert.Equal(t, "José", card.Title)
	assert.Equal(t, []Badge{{Text: "Desaparecido(a)", Tone: ToneRed}}, card.Badges)
	assert.Equal(t, []Line{
		{Icon: "📍", Text: "Juiz de Fora"},
		{Icon: "🎂", Text: "72 anos"},
		{Icon: "📝", Text: "Camisa azul"},
		{Icon: "👁️", Text: "Visto por último: 03/05/2024 14:30 em Centro"},
	}, card.Lines)
	assert.Equal(t, "Saúde: Diabético", card.Highlight)
	assert.Equal(t, "Informante: Maria (Familiar)", card.Footer)
	assert.Equal(t, "https://wa.me/5532988887777", card.WhatsAppURL)
}

func TestLastSeen(t *testing.T) {
	assert.Empty(t, lastSeen("", ""))
	assert.Equal(t, "Visto por último em Centro", lastSeen("", "Centro"))
	assert.Equal(t, "Visto por último: ontem à noite", lastSeen("ontem à noite", ""))
	assert.Equal(t, "Visto por último: 03/05/2024 14:30", lastSeen("2024-05-03T14:30:00Z", ""))
}

func TestRenderFoodPoint_UrgentVolunteers(t *testing.T) {
	urgent := renderFoodPoint(decode(t, domain.CategoryFoodPoint,
		`{"nome_local": "Cozinha", "voluntarios": "Sim, urgente", "capacidade": "300", "refeicoes": ["Almoço", "Jantar"]}`), "JF")
	calm := renderFoodPoint(decode(t, domain.CategoryFoodPoint,
		`{"nome_local": "Cozinha", "voluntarios": "Sim"}`), "JF")

	require.Len(t, urgent.Badges, 1)
	assert.Equal(t, ToneRed, urgent.Badges[0].Tone)
	assert.Contains(t, urgent.Lines, Line{Icon: "🍽️", Text: "300 refeições/dia"})
	assert.Equal(t, []string{"Almoço", "Jantar"}, urgent.Chips)
	assert.Empty(t, calm.Badges)
}

func TestRenderCommunity(t *testing.T) {
	card := renderCommunity(decode(t, domain.CategoryCommunity,
		`{"nome_local": "Vila Esperança", "prioridade": "Alta", "familias": 40, "necessidades": ["Água"], "obs": "Acesso só a pé"}`), "JF")

	assert.Equal(t, ToneRed, card.Badges[0].Tone)
	assert.Contains(t, card.Lines, Line{Icon: "👨‍👩‍👧", Text: "~40 famílias afetadas"})
	assert.Equal(t, []string{"Água"}, card.Chips)
	assert.Equal(t, "Acesso só a pé", card.Note)
}

func TestRenderVolunteer_VehicleBadge(t *testing.T) {
	with := renderVolunteer(decode(t, domain.CategoryVolunteer,
		`{"nome": "Ana", "veiculo": "Caminhonete", "bairro": "São Pedro", "disponibilidade": "Noite"}`), "JF")
	without := renderVolunteer(decode(t, domain.CategoryVolunteer, `{"nome": "Bia", "veiculo": "Não"}`), "JF")
	blank := renderVolunteer(decode(t, domain.CategoryVolunteer, `{}`), "JF")

	assert.Equal(t, []Badge{{Text: "🚗 Caminhonete", Tone: ToneBlue}}, with.Badges)
	assert.Equal(t, Line{Icon: "📍", Text: "JF · São Pedro"}, with.Lines[0])
	assert.Contains(t, with.Lines, Line{Icon: "🕐", Text: "Disponibilidade: Noite"})
	assert.Empty(t, without.Badges)
	assert.Empty(t, blank.Badges)
	assert.Equal(t, "Voluntário(a)", blank.Title)
}
