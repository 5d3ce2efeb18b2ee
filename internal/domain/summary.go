package domain

import (
	"strings"
	"time"
)

const (
	// SummaryHeader opens every summary.
	SummaryHeader = "=== AJUDE JF — "
	// SummaryAttribution closes every summary.
	SummaryAttribution = "Registrado em ajudejf.com.br"

	// pt-BR short date and time, as browsers print toLocaleString('pt-BR').
	summaryTimeLayout = "02/01/2006, 15:04:05"
)

var fieldLabels = map[string]string{
	"nome_local":      "Local",
	"nome_pessoa":     "Nome da pessoa",
	"nome":            "Nome",
	"responsavel":     "Responsável",
	"telefone":        "Telefone/WhatsApp",
	"endereco":        "Endereço",
	"vagas":           "Vagas disponíveis",
	"recursos":        "Recursos disponíveis",
	"animais":         "Aceita animais",
	"necessidades":    "Necessidades AGORA",
	"nao_precisa":     "NÃO precisa",
	"prioridade":      "Prioridade",
	"horario":         "Horário",
	"aceita":          "O que aceita",
	"pix_tipo":        "Tipo da chave PIX",
	"pix_chave":       "Chave PIX",
	"pix_titular":     "Titular PIX",
	"refeicao":        "Tipo de refeição",
	"voluntarios":     "Precisa voluntários",
	"capacidade":      "Capacidade",
	"familias":        "Famílias afetadas",
	"descricao":       "Descrição física",
	"ultima_vez":      "Última vez visto",
	"local_visto":     "Local visto",
	"saude":           "Condição de saúde",
	"informante_nome": "Informante",
	"informante_tel":  "Tel. informante",
	"relacao":         "Relação",
	"idade":           "Idade",
	"bairro":          "Bairro",
	"veiculo":         "Veículo",
	"habilidade":      "Habilidades",
	"disponibilidade": "Disponibilidade",
	"obs":             "Observações",
}

// FieldLabel returns the human label for a form field, or the field name itself.
func FieldLabel(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

// BuildSummary renders the plain-text recap of a submission. The same text is
// shown on the confirmation step, shared over WhatsApp and copied to the
// clipboard. The timestamp is the moment of construction in loc (nil means
// the local zone).
func BuildSummary(city string, c Category, raw RawFields, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	now := clock.Now().In(loc)

	lines := []string{
		SummaryHeader + strings.ToUpper(c.Label()) + " ===",
		"📍 Cidade: " + city,
		"📅 Data/hora: " + now.Format(summaryTimeLayout),
		"",
	}
	for _, f := range raw {
		if f.Value.Blank() {
			continue
		}
		lines = append(lines, "• "+FieldLabel(f.Name)+": "+strings.Join(f.Value.Present(), ", "))
	}
	lines = append(lines, "", SummaryAttribution)
	return strings.Join(lines, "\n")
}
