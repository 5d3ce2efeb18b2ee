package domain

// Schema lists the form fields a category accepts, in form order.
type Schema struct {
	Fields   []string
	Required []string
}

// Allows reports whether name is one of the schema's fields.
func (s Schema) Allows(name string) bool {
	for _, f := range s.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Schemas binds each category to its accepted form fields.
var Schemas = map[Category]Schema{
	CategoryShelter: {
		Fields:   []string{"nome_local", "responsavel", "telefone", "endereco", "vagas", "recursos", "animais", "necessidades", "prioridade"},
		Required: []string{"nome_local", "telefone", "endereco", "vagas"},
	},
	CategoryDonationPoint: {
		Fields:   []string{"nome_local", "responsavel", "telefone", "endereco", "horario", "aceita", "nao_precisa", "pix_tipo", "pix_chave", "pix_titular"},
		Required: []string{"nome_local", "telefone", "endereco"},
	},
	CategoryMissingPerson: {
		Fields:   []string{"nome_pessoa", "idade", "descricao", "ultima_vez", "local_visto", "saude", "informante_nome", "informante_tel", "relacao"},
		Required: []string{"nome_pessoa", "descricao", "informante_nome", "informante_tel"},
	},
	CategoryFoodPoint: {
		Fields:   []string{"nome_local", "responsavel", "telefone", "endereco", "horario", "capacidade", "refeicao", "voluntarios", "necessidades"},
		Required: []string{"nome_local", "telefone", "endereco"},
	},
	CategoryCommunity: {
		Fields:   []string{"nome_local", "responsavel", "telefone", "endereco", "prioridade", "familias", "necessidades", "obs"},
		Required: []string{"nome_local", "telefone"},
	},
	CategoryVolunteer: {
		Fields:   []string{"nome", "telefone", "bairro", "veiculo", "habilidade", "disponibilidade"},
		Required: []string{"nome", "telefone"},
	},
}

// Option values with rendering rules attached.
const (
	PriorityHigh   = "Alta"
	PriorityMedium = "Média"
	PriorityLow    = "Baixa"

	// VolunteersUrgent flags a food point that needs volunteers right away.
	VolunteersUrgent = "Sim, urgente"
	// NoVehicle is the vehicle option of volunteers without one.
	NoVehicle = "Não"
)
