package intake

import "github.com/couchcryptid/ajudejf/internal/domain"

// FieldKind selects the input control rendered for a form field.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTel      FieldKind = "tel"
	KindNumber   FieldKind = "number"
	KindDateTime FieldKind = "datetime-local"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindCheckbox FieldKind = "checkbox"
)

// FormField is one input of a category form.
type FormField struct {
	Name        string
	Kind        FieldKind
	Label       string
	Placeholder string
	Options     []string
	Required    bool
}

// Form is the ordered input list of one category.
type Form struct {
	Category domain.Category
	Title    string
	Fields   []FormField
	Submit   string
}

var (
	priorityOptions = []string{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}
	needsOptions    = []string{"Água", "Alimentos", "Cobertas", "Colchões", "Roupas", "Produtos de higiene", "Fraldas", "Medicamentos", "Voluntários"}
)

func place(label string) []FormField {
	return []FormField{
		{Name: "nome_local", Kind: KindText, Label: label, Required: true},
		{Name: "responsavel", Kind: KindText, Label: "Responsável"},
		{Name: "telefone", Kind: KindTel, Label: "Telefone/WhatsApp", Placeholder: "(32) 99999-9999", Required: true},
	}
}

// Forms binds each category to its form. A category missing here can still be
// picked but never reaches the form step.
var Forms = map[domain.Category]Form{
	domain.CategoryShelter: {
		Category: domain.CategoryShelter,
		Title:    "Cadastrar abrigo",
		Submit:   "Salvar abrigo",
		Fields: append(place("Nome do local"),
			FormField{Name: "endereco", Kind: KindText, Label: "Endereço", Required: true},
			FormField{Name: "vagas", Kind: KindNumber, Label: "Vagas disponíveis", Required: true},
			FormField{Name: "recursos", Kind: KindCheckbox, Label: "Recursos disponíveis",
				Options: []string{"Água", "Alimentação", "Cobertas", "Colchões", "Roupas", "Kit higiene", "Atendimento médico", "Energia elétrica"}},
			FormField{Name: "animais", Kind: KindSelect, Label: "Aceita animais?", Options: []string{"Sim", "Não", "Apenas pequeno porte"}},
			FormField{Name: "necessidades", Kind: KindCheckbox, Label: "Necessidades AGORA", Options: needsOptions},
			FormField{Name: "prioridade", Kind: KindSelect, Label: "Prioridade", Options: priorityOptions},
		),
	},
	domain.CategoryDonationPoint: {
		Category: domain.CategoryDonationPoint,
		Title:    "Cadastrar ponto de doação",
		Submit:   "Salvar ponto de doação",
		Fields: append(place("Nome do local"),
			FormField{Name: "endereco", Kind: KindText, Label: "Endereço", Required: true},
			FormField{Name: "horario", Kind: KindText, Label: "Horário de funcionamento", Placeholder: "Ex.: 8h às 18h"},
			FormField{Name: "aceita", Kind: KindCheckbox, Label: "O que aceita",
				Options: []string{"Roupas", "Alimentos não perecíveis", "Água", "Produtos de higiene", "Produtos de limpeza", "Cobertas", "Colchões", "Ração animal", "Fraldas", "Medicamentos"}},
			FormField{Name: "nao_precisa", Kind: KindTextarea, Label: "O que NÃO precisa"},
			FormField{Name: "pix_tipo", Kind: KindSelect, Label: "Tipo da chave PIX",
				Options: []string{domain.NoPixSentinel, "CPF", "CNPJ", "E-mail", "Telefone", "Chave aleatória"}},
			FormField{Name: "pix_chave", Kind: KindText, Label: "Chave PIX"},
			FormField{Name: "pix_titular", Kind: KindText, Label: "Titular da conta"},
		),
	},
	domain.CategoryMissingPerson: {
		Category: domain.CategoryMissingPerson,
		Title:    "Informar pessoa desaparecida",
		Submit:   "Registrar desaparecimento",
		Fields: []FormField{
			{Name: "nome_pessoa", Kind: KindText, Label: "Nome da pessoa", Required: true},
			{Name: "idade", Kind: KindNumber, Label: "Idade"},
			{Name: "descricao", Kind: KindTextarea, Label: "Descrição física", Placeholder: "Altura, roupas, sinais particulares", Required: true},
			{Name: "ultima_vez", Kind: KindDateTime, Label: "Última vez visto"},
			{Name: "local_visto", Kind: KindText, Label: "Local onde foi visto"},
			{Name: "saude", Kind: KindTextarea, Label: "Condição de saúde", Placeholder: "Medicamentos, deficiências, doenças"},
			{Name: "informante_nome", Kind: KindText, Label: "Seu nome", Required: true},
			{Name: "informante_tel", Kind: KindTel, Label: "Seu telefone/WhatsApp", Placeholder: "(32) 99999-9999", Required: true},
			{Name: "relacao", Kind: KindSelect, Label: "Relação com a pessoa", Options: []string{"Familiar", "Amigo(a)", "Vizinho(a)", "Outro"}},
		},
	},
	domain.CategoryFoodPoint: {
		Category: domain.CategoryFoodPoint,
		Title:    "Cadastrar ponto de alimentação",
		Submit:   "Salvar ponto de alimentação",
		Fields: append(place("Nome do local"),
			FormField{Name: "endereco", Kind: KindText, Label: "Endereço", Required: true},
			FormField{Name: "horario", Kind: KindText, Label: "Horário das refeições"},
			FormField{Name: "capacidade", Kind: KindNumber, Label: "Refeições por dia"},
			FormField{Name: "refeicao", Kind: KindCheckbox, Label: "Tipo de refeição", Options: []string{"Café da manhã", "Almoço", "Lanche", "Jantar"}},
			FormField{Name: "voluntarios", Kind: KindSelect, Label: "Precisa de voluntários?", Options: []string{domain.VolunteersUrgent, "Sim", "Não"}},
			FormField{Name: "necessidades", Kind: KindCheckbox, Label: "Necessidades AGORA",
				Options: []string{"Alimentos", "Água", "Gás de cozinha", "Descartáveis", "Voluntários"}},
		),
	},
	domain.CategoryCommunity: {
		Category: domain.CategoryCommunity,
		Title:    "Informar comunidade atingida",
		Submit:   "Salvar comunidade",
		Fields: append(place("Comunidade / bairro"),
			FormField{Name: "endereco", Kind: KindText, Label: "Ponto de referência"},
			FormField{Name: "prioridade", Kind: KindSelect, Label: "Prioridade", Options: priorityOptions},
			FormField{Name: "familias", Kind: KindNumber, Label: "Famílias afetadas (aprox.)"},
			FormField{Name: "necessidades", Kind: KindCheckbox, Label: "Necessidades", Options: needsOptions},
			FormField{Name: "obs", Kind: KindTextarea, Label: "Observações"},
		),
	},
	domain.CategoryVolunteer: {
		Category: domain.CategoryVolunteer,
		Title:    "Oferecer ajuda",
		Submit:   "Quero ajudar",
		Fields: []FormField{
			{Name: "nome", Kind: KindText, Label: "Seu nome", Required: true},
			{Name: "telefone", Kind: KindTel, Label: "Telefone/WhatsApp", Placeholder: "(32) 99999-9999", Required: true},
			{Name: "bairro", Kind: KindText, Label: "Bairro"},
			{Name: "veiculo", Kind: KindSelect, Label: "Tem veículo?", Options: []string{domain.NoVehicle, "Carro", "Moto", "Caminhonete", "Caminhão", "Barco"}},
			{Name: "habilidade", Kind: KindCheckbox, Label: "Como pode ajudar",
				Options: []string{"Limpeza", "Cozinha", "Transporte", "Saúde", "Resgate", "Triagem de doações", "Apoio psicológico", "Construção"}},
			{Name: "disponibilidade", Kind: KindSelect, Label: "Disponibilidade", Options: []string{"Manhã", "Tarde", "Noite", "Integral", "Fins de semana"}},
		},
	},
}
