package web

import (
	"github.com/couchcryptid/ajudejf/internal/directory"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/intake"
)

// Views toggled on the page.
const (
	viewHome     = "home"
	viewRegister = "register"
	viewBrowse   = "browse"
)

type page struct {
	View       string
	Categories []categoryOption
	Register   registerView
	Browse     browseView
}

type categoryOption struct {
	Tag      string
	Label    string
	Selected bool
}

type registerView struct {
	ShowCity         bool
	ShowCategory     bool
	ShowForm         bool
	ShowConfirmation bool

	City          string
	CityOptions   []string
	CategoryLabel string
	Forms         []formView
	Summary       string
	ShareURL      string
	Error         string
	Submitting    bool
}

type formView struct {
	Category string
	Title    string
	Submit   string
	Active   bool
	Fields   []fieldView
}

type fieldView struct {
	Name        string
	Kind        string
	Label       string
	Placeholder string
	Required    bool
	Value       string
	Options     []optionView
}

type optionView struct {
	Value   string
	Checked bool
}

type browseView struct {
	Cities   []cityOption
	Category string
	State    string
	Error    string
	Sections []directory.Section
}

type cityOption struct {
	ID       string
	Name     string
	Selected bool
}

func categoryOptions(selected domain.Category) []categoryOption {
	out := make([]categoryOption, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		out = append(out, categoryOption{Tag: string(c), Label: c.Label(), Selected: c == selected})
	}
	return out
}

// newRegisterView shapes a session state for the register step containers.
// Every category form is present; only the chosen one is visible and carries
// the last submitted values.
func newRegisterView(st intake.State, form func(domain.Category) (intake.Form, bool), cities []domain.City) registerView {
	v := registerView{
		ShowCity:         st.Step == intake.StepCity,
		ShowCategory:     st.Step == intake.StepCategory,
		ShowForm:         st.Step == intake.StepForm,
		ShowConfirmation: st.Step == intake.StepConfirmation,
		City:             st.City,
		Summary:          st.Summary,
		Error:            st.Error,
		Submitting:       st.Submitting,
	}
	if st.Category != "" {
		v.CategoryLabel = st.Category.Label()
	}
	if st.Summary != "" {
		v.ShareURL = domain.ShareURL(st.Summary)
	}
	for _, c := range cities {
		v.CityOptions = append(v.CityOptions, c.Name)
	}
	for _, c := range domain.Categories {
		f, ok := form(c)
		if !ok {
			continue
		}
		active := c == st.Category
		var raw domain.RawFields
		if active {
			raw = st.Raw
		}
		v.Forms = append(v.Forms, newFormView(f, active, raw))
	}
	return v
}

func newFormView(f intake.Form, active bool, raw domain.RawFields) formView {
	fv := formView{
		Category: string(f.Category),
		Title:    f.Title,
		Submit:   f.Submit,
		Active:   active,
		Fields:   make([]fieldView, 0, len(f.Fields)),
	}
	for _, field := range f.Fields {
		item := fieldView{
			Name:        field.Name,
			Kind:        string(field.Kind),
			Label:       field.Label,
			Placeholder: field.Placeholder,
			Required:    field.Required,
		}
		if field.Kind != intake.KindCheckbox {
			item.Value = raw.Text(field.Name)
		}
		for _, opt := range field.Options {
			item.Options = append(item.Options, optionView{Value: opt, Checked: raw.Has(field.Name, opt)})
		}
		fv.Fields = append(fv.Fields, item)
	}
	return fv
}

func newBrowseView(res directory.Result, f directory.Filter) browseView {
	v := browseView{
		Category: string(f.Category),
		State:    string(res.State),
		Error:    res.Error,
		Sections: res.Sections,
	}
	for _, c := range res.Cities {
		id := c.ID.String()
		v.Cities = append(v.Cities, cityOption{ID: id, Name: c.Name, Selected: id == f.CityID})
	}
	return v
}
