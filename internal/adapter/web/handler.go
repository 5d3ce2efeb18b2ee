// Package web serves the intake wizard and the directory view as server
// rendered HTML.
package web

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/couchcryptid/ajudejf/internal/directory"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/intake"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// SessionCookie names the cookie holding the intake session id.
const SessionCookie = "ajudejf_session"

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// Handler renders the wizard and the directory.
type Handler struct {
	controller   *intake.Controller
	sessions     *intake.SessionStore
	directory    *directory.Service
	cookieSecure bool
	logger       *slog.Logger
}

// NewHandler creates the web handler.
func NewHandler(
	controller *intake.Controller,
	sessions *intake.SessionStore,
	dir *directory.Service,
	cookieSecure bool,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		controller:   controller,
		sessions:     sessions,
		directory:    dir,
		cookieSecure: cookieSecure,
		logger:       logger,
	}
}

// Routes returns the router serving every page and wizard transition.
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(h.logger))

	r.Get("/", h.home)
	r.Get("/cadastro", h.register)
	r.Post("/cadastro/cidade", h.selectCity)
	r.Post("/cadastro/categoria", h.selectCategory)
	r.Post("/cadastro/enviar", h.submit)
	r.Post("/cadastro/novo", h.newEntry)
	r.Post("/cadastro/voltar", h.back)
	r.Get("/consulta", h.browse)
	return r
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, page{View: viewHome, Categories: categoryOptions("")})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	st := s.State()

	cities, err := h.directory.Cities(r.Context())
	if err != nil {
		h.logger.Warn("load city suggestions", "error", err)
	}
	h.render(w, page{
		View:       viewRegister,
		Categories: categoryOptions(st.Category),
		Register:   newRegisterView(st, h.controller.Form, cities),
	})
}

func (h *Handler) selectCity(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	h.transition(w, r, s, h.controller.SelectCity(s, r.PostFormValue("cidade")))
}

func (h *Handler) selectCategory(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	h.transition(w, r, s, h.controller.SelectCategory(s, r.PostFormValue("categoria")))
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	pairs, err := readFormPairs(w, r)
	if err != nil {
		h.logger.Warn("malformed submission", "session", s.ID, "error", err)
		http.Error(w, "Formulário inválido.", http.StatusBadRequest)
		return
	}
	h.transition(w, r, s, h.controller.Submit(r.Context(), s, domain.CollectFields(pairs)))
}

func (h *Handler) newEntry(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	h.transition(w, r, s, h.controller.NewEntry(s))
}

func (h *Handler) back(w http.ResponseWriter, r *http.Request) {
	s := h.session(w, r)
	n, err := strconv.Atoi(r.PostFormValue("passo"))
	if err != nil {
		http.Error(w, "Passo inválido.", http.StatusBadRequest)
		return
	}
	h.transition(w, r, s, h.controller.Back(s, intake.Step(n)))
}

// transition redirects back to the register view. Failures the user must see
// are already recorded on the session state.
func (h *Handler) transition(w http.ResponseWriter, r *http.Request, s *intake.Session, err error) {
	if errors.Is(err, intake.ErrInvalidStep) {
		h.logger.Debug("ignored wizard transition", "path", r.URL.Path, "session", s.ID, "step", s.State().Step)
	}
	http.Redirect(w, r, "/cadastro", http.StatusSeeOther)
}

func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	f := directory.Filter{
		CityID:   r.URL.Query().Get("cidade"),
		Category: domain.Category(r.URL.Query().Get("categoria")),
	}

	res := h.directory.Load(r.Context(), f)
	h.render(w, page{
		View:       viewBrowse,
		Categories: categoryOptions(f.Category),
		Browse:     newBrowseView(res, f),
	})
}

// session returns the caller's session, starting one when the cookie is
// missing or expired.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *intake.Session {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if s, ok := h.sessions.Get(c.Value); ok {
			return s
		}
	}
	s := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

func (h *Handler) render(w http.ResponseWriter, p page) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		h.logger.Error("render page", "view", p.View, "error", err)
		http.Error(w, "Erro interno.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
