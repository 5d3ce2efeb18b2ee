package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/couchcryptid/ajudejf/internal/city"
	"github.com/couchcryptid/ajudejf/internal/directory"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/intake"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- in-memory record store ---

type memStore struct {
	mu        sync.Mutex
	tables    map[string][]string
	selectErr map[string]error
	insertErr error
	inserts   map[string][]string
	selects   map[string]int
}

func newMemStore() *memStore {
	return &memStore{
		tables: map[string][]string{
			"cidades": {
				`{"id": 7, "nome": "Juiz de Fora"}`,
				`{"id": 8, "nome": "Matias Barbosa"}`,
			},
		},
		selectErr: map[string]error{},
		inserts:   map[string][]string{},
		selects:   map[string]int{},
	}
}

func (m *memStore) Select(_ context.Context, q domain.Query) ([]json.RawMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selects[q.Collection]++
	if err := m.selectErr[q.Collection]; err != nil {
		return nil, err
	}
	var out []json.RawMessage
	for _, raw := range m.tables[q.Collection] {
		var row map[string]any
		if err := json.Unmarshal([]byte(raw), &row); err != nil {
			return nil, err
		}
		match := true
		for _, f := range q.Filters {
			if fmt.Sprint(row[f.Column]) != f.Value {
				match = false
			}
		}
		if match {
			out = append(out, json.RawMessage(raw))
		}
	}
	return out, nil
}

func (m *memStore) Insert(_ context.Context, collection string, p *domain.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	m.inserts[collection] = append(m.inserts[collection], string(b))
	m.tables[collection] = append(m.tables[collection], string(b))
	return nil
}

func (m *memStore) inserted(collection string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.inserts[collection]...)
}

// --- helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestHandler(store *memStore) *Handler {
	logger := discardLogger()
	metrics := observability.NewMetricsForTesting()
	resolver := city.NewStoreResolver(store, logger)
	ctrl := intake.NewController(resolver, store, nil, time.UTC, logger, metrics)
	sessions := intake.NewSessionStore(time.Hour, clockwork.NewFakeClock(), metrics)
	dir := directory.NewService(store, domain.DefaultListLimit, logger, metrics)
	return NewHandler(ctrl, sessions, dir, false, logger)
}

type browser struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
}

func newBrowser(t *testing.T, h *Handler) *browser {
	t.Helper()
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, srv: srv, client: &http.Client{Jar: jar}}
}

func (b *browser) get(path string) string {
	b.t.Helper()
	resp, err := b.client.Get(b.srv.URL + path)
	require.NoError(b.t, err)
	return b.read(resp)
}

func (b *browser) post(path, body string) string {
	b.t.Helper()
	resp, err := b.client.Post(b.srv.URL+path, "application/x-www-form-urlencoded", strings.NewReader(body))
	require.NoError(b.t, err)
	return b.read(resp)
}

func (b *browser) read(resp *http.Response) string {
	b.t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	require.Equal(b.t, http.StatusOK, resp.StatusCode, string(body))
	return string(body)
}

func visible(id string) string { return `<div id="` + id + `" class="step" >` }

const shelterForm = "nome_local=Gin%C3%A1sio+Municipal&responsavel=&telefone=%2832%29+99999-0000" +
	"&endereco=Rua+A&vagas=40&recursos=%C3%81gua&recursos=Cobertas"

// --- tests ---

func TestHomeView(t *testing.T) {
	b := newBrowser(t, newTestHandler(newMemStore()))

	body := b.get("/")

	assert.Contains(t, body, `<section id="home" >`)
	assert.Contains(t, body, `<section id="register" hidden>`)
	assert.Contains(t, body, `<section id="browse" hidden>`)
}

func TestSessionCookie(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(newMemStore()).Routes())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/cadastro")
	require.NoError(t, err)
	defer resp.Body.Close()

	var session *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, session.SameSite)
	assert.Equal(t, "/", session.Path)
	assert.NotEmpty(t, session.Value)
}

func TestRegisterWizard(t *testing.T) {
	store := newMemStore()
	b := newBrowser(t, newTestHandler(store))

	body := b.get("/cadastro")
	assert.Contains(t, body, visible("step-city"))
	assert.Contains(t, body, `<option value="Juiz de Fora">`)

	body = b.post("/cadastro/cidade", "cidade=Juiz+de+Fora")
	assert.Contains(t, body, visible("step-category"))
	assert.Contains(t, body, "📍 Juiz de Fora")

	body = b.post("/cadastro/categoria", "categoria=abrigo")
	assert.Contains(t, body, visible("step-form"))
	assert.Contains(t, body, "🏠 Abrigo")

	body = b.post("/cadastro/enviar", shelterForm)
	assert.Contains(t, body, visible("step-confirmation"))
	assert.Contains(t, body, "• Local: Ginásio Municipal")
	assert.Contains(t, body, "• Recursos disponíveis: Água, Cobertas")
	assert.NotContains(t, body, "• Responsável")
	assert.Contains(t, body, `href="https://wa.me/?text=%3D%3D%3D%20AJUDE%20JF`)
	assert.Contains(t, body, "Texto copiado!")

	require.Equal(t, []string{
		`{"cidade_id":"7","nome_local":"Ginásio Municipal","telefone":"(32) 99999-0000",` +
			`"endereco":"Rua A","vagas":"40","recursos":["Água","Cobertas"]}`,
	}, store.inserted("abrigos"))

	body = b.post("/cadastro/novo", "")
	assert.Contains(t, body, visible("step-city"))
	assert.Contains(t, body, `name="cidade" list="cidades" value=""`)
}

func TestSubmitFailureKeepsValues(t *testing.T) {
	store := newMemStore()
	store.insertErr = &domain.BackendError{Status: 409, Message: "duplicate key"}
	b := newBrowser(t, newTestHandler(store))

	b.post("/cadastro/cidade", "cidade=Juiz+de+Fora")
	b.post("/cadastro/categoria", "categoria=abrigo")
	body := b.post("/cadastro/enviar", shelterForm)

	assert.Contains(t, body, visible("step-form"))
	assert.Contains(t, body, "Erro ao salvar: duplicate key. Tente novamente.")
	assert.Contains(t, body, `name="nome_local" value="Ginásio Municipal"`)
	assert.Contains(t, body, `name="recursos" value="Cobertas" checked>`)
	assert.Contains(t, body, `name="recursos" value="Colchões" >`)

	store.mu.Lock()
	store.insertErr = nil
	store.mu.Unlock()

	body = b.post("/cadastro/enviar", shelterForm)
	assert.Contains(t, body, visible("step-confirmation"))
	assert.NotContains(t, body, "Erro ao salvar")
	assert.Len(t, store.inserted("abrigos"), 1)
}

func TestSubmitUnknownCity(t *testing.T) {
	store := newMemStore()
	b := newBrowser(t, newTestHandler(store))

	b.post("/cadastro/cidade", "cidade=Gotham")
	b.post("/cadastro/categoria", "categoria=voluntario")
	body := b.post("/cadastro/enviar", "nome=Ana&telefone=32999990000")

	assert.Contains(t, body, visible("step-form"))
	assert.Contains(t, body, "Erro ao salvar: Cidade não encontrada: Gotham. Tente novamente.")
	assert.Empty(t, store.inserted("voluntarios"))
}

func TestEmptyCityStaysOnCityStep(t *testing.T) {
	b := newBrowser(t, newTestHandler(newMemStore()))

	body := b.post("/cadastro/cidade", "cidade=+++")

	assert.Contains(t, body, visible("step-city"))
	assert.Contains(t, body, "Informe a cidade.")
}

func TestUnknownCategoryStaysOnCategoryStep(t *testing.T) {
	b := newBrowser(t, newTestHandler(newMemStore()))

	b.post("/cadastro/cidade", "cidade=Juiz+de+Fora")
	body := b.post("/cadastro/categoria", "categoria=hospital")

	assert.Contains(t, body, visible("step-category"))
}

func TestBackKeepsCity(t *testing.T) {
	b := newBrowser(t, newTestHandler(newMemStore()))

	b.post("/cadastro/cidade", "cidade=Juiz+de+Fora")
	b.post("/cadastro/categoria", "categoria=doacao")
	body := b.post("/cadastro/voltar", "passo=1")

	assert.Contains(t, body, visible("step-city"))
	assert.Contains(t, body, `name="cidade" list="cidades" value="Juiz de Fora"`)
}

func TestBackRejectsBadStep(t *testing.T) {
	srv := httptest.NewServer(newTestHandler(newMemStore()).Routes())
	defer srv.Close()

	resp, err := http.PostForm(srv.URL+"/cadastro/voltar", url.Values{"passo": {"x"}})
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBrowseEscapesUserContent(t *testing.T) {
	store := newMemStore()
	store.tables["voluntarios"] = []string{
		`{"id": 1, "cidade_id": 7, "nome": "<script>alert(\"x\")</script> & co", "telefone": "32 99999-1111"}`,
	}
	b := newBrowser(t, newTestHandler(store))

	body := b.get("/consulta?categoria=voluntario")

	assert.Contains(t, body, `<section id="browse" >`)
	assert.Contains(t, body, `data-state="ready"`)
	assert.Contains(t, body, "🙋 Voluntários (1)")
	assert.Contains(t, body, "&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; co")
	assert.NotContains(t, body, "<script>alert")
	assert.Contains(t, body, `href="https://wa.me/5532999991111"`)
}

func TestBrowseFiltersByCity(t *testing.T) {
	store := newMemStore()
	store.tables["voluntarios"] = []string{
		`{"id": 1, "cidade_id": 7, "nome": "Ana"}`,
		`{"id": 2, "cidade_id": 8, "nome": "Bia"}`,
	}
	b := newBrowser(t, newTestHandler(store))

	body := b.get("/consulta?cidade=8&categoria=voluntario")

	assert.Contains(t, body, "🙋 Voluntários (1)")
	assert.Contains(t, body, "Bia")
	assert.NotContains(t, body, "Ana")
	assert.Contains(t, body, `<option value="8" selected>Matias Barbosa</option>`)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Equal(t, 1, store.selects["cidades"], "browse fetches cities once")
}

func TestBrowseEmptyState(t *testing.T) {
	b := newBrowser(t, newTestHandler(newMemStore()))

	body := b.get("/consulta")

	assert.Contains(t, body, `data-state="empty"`)
	assert.Contains(t, body, "Nenhum cadastro encontrado.")
}

func TestBrowseErrorState(t *testing.T) {
	store := newMemStore()
	store.tables["abrigos"] = []string{`{"id": 1, "cidade_id": 7, "nome_local": "Ginásio"}`}
	store.selectErr["pontos_doacao"] = &domain.BackendError{Status: 500, Message: "boom"}
	b := newBrowser(t, newTestHandler(store))

	body := b.get("/consulta")

	assert.Contains(t, body, `data-state="error"`)
	assert.Contains(t, body, "Erro ao carregar: boom")
	assert.NotContains(t, body, "Ginásio")
}

func TestParseFormPairs(t *testing.T) {
	pairs, err := parseFormPairs("b=2&a=1&b=3&&c=a+b%26&d")
	require.NoError(t, err)

	assert.Equal(t, []domain.FormPair{
		{Name: "b", Value: "2"},
		{Name: "a", Value: "1"},
		{Name: "b", Value: "3"},
		{Name: "c", Value: "a b&"},
		{Name: "d", Value: ""},
	}, pairs)

	_, err = parseFormPairs("a=%zz")
	assert.Error(t, err)
}
