package postgrest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey           = "anon-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return NewClient(baseURL, testKey, 5*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_Select_BuildsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rest/v1/voluntarios", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "*", q.Get("select"))
		assert.Equal(t, "eq.7", q.Get("cidade_id"))
		assert.Equal(t, "created_at.desc", q.Get("order"))
		assert.Equal(t, "100", q.Get("limit"))
		assert.Equal(t, testKey, r.Header.Get("apikey"))
		assert.Equal(t, "Bearer "+testKey, r.Header.Get("Authorization"))

		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[{"id":1,"nome":"Ana"},{"id":2,"nome":"Bia"}]`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	rows, err := c.Select(context.Background(), domain.ListQuery(domain.CategoryVolunteer, "7", 100))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.JSONEq(t, `{"id":1,"nome":"Ana"}`, string(rows[0]))
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.StoreRequests.WithLabelValues("select", "success")), 0)
}

func TestClient_Select_EncodesSpacesAsPercent20(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "nome=eq.Juiz%20de%20Fora")
		assert.NotContains(t, r.URL.RawQuery, "+")
		assert.Empty(t, r.URL.Query().Get("order"))
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[{"id":7,"nome":"Juiz de Fora"}]`))
	}))
	defer srv.Close()

	rows, err := testClient(srv.URL).Select(context.Background(), domain.CityLookupQuery("Juiz de Fora"))
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestClient_Select_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	rows, err := testClient(srv.URL).Select(context.Background(), domain.CitiesQuery())
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestClient_Select_BackendError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"42P01","message":"relation \"public.abrigos\" does not exist","details":null,"hint":null}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.Select(context.Background(), domain.ListQuery(domain.CategoryShelter, "", 100))

	var berr *domain.BackendError
	require.ErrorAs(t, err, &berr)
	assert.Equal(t, http.StatusNotFound, berr.Status)
	assert.Equal(t, "42P01", berr.Code)
	assert.Equal(t, `relation "public.abrigos" does not exist`, err.Error())
	assert.InDelta(t, 1, testutil.ToFloat64(c.metrics.StoreRequests.WithLabelValues("select", "error")), 0)
}

func TestClient_Select_PlainTextError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable\n"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Select(context.Background(), domain.CitiesQuery())
	require.Error(t, err)
	assert.Equal(t, "upstream unavailable", err.Error())
}

func TestClient_Select_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"not":"an array"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Select(context.Background(), domain.CitiesQuery())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode cidades rows")
}

func TestClient_Insert(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/rest/v1/abrigos", r.URL.Path)
		assert.Equal(t, "return=minimal", r.Header.Get("Prefer"))
		assert.Equal(t, contentTypeJSON, r.Header.Get(headerContentType))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	raw := domain.RawFields{
		{Name: "nome_local", Value: domain.Scalar("Ginásio")},
		{Name: "telefone", Value: domain.Scalar("3232")},
		{Name: "endereco", Value: domain.Scalar("Rua A")},
		{Name: "vagas", Value: domain.Scalar("5")},
		{Name: "recursos", Value: domain.Scalar("Água")},
	}
	p, err := domain.NewPayload(domain.CategoryShelter, "7", raw)
	require.NoError(t, err)

	require.NoError(t, testClient(srv.URL).Insert(context.Background(), "abrigos", p))
	assert.Equal(t, "7", got["cidade_id"])
	assert.Equal(t, "5", got["vagas"])
	assert.Equal(t, []any{"Água"}, got["recursos"])
}

func TestClient_Insert_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"22P02","message":"invalid input syntax for type integer: \"cinco\""}`))
	}))
	defer srv.Close()

	err := testClient(srv.URL).Insert(context.Background(), "abrigos", &domain.Payload{})
	require.Error(t, err)
	assert.Equal(t, `invalid input syntax for type integer: "cinco"`, err.Error())
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := testClient(url).Select(context.Background(), domain.CitiesQuery())
	require.Error(t, err)
	var berr *domain.BackendError
	assert.False(t, errors.As(err, &berr))
}

func TestClient_CheckReadiness(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/cidades", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		if r.Header.Get("apikey") != testKey {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"Invalid API key"}`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	assert.NoError(t, testClient(srv.URL).CheckReadiness(context.Background()))

	bad := NewClient(srv.URL, "wrong", time.Second, observability.NewMetricsForTesting(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	err := bad.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Invalid API key", err.Error())
}
