// Package directory loads stored records and shapes them into category
// sections of cards for the browse view.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/jonboulle/clockwork"
)

// UnresolvedCity is shown when a record's city id has no match.
const UnresolvedCity = "—"

// State is the overall outcome of a load.
type State string

const (
	StateLoading State = "loading"
	StateEmpty   State = "empty"
	StateError   State = "error"
	StateReady   State = "ready"
)

// Filter narrows a load. Zero values mean "all".
type Filter struct {
	CityID   string
	Category domain.Category
}

// Section groups the cards of one category.
type Section struct {
	Category domain.Category
	Icon     string
	Label    string
	Count    int
	Cards    []Card
}

// Result is what the browse view renders. Cities holds the city reference
// rows fetched for the load, for the city filter.
type Result struct {
	State    State
	Error    string
	Sections []Section
	Cities   []domain.City
}

// Service reads the record store on behalf of the browse view.
type Service struct {
	store     domain.RecordStore
	limit     int
	renderers map[domain.Category]Renderer
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewService creates a directory service returning at most limit records per
// category.
func NewService(store domain.RecordStore, limit int, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	return &Service{
		store:     store,
		limit:     limit,
		renderers: Renderers,
		clock:     clockwork.NewRealClock(),
		logger:    logger,
		metrics:   metrics,
	}
}

// Renderer returns the card renderer bound to c.
func (s *Service) Renderer(c domain.Category) (Renderer, bool) {
	r, ok := s.renderers[c]
	return r, ok
}

// Cities returns every city sorted by name.
func (s *Service) Cities(ctx context.Context) ([]domain.City, error) {
	rows, err := s.store.Select(ctx, domain.CitiesQuery())
	if err != nil {
		return nil, &domain.RemoteQueryError{Collection: domain.CitiesCollection, Err: err}
	}
	cities := make([]domain.City, 0, len(rows))
	for _, row := range rows {
		c, err := domain.DecodeCity(row)
		if err != nil {
			return nil, &domain.RemoteQueryError{Collection: domain.CitiesCollection, Err: err}
		}
		cities = append(cities, c)
	}
	sort.Slice(cities, func(i, j int) bool { return cities[i].Name < cities[j].Name })
	return cities, nil
}

// Load fetches the filtered records and renders them. Any failing query
// discards everything fetched so far and yields the error state.
func (s *Service) Load(ctx context.Context, f Filter) Result {
	start := s.clock.Now()
	res := s.load(ctx, f)
	s.metrics.DirectoryLoadDuration.Observe(s.clock.Since(start).Seconds())
	s.metrics.DirectoryLoads.WithLabelValues(string(res.State)).Inc()
	return res
}

func (s *Service) load(ctx context.Context, f Filter) Result {
	cities, err := s.Cities(ctx)
	if err != nil {
		return s.failed(f, err)
	}
	names := make(map[string]string, len(cities))
	for _, c := range cities {
		names[c.ID.String()] = c.Name
	}

	categories := domain.Categories
	if f.Category != "" {
		if !f.Category.Valid() {
			res := s.failed(f, fmt.Errorf("categoria desconhecida: %s", f.Category))
			res.Cities = cities
			return res
		}
		categories = []domain.Category{f.Category}
	}

	var sections []Section
	for _, c := range categories {
		sec, err := s.section(ctx, c, f.CityID, names)
		if err != nil {
			res := s.failed(f, err)
			res.Cities = cities
			return res
		}
		if sec.Count > 0 {
			sections = append(sections, sec)
		}
	}
	if len(sections) == 0 {
		return Result{State: StateEmpty, Cities: cities}
	}
	return Result{State: StateReady, Sections: sections, Cities: cities}
}

func (s *Service) section(ctx context.Context, c domain.Category, cityID string, names map[string]string) (Section, error) {
	render, ok := s.renderers[c]
	if !ok {
		s.logger.Warn("category has no card renderer", "category", c)
		return Section{}, nil
	}

	records, err := s.List(ctx, c, cityID)
	if err != nil {
		return Section{}, err
	}

	sec := Section{
		Category: c,
		Icon:     c.Icon(),
		Label:    c.SectionLabel(),
		Count:    len(records),
		Cards:    make([]Card, 0, len(records)),
	}
	for _, rec := range records {
		sec.Cards = append(sec.Cards, render(rec, CityName(names, rec)))
	}
	return sec, nil
}

// List fetches and decodes the most recent records of c, newest first.
func (s *Service) List(ctx context.Context, c domain.Category, cityID string) ([]domain.Record, error) {
	rows, err := s.store.Select(ctx, domain.ListQuery(c, cityID, s.limit))
	if err != nil {
		return nil, &domain.RemoteQueryError{Collection: c.Collection(), Err: err}
	}
	records := make([]domain.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := domain.DecodeRecord(c, row)
		if err != nil {
			return nil, &domain.RemoteQueryError{Collection: c.Collection(), Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

// CityName returns the name of rec's city, or UnresolvedCity.
func CityName(names map[string]string, rec domain.Record) string {
	if n, ok := names[rec.Base().CityID.String()]; ok && n != "" {
		return n
	}
	return UnresolvedCity
}

func (s *Service) failed(f Filter, err error) Result {
	s.logger.Error("directory load failed",
		"city_id", f.CityID, "category", f.Category, "error", err)
	return Result{State: StateError, Error: err.Error()}
}
