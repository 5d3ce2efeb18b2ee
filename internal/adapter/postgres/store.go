// Package postgres implements the record store directly on the Postgres
// database behind Supabase, for deployments that reach it without the REST
// gateway.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of *pgxpool.Pool the store needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Ping(ctx context.Context) error
}

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store implements domain.RecordStore with SQL. Rows are returned as JSON
// objects so both backends hand the same shape to the domain decoder.
type Store struct {
	q       Querier
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewStore creates a store on q.
func NewStore(q Querier, metrics *observability.Metrics, logger *slog.Logger) *Store {
	return &Store{q: q, metrics: metrics, logger: logger}
}

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// Select runs q and returns the matching rows.
func (s *Store) Select(ctx context.Context, q domain.Query) ([]json.RawMessage, error) {
	sb := psql.Select("row_to_json(t)").From(ident(q.Collection) + " t")
	for _, f := range q.Filters {
		// Compare as text so numeric and text ids filter alike.
		sb = sb.Where(squirrel.Expr("t."+ident(f.Column)+"::text = ?", f.Value))
	}
	if q.OrderBy != "" {
		dir := "ASC"
		if q.Descending {
			dir = "DESC"
		}
		sb = sb.OrderBy("t." + ident(q.OrderBy) + " " + dir)
	}
	if q.Limit > 0 {
		sb = sb.Limit(uint64(q.Limit))
	}

	sql, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select %s: %w", q.Collection, err)
	}

	start := time.Now()
	out, err := s.query(ctx, sql, args)
	s.observe("select", start, err)
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (s *Store) query(ctx context.Context, sql string, args []any) ([]json.RawMessage, error) {
	rows, err := s.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []json.RawMessage
	for rows.Next() {
		var b []byte
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, json.RawMessage(b))
	}
	return out, rows.Err()
}

// Insert writes one row into collection. Values travel as one JSON document
// and are converted to column types by json_populate_record, the same
// coercion the REST gateway applies.
func (s *Store) Insert(ctx context.Context, collection string, p *domain.Payload) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	cols := make([]string, 0, len(p.Columns()))
	for _, c := range p.Columns() {
		cols = append(cols, ident(c))
	}
	table := ident(collection)
	source := squirrel.Select(cols...).
		Suffix("FROM json_populate_record(NULL::"+table+", ?::json)", doc)

	sql, args, err := psql.Insert(table).Columns(cols...).Select(source).ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", collection, err)
	}

	start := time.Now()
	_, err = s.q.Exec(ctx, sql, args...)
	s.observe("insert", start, err)
	if err != nil {
		s.logger.Warn("insert failed", "table", collection, "error", err)
		return mapError(err)
	}
	return nil
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.q.Ping(ctx)
}

func (s *Store) observe(op string, start time.Time, err error) {
	s.metrics.StoreDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	s.metrics.StoreRequests.WithLabelValues(op, outcome).Inc()
}

// mapError turns server errors into domain.BackendError so the user sees the
// database message; connection errors pass through wrapped.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &domain.BackendError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return fmt.Errorf("database: %w", err)
}
