// Package intake drives the registration wizard: city, category, form and
// confirmation.
package intake

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/couchcryptid/ajudejf/internal/city"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
	"github.com/jonboulle/clockwork"
)

// ErrInvalidStep is returned for a transition the current step does not allow.
var ErrInvalidStep = errors.New("invalid step transition")

// Publisher announces accepted submissions.
type Publisher interface {
	PublishSubmission(ctx context.Context, event domain.SubmissionEvent) error
}

// Controller applies wizard transitions to sessions.
type Controller struct {
	resolver  city.Resolver
	store     domain.RecordStore
	publisher Publisher
	forms     map[domain.Category]Form
	loc       *time.Location
	clock     clockwork.Clock
	logger    *slog.Logger
	metrics   *observability.Metrics

	pending sync.WaitGroup
}

// NewController creates a controller. publisher may be nil.
func NewController(
	resolver city.Resolver,
	store domain.RecordStore,
	publisher Publisher,
	loc *time.Location,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Controller {
	return &Controller{
		resolver:  resolver,
		store:     store,
		publisher: publisher,
		forms:     Forms,
		loc:       loc,
		clock:     clockwork.NewRealClock(),
		logger:    logger,
		metrics:   metrics,
	}
}

// Form returns the form bound to c.
func (c *Controller) Form(cat domain.Category) (Form, bool) {
	f, ok := c.forms[cat]
	return f, ok
}

// SelectCity stores the chosen city and moves to the category step.
func (c *Controller) SelectCity(s *Session, name string) error {
	name = strings.TrimSpace(name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Step != StepCity || s.state.Submitting {
		return ErrInvalidStep
	}
	if name == "" {
		s.state.Error = "Informe a cidade."
		return domain.ErrValidation
	}
	if s.state.City != name {
		s.state.Raw = nil
	}
	s.state.City = name
	s.state.Error = ""
	s.state.Step = StepCategory
	return nil
}

// SelectCategory stores the chosen category and moves to the form step. A
// category without a bound form leaves the session on the category step; the
// gap is logged, not reported to the user.
func (c *Controller) SelectCategory(s *Session, tag string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Step != StepCategory || s.state.Submitting {
		return ErrInvalidStep
	}
	cat := domain.Category(tag)
	if _, ok := c.forms[cat]; !ok {
		c.logger.Warn("category has no form bound", "category", tag, "session", s.ID)
		return nil
	}
	if s.state.Category != cat {
		s.state.Raw = nil
	}
	s.state.Category = cat
	s.state.Error = ""
	s.state.Step = StepForm
	return nil
}

// Back returns to an earlier step, keeping every value chosen so far.
func (c *Controller) Back(s *Session, to Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.state.Step
	if s.state.Submitting || cur == StepConfirmation || to < StepCity || to >= cur {
		return ErrInvalidStep
	}
	s.state.Step = to
	s.state.Error = ""
	return nil
}

// NewEntry clears the session and returns to the city step.
func (c *Controller) NewEntry(s *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Submitting {
		return domain.ErrBusy
	}
	s.state = newState()
	return nil
}

// Submit resolves the city, inserts the record and moves to the confirmation
// step. On failure the session stays on the form step with raw kept and an
// inline error message set; the same session can be resubmitted.
func (c *Controller) Submit(ctx context.Context, s *Session, raw domain.RawFields) error {
	s.mu.Lock()
	if s.state.Submitting {
		cat := s.state.Category
		s.mu.Unlock()
		c.metrics.Submissions.WithLabelValues(string(cat), "busy").Inc()
		return domain.ErrBusy
	}
	if s.state.Step != StepForm {
		s.mu.Unlock()
		return ErrInvalidStep
	}
	s.state.Submitting = true
	s.state.Error = ""
	s.state.Raw = raw
	cityName, cat := s.state.City, s.state.Category
	s.mu.Unlock()

	start := c.clock.Now()
	summary, err := c.submit(ctx, cityName, cat, raw)
	c.metrics.SubmissionDuration.Observe(c.clock.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Submitting = false
	if err != nil {
		c.metrics.Submissions.WithLabelValues(string(cat), outcome(err)).Inc()
		c.logger.Warn("submission failed",
			"category", cat, "table", cat.Collection(), "city", cityName, "error", err)
		s.state.Error = FailureMessage(err)
		return err
	}
	c.metrics.Submissions.WithLabelValues(string(cat), "success").Inc()
	c.logger.Info("submission saved", "category", cat, "table", cat.Collection(), "city", cityName)
	s.state.Summary = summary
	s.state.Step = StepConfirmation
	return nil
}

func (c *Controller) submit(ctx context.Context, cityName string, cat domain.Category, raw domain.RawFields) (string, error) {
	cityID, err := c.resolver.Resolve(ctx, cityName)
	if err != nil {
		return "", err
	}
	payload, err := domain.NewPayload(cat, cityID, raw)
	if err != nil {
		return "", err
	}
	collection := cat.Collection()
	if err := c.store.Insert(ctx, collection, payload); err != nil {
		return "", &domain.RemoteInsertError{Collection: collection, Err: err}
	}

	summary := domain.BuildSummary(cityName, cat, raw, c.loc)
	c.publish(ctx, domain.NewSubmissionEvent(cat, cityName, cityID, payload, summary))
	return summary, nil
}

// publish is best effort and runs in the background: the record is already
// stored and the response does not wait on the broker.
func (c *Controller) publish(ctx context.Context, event domain.SubmissionEvent) {
	if c.publisher == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		if err := c.publisher.PublishSubmission(ctx, event); err != nil {
			c.logger.Error("publish submission event", "category", event.Category, "error", err)
		}
	}()
}

// Wait blocks until background event publishes have finished.
func (c *Controller) Wait() {
	c.pending.Wait()
}

// FailureMessage is the inline text shown for a failed submission.
func FailureMessage(err error) string {
	return "Erro ao salvar: " + err.Error() + ". Tente novamente."
}

func outcome(err error) string {
	var insertErr *domain.RemoteInsertError
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "city_not_found"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrConfigurationGap):
		return "configuration_gap"
	case errors.As(err, &insertErr):
		return "insert_error"
	default:
		return "error"
	}
}
