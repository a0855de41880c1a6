// Package service is the invocation boundary in front of the convergence
// loop. It owns everything that must succeed before a session may run:
// input validation, admission control, template resolution, and generator
// binding. Failures at this boundary come back as typed errors with no
// rounds run; once the loop starts, failures fold into the result instead
// (see convergence.Controller.Run).
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rickchristie/duet"
	"github.com/rickchristie/duet/convergence"
	"github.com/rickchristie/duet/hooks"
	"github.com/rickchristie/duet/models"
	"github.com/rickchristie/duet/ratelimit"
)

// Service turns SessionInputs into convergence sessions. Construct with
// New, configure with the With* methods, then call Converge per request.
// A Service is safe for concurrent Converge calls as long as its hooks
// are; each call gets its own Controller and Session.
type Service struct {
	templates  *duet.Store
	generators *models.Registry

	admitter      ratelimit.Admitter
	hooks         *hooks.Registry
	clock         duet.Clock
	schemaRetries int
	timeout       time.Duration
}

// New creates a Service resolving templates from templates and generator
// bindings from generators. Both must be non-nil. Admission defaults to
// allow-all and there is no session timeout until WithTimeout arms one.
func New(templates *duet.Store, generators *models.Registry) *Service {
	return &Service{
		templates:     templates,
		generators:    generators,
		admitter:      ratelimit.AllowAll{},
		hooks:         hooks.NewRegistry(),
		clock:         duet.RealClock{},
		schemaRetries: duet.DefaultSchemaRetries,
	}
}

// WithAdmitter sets the admission policy consulted before each session,
// keyed by SessionInputs.Client. Passing nil keeps the current policy.
func (s *Service) WithAdmitter(admitter ratelimit.Admitter) *Service {
	if admitter != nil {
		s.admitter = admitter
	}
	return s
}

// WithHooks replaces the hook registry handed to every controller this
// service builds. Passing nil keeps the current registry.
func (s *Service) WithHooks(registry *hooks.Registry) *Service {
	if registry != nil {
		s.hooks = registry
	}
	return s
}

// RegisterHook adds a hook to the service's registry. Returns the service
// for chaining.
func (s *Service) RegisterHook(hook any) *Service {
	s.hooks.Register(hook)
	return s
}

// WithClock replaces the time source handed to every controller.
func (s *Service) WithClock(clock duet.Clock) *Service {
	if clock != nil {
		s.clock = clock
	}
	return s
}

// WithSchemaRetries sets the malformed-feedback retry budget for every
// session this service starts.
func (s *Service) WithSchemaRetries(n int) *Service {
	s.schemaRetries = n
	return s
}

// WithTimeout arms a wall-clock deadline over each whole session. Zero
// disables the deadline. The loop has no internal timeout: when the
// deadline fires mid-session, the in-flight generator call fails and the
// session collapses to duet.StopErrorFallback with the rounds completed
// so far.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// Converge runs one convergence session for in.
//
// Input problems (empty idea, denied admission, unknown template or
// generator, binding without a model) return a nil result and a typed
// error; no generator is called. Past this boundary Converge always
// returns a result: loop failures are already folded into it with
// duet.StopErrorFallback and the cause in result.Err.
func (s *Service) Converge(ctx context.Context, in duet.SessionInputs) (*duet.ConvergenceResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if !s.admitter.Admit(in.Client) {
		return nil, fmt.Errorf("%w: client %q", duet.ErrRateLimited, in.Client)
	}

	tpl, err := s.templates.Resolve(in.TemplateID)
	if err != nil {
		return nil, err
	}
	writer, err := s.resolveBinding("writer", in.Writer)
	if err != nil {
		return nil, err
	}
	collaborator, err := s.resolveBinding("collaborator", in.Collaborator)
	if err != nil {
		return nil, err
	}

	ctrl := convergence.New(writer, collaborator, tpl).
		WithHooks(s.hooks).
		WithClock(s.clock).
		WithSchemaRetries(s.schemaRetries)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return ctrl.Run(ctx, in), nil
}

func (s *Service) resolveBinding(role string, b duet.Binding) (duet.Generator, error) {
	if b.Model == "" {
		return nil, fmt.Errorf("%s binding: %w", role, duet.ErrNoModel)
	}
	gen, err := s.generators.Resolve(b.Generator)
	if err != nil {
		return nil, fmt.Errorf("%s binding: %w", role, err)
	}
	return gen, nil
}
