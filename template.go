package duet

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Template is the standing configuration for one kind of artifact: the
// instructions each role works under, the rubric the Collaborator scores
// against, and the default convergence policy. The loop reads templates and
// never mutates them; one Template can serve many concurrent sessions.
//
// Templates usually live in YAML:
//
//	name: email
//	writerInstructions: |
//	  You write clear, warm business emails. ...
//	collaboratorInstructions: |
//	  You are a demanding but constructive editor. ...
//	rubric:
//	  - label: Clarity
//	    description: The reader knows what happened and what to do next.
//	    weight: 3
//	  - label: Tone
//	    description: Matches the requested voice.
//	    weight: 2
//	policy:
//	  maxRounds: 4
//	  scoreThreshold: 8.5
//	  requireQuestionsResolved: true
type Template struct {
	// Name identifies the template in a [Store] and in session names.
	Name string `yaml:"name"`

	// WriterInstructions is the Writer's standing system prompt.
	WriterInstructions string `yaml:"writerInstructions"`

	// CollaboratorInstructions is the Collaborator's standing system prompt.
	CollaboratorInstructions string `yaml:"collaboratorInstructions"`

	// Rubric is the ordered list of scoring criteria shown to the
	// Collaborator, rendered as label, weight, and description.
	Rubric []RubricCriterion `yaml:"rubric"`

	// Policy holds the template-level convergence defaults. Session inputs
	// may override MaxRounds and ScoreThreshold.
	Policy ConvergencePolicy `yaml:"policy"`
}

// RubricCriterion is one scoring dimension.
type RubricCriterion struct {
	Label       string  `yaml:"label"`
	Description string  `yaml:"description"`
	Weight      float64 `yaml:"weight"`
}

// ConvergencePolicy is a template's convergence defaults.
//
// The two Require flags tighten the readiness bar through prompt guidance:
// when set, the Collaborator is told not to mark the draft ready while open
// questions remain, or while template-implied sections are missing. They
// shape what the Collaborator demands; the stop evaluation itself is
// unchanged by them.
type ConvergencePolicy struct {
	MaxRounds                 int     `yaml:"maxRounds"`
	ScoreThreshold            float64 `yaml:"scoreThreshold"`
	RequireQuestionsResolved  bool    `yaml:"requireQuestionsResolved"`
	RequireAllSectionsPresent bool    `yaml:"requireAllSectionsPresent"`
}

// Validate reports whether the template is usable.
func (t *Template) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil template", ErrInvalidTemplate)
	}
	if t.WriterInstructions == "" {
		return fmt.Errorf("%w: writerInstructions is empty", ErrInvalidTemplate)
	}
	if t.CollaboratorInstructions == "" {
		return fmt.Errorf("%w: collaboratorInstructions is empty", ErrInvalidTemplate)
	}
	for i, c := range t.Rubric {
		if c.Label == "" {
			return fmt.Errorf("%w: rubric[%d] has no label", ErrInvalidTemplate, i)
		}
	}
	return nil
}

// ParseTemplate decodes a YAML template and fills unset policy numbers with
// the package defaults, so a decoded template is always runnable as-is.
func ParseTemplate(data []byte) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTemplate, err.Error())
	}
	if t.Policy.MaxRounds <= 0 {
		t.Policy.MaxRounds = DefaultMaxRounds
	}
	if t.Policy.ScoreThreshold <= 0 {
		t.Policy.ScoreThreshold = DefaultScoreThreshold
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplate reads and parses a YAML template file.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template %q: %w", path, err)
	}
	t, err := ParseTemplate(data)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", path, err)
	}
	return t, nil
}

// Store resolves template ids for the service boundary. Registration is
// chainable; lookups are safe for concurrent use.
//
//	store := duet.NewStore().Register(emailTpl).Register(specTpl)
//	tpl, err := store.Resolve("email")
type Store struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewStore creates an empty template store.
func NewStore() *Store {
	return &Store{templates: map[string]*Template{}}
}

// Register adds a template under its Name. A template with the same name
// replaces the previous one.
func (s *Store) Register(t *Template) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[t.Name] = t
	return s
}

// RegisterFile loads a YAML template file and registers it.
func (s *Store) RegisterFile(path string) (*Store, error) {
	t, err := LoadTemplate(path)
	if err != nil {
		return s, err
	}
	return s.Register(t), nil
}

// Resolve returns the template registered under id, or ErrUnknownTemplate.
func (s *Store) Resolve(id string) (*Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
	}
	return t, nil
}
