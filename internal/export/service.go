package export

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/inkwellhq/resumepress/internal/resume"
)

// HTMLRenderer produces the laid-out document for one template variant.
type HTMLRenderer interface {
	Render(t resume.Template, data resume.Data, c resume.Customization) ([]byte, error)
}

// State is the per-template export state for the current session.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StateDone    State = "done"
	StateFailed  State = "failed"
)

// Artifact is a finished PDF ready for download. Data is always the complete
// file; a failed render never produces an Artifact.
type Artifact struct {
	Template resume.Template
	Filename string
	Data     []byte
}

// Result pairs one template with its export outcome.
type Result struct {
	Template resume.Template
	Artifact Artifact
	Err      error
}

// Service drives the render-then-print pipeline and tracks per-template
// state. Exports for distinct templates may run concurrently; a second
// trigger for a template already in flight is rejected with KindInFlight.
type Service struct {
	Renderer HTMLRenderer
	Engine   Engine
	Options  Options
	Logger   *log.Logger

	mu     sync.Mutex
	states map[resume.Template]State
}

// NewService creates an export service.
func NewService(renderer HTMLRenderer, engine Engine, opts Options, logger *log.Logger) *Service {
	return &Service{
		Renderer: renderer,
		Engine:   engine,
		Options:  opts,
		Logger:   logger,
		states:   make(map[resume.Template]State),
	}
}

// Export renders one variant and produces its PDF artifact. The in-flight
// flag is cleared on every outcome.
func (s *Service) Export(ctx context.Context, t resume.Template, data resume.Data, c resume.Customization) (Artifact, error) {
	if err := s.begin(t); err != nil {
		return Artifact{}, err
	}

	artifact, err := s.run(ctx, t, data, c)
	s.finish(t, err)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("pdf export failed", "template", t, "err", err)
		}
		return Artifact{}, err
	}
	return artifact, nil
}

// ExportAll exports every variant sequentially. Each export is independent:
// a failure is recorded in its Result and never blocks the remaining
// variants.
func (s *Service) ExportAll(ctx context.Context, data resume.Data, c resume.Customization) []Result {
	results := make([]Result, 0, len(resume.Templates()))
	for _, t := range resume.Templates() {
		artifact, err := s.Export(ctx, t, data, c)
		results = append(results, Result{Template: t, Artifact: artifact, Err: err})
	}
	return results
}

// States returns a snapshot of each template's session state.
func (s *Service) States() map[resume.Template]State {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[resume.Template]State, len(resume.Templates()))
	for _, t := range resume.Templates() {
		state, ok := s.states[t]
		if !ok {
			state = StateIdle
		}
		out[t] = state
	}
	return out
}

// Reset clears all per-template session state (the "downloaded" markers).
func (s *Service) Reset() {
	s.mu.Lock()
	s.states = make(map[resume.Template]State)
	s.mu.Unlock()
}

func (s *Service) begin(t resume.Template) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.states[t] == StateRunning {
		return NewError(KindInFlight, fmt.Sprintf("export for template %q already in progress", t), nil)
	}
	s.states[t] = StateRunning
	return nil
}

func (s *Service) finish(t resume.Template, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.states[t] = StateFailed
		return
	}
	s.states[t] = StateDone
}

func (s *Service) run(ctx context.Context, t resume.Template, data resume.Data, c resume.Customization) (Artifact, error) {
	html, err := s.Renderer.Render(t, data, c)
	if err != nil {
		return Artifact{}, NewError(KindInternal, fmt.Sprintf("template %q render failed", t), err)
	}

	pdf, err := s.Engine.Render(ctx, html, s.Options)
	if err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Template: t,
		Filename: PDFFilename(data.PersonalInfo.FullName, t),
		Data:     pdf,
	}, nil
}
