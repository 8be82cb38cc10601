package export

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/inkwellhq/resumepress/internal/resume"
)

type stubRenderer func(t resume.Template, data resume.Data, c resume.Customization) ([]byte, error)

func (f stubRenderer) Render(t resume.Template, data resume.Data, c resume.Customization) ([]byte, error) {
	return f(t, data, c)
}

func okRenderer() stubRenderer {
	return func(t resume.Template, data resume.Data, c resume.Customization) ([]byte, error) {
		return []byte("<html>" + string(t) + "</html>"), nil
	}
}

func okEngine() EngineFunc {
	return func(ctx context.Context, html []byte, opts Options) ([]byte, error) {
		return append([]byte("%PDF-"), html...), nil
	}
}

func serviceData() resume.Data {
	return resume.Data{
		PersonalInfo: resume.PersonalInfo{FullName: "Jane Q. Doe"},
	}
}

func TestServiceExport(t *testing.T) {
	svc := NewService(okRenderer(), okEngine(), Options{}, nil)

	artifact, err := svc.Export(context.Background(), resume.TemplateModern, serviceData(), resume.DefaultCustomization())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if artifact.Filename != "Jane_Q._Doe_Modern_Resume.pdf" {
		t.Fatalf("unexpected filename: %q", artifact.Filename)
	}
	if len(artifact.Data) == 0 {
		t.Fatal("artifact has no payload")
	}
	if svc.States()[resume.TemplateModern] != StateDone {
		t.Fatalf("state = %q, want done", svc.States()[resume.TemplateModern])
	}
}

func TestServiceExportRejectsSecondTrigger(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	engine := EngineFunc(func(ctx context.Context, html []byte, opts Options) ([]byte, error) {
		select {
		case <-started:
		default:
			close(started)
			<-release
		}
		return []byte("%PDF-"), nil
	})

	svc := NewService(okRenderer(), engine, Options{}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := svc.Export(context.Background(), resume.TemplateModern, serviceData(), resume.DefaultCustomization()); err != nil {
			t.Errorf("first export failed: %v", err)
		}
	}()

	<-started
	_, err := svc.Export(context.Background(), resume.TemplateModern, serviceData(), resume.DefaultCustomization())
	if KindFromError(err) != KindInFlight {
		t.Fatalf("expected in_flight rejection, got %v", err)
	}

	close(release)
	wg.Wait()

	// Once finished the template can be exported again.
	if _, err := svc.Export(context.Background(), resume.TemplateModern, serviceData(), resume.DefaultCustomization()); err != nil {
		t.Fatalf("re-export after completion failed: %v", err)
	}
}

func TestServiceDistinctTemplatesDoNotConflict(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	engine := EngineFunc(func(ctx context.Context, html []byte, opts Options) ([]byte, error) {
		select {
		case <-started:
		default:
			close(started)
			<-release
		}
		return []byte("%PDF-"), nil
	})

	svc := NewService(okRenderer(), engine, Options{}, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := svc.Export(context.Background(), resume.TemplateModern, serviceData(), resume.DefaultCustomization()); err != nil {
			t.Errorf("modern export failed: %v", err)
		}
	}()

	<-started
	if _, err := svc.Export(context.Background(), resume.TemplateMinimal, serviceData(), resume.DefaultCustomization()); err != nil {
		t.Fatalf("minimal export blocked by modern: %v", err)
	}
	close(release)
	wg.Wait()
}

func TestServiceExportFailureMarksFailed(t *testing.T) {
	engine := EngineFunc(func(ctx context.Context, html []byte, opts Options) ([]byte, error) {
		return nil, NewError(KindInternal, "render crashed", nil)
	})
	svc := NewService(okRenderer(), engine, Options{}, nil)

	if _, err := svc.Export(context.Background(), resume.TemplateCreative, serviceData(), resume.DefaultCustomization()); err == nil {
		t.Fatal("expected export failure")
	}
	if svc.States()[resume.TemplateCreative] != StateFailed {
		t.Fatalf("state = %q, want failed", svc.States()[resume.TemplateCreative])
	}

	// A failed template is no longer in flight and can be retried.
	svc.Engine = okEngine()
	if _, err := svc.Export(context.Background(), resume.TemplateCreative, serviceData(), resume.DefaultCustomization()); err != nil {
		t.Fatalf("retry after failure: %v", err)
	}
}

func TestServiceRendererFailureIsInternal(t *testing.T) {
	renderer := stubRenderer(func(tpl resume.Template, data resume.Data, c resume.Customization) ([]byte, error) {
		return nil, errors.New("template exploded")
	})
	svc := NewService(renderer, okEngine(), Options{}, nil)

	_, err := svc.Export(context.Background(), resume.TemplateModern, serviceData(), resume.DefaultCustomization())
	if KindFromError(err) != KindInternal {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestServiceExportAllIsolatesFailures(t *testing.T) {
	engine := EngineFunc(func(ctx context.Context, html []byte, opts Options) ([]byte, error) {
		if string(html) == "<html>creative</html>" {
			return nil, NewError(KindInternal, "creative crashed", nil)
		}
		return []byte("%PDF-"), nil
	})
	svc := NewService(okRenderer(), engine, Options{}, nil)

	results := svc.ExportAll(context.Background(), serviceData(), resume.DefaultCustomization())
	if len(results) != len(resume.Templates()) {
		t.Fatalf("expected %d results, got %d", len(resume.Templates()), len(results))
	}

	for _, res := range results {
		if res.Template == resume.TemplateCreative {
			if res.Err == nil {
				t.Fatal("creative should have failed")
			}
			continue
		}
		if res.Err != nil {
			t.Fatalf("%s failed: %v", res.Template, res.Err)
		}
		if len(res.Artifact.Data) == 0 {
			t.Fatalf("%s produced no artifact", res.Template)
		}
	}

	states := svc.States()
	if states[resume.TemplateCreative] != StateFailed {
		t.Fatalf("creative state = %q", states[resume.TemplateCreative])
	}
	if states[resume.TemplateMinimal] != StateDone {
		t.Fatalf("minimal state = %q", states[resume.TemplateMinimal])
	}
}

func TestServiceStatesDefaultIdle(t *testing.T) {
	svc := NewService(okRenderer(), okEngine(), Options{}, nil)
	for tpl, state := range svc.States() {
		if state != StateIdle {
			t.Fatalf("%s state = %q, want idle", tpl, state)
		}
	}
}

func TestServiceReset(t *testing.T) {
	svc := NewService(okRenderer(), okEngine(), Options{}, nil)
	if _, err := svc.Export(context.Background(), resume.TemplateModern, serviceData(), resume.DefaultCustomization()); err != nil {
		t.Fatalf("export: %v", err)
	}
	svc.Reset()
	if svc.States()[resume.TemplateModern] != StateIdle {
		t.Fatal("reset must clear the downloaded marker")
	}
}
