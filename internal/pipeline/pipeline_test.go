package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/nao1215/eolallowlist/internal/model"
)

// mockStep is a test helper that implements the Step interface.
type mockStep struct {
	name      string
	doFunc    func(ctx context.Context, run *model.Run) error
	callCount int
}

// Do implements Step.Do.
func (m *mockStep) Do(ctx context.Context, run *model.Run) error {
	m.callCount++
	if m.doFunc != nil {
		return m.doFunc(ctx, run)
	}
	return nil
}

// Name implements Step.Name.
func (m *mockStep) Name() string {
	return m.name
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// TestPipelineNew tests the Pipeline constructor.
func TestPipelineNew(t *testing.T) {
	t.Parallel()

	t.Run("creates pipeline with default settings", func(t *testing.T) {
		t.Parallel()

		p := New()

		if p == nil {
			t.Fatal("expected non-nil pipeline")
		}
		if p.StepCount() != 0 {
			t.Errorf("expected 0 steps, got %d", p.StepCount())
		}
		if p.logger == nil {
			t.Error("expected default logger")
		}
	})

	t.Run("applies WithLogger option", func(t *testing.T) {
		t.Parallel()

		logger := quietLogger()
		p := New(WithLogger(logger))

		if p.logger != logger {
			t.Error("expected custom logger")
		}
	})
}

// TestPipelineAddStep tests adding steps to the pipeline.
func TestPipelineAddStep(t *testing.T) {
	t.Parallel()

	t.Run("adds single step", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddStep(&mockStep{name: "test-step"})

		if p.StepCount() != 1 {
			t.Errorf("expected 1 step, got %d", p.StepCount())
		}
	})

	t.Run("maintains step order", func(t *testing.T) {
		t.Parallel()

		p := New()
		p.AddSteps(&mockStep{name: "first"}, &mockStep{name: "second"})
		p.AddStep(&mockStep{name: "third"})

		expected := []string{"first", "second", "third"}
		if names := p.StepNames(); !slices.Equal(names, expected) {
			t.Errorf("got %v, expected %v", names, expected)
		}
	})
}

// TestPipelineExecute tests pipeline execution.
func TestPipelineExecute(t *testing.T) {
	t.Parallel()

	t.Run("executes all steps in order", func(t *testing.T) {
		t.Parallel()

		var order []string
		record := func(name string) *mockStep {
			return &mockStep{
				name: name,
				doFunc: func(_ context.Context, _ *model.Run) error {
					order = append(order, name)
					return nil
				},
			}
		}

		p := New(WithLogger(quietLogger()))
		p.AddSteps(record("fetch"), record("classify"), record("write"))

		run := model.NewRun("https://api.test")
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		expected := []string{"fetch", "classify", "write"}
		if !slices.Equal(order, expected) {
			t.Errorf("execution order %v, expected %v", order, expected)
		}
		if !slices.Equal(run.PerformedSteps, expected) {
			t.Errorf("performed steps %v, expected %v", run.PerformedSteps, expected)
		}
		if run.Failed() {
			t.Errorf("run should not be failed: %v", run.Error)
		}
		if run.FinishedAt.IsZero() {
			t.Error("expected FinishedAt to be set")
		}
	})

	t.Run("stops on first error", func(t *testing.T) {
		t.Parallel()

		stepErr := errors.New("no links")
		failing := &mockStep{
			name: "fetch",
			doFunc: func(_ context.Context, _ *model.Run) error {
				return stepErr
			},
		}
		after := &mockStep{name: "classify"}

		p := New(WithLogger(quietLogger()))
		p.AddSteps(failing, after)

		run := model.NewRun("https://api.test")
		err := p.Execute(context.Background(), run)

		if !errors.Is(err, stepErr) {
			t.Fatalf("expected step error, got %v", err)
		}
		if after.callCount != 0 {
			t.Error("expected following step to be skipped")
		}
		if !errors.Is(run.Error, stepErr) || run.ErrorMessage != "no links" {
			t.Errorf("error not recorded on run: %v / %q", run.Error, run.ErrorMessage)
		}
		if !slices.Equal(run.PerformedSteps, []string{"fetch"}) {
			t.Errorf("performed steps %v", run.PerformedSteps)
		}
		if run.FinishedAt.IsZero() {
			t.Error("expected FinishedAt to be set")
		}
	})

	t.Run("respects cancellation before a step", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		first := &mockStep{
			name: "fetch",
			doFunc: func(_ context.Context, _ *model.Run) error {
				cancel()
				return nil
			},
		}
		second := &mockStep{name: "classify"}

		p := New(WithLogger(quietLogger()))
		p.AddSteps(first, second)

		run := model.NewRun("https://api.test")
		err := p.Execute(ctx, run)

		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if second.callCount != 0 {
			t.Error("expected second step not to run")
		}
		if !errors.Is(run.Error, context.Canceled) {
			t.Errorf("expected cancellation recorded, got %v", run.Error)
		}
	})

	t.Run("empty pipeline succeeds", func(t *testing.T) {
		t.Parallel()

		run := model.NewRun("https://api.test")
		if err := New(WithLogger(quietLogger())).Execute(context.Background(), run); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
