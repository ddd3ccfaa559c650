package sim

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/render"
)

type recorder struct {
	frames []int
	last   *render.Frame
}

func (r *recorder) OnFrame(n int, _ float64, f *render.Frame) {
	r.frames = append(r.frames, n)
	r.last = f
}

func testAnimator(t *testing.T) *Animator {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	a, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	return a
}

func TestFromConfigRejectsInvalid(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Threshold = 0
	if _, err := FromConfig(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Mode = "plasma"
	if _, err := FromConfig(cfg); err == nil {
		t.Error("expected unknown mode error")
	}
}

func TestBuildSceneMotion(t *testing.T) {
	tests := []struct {
		name   string
		motion string
		blobs  int
	}{
		{"bounce", "bounce", 5},
		{"classic orbit", "orbit", 5},
		{"orbit swarm", "orbit", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Motion = tt.motion
			cfg.Blobs = tt.blobs
			s, err := BuildScene(cfg)
			if err != nil {
				t.Fatalf("BuildScene: %v", err)
			}
			if s.Len() != tt.blobs {
				t.Errorf("Len() = %d, want %d", s.Len(), tt.blobs)
			}
			if s.Motion().Name() != tt.motion {
				t.Errorf("motion = %s, want %s", s.Motion().Name(), tt.motion)
			}
		})
	}
}

func TestStepFrameShape(t *testing.T) {
	a := testAnimator(t)
	for _, m := range render.Modes() {
		if err := a.SetMode(m); err != nil {
			t.Fatalf("SetMode(%s): %v", m, err)
		}
		f := a.Step(0.05, 12, 40)
		if f.Rows != 12 || f.Cols != 40 {
			t.Errorf("%s: frame %dx%d, want 12x40", m, f.Rows, f.Cols)
		}
		lines := strings.Split(f.String(), "\n")
		if len(lines) != 12 {
			t.Errorf("%s: %d lines, want 12", m, len(lines))
		}
	}
}

func TestStepSameSeedSameFrames(t *testing.T) {
	a, b := testAnimator(t), testAnimator(t)
	for i := 0; i < 20; i++ {
		fa := a.Step(0.05, 20, 60)
		fb := b.Step(0.05, 20, 60)
		if fa.String() != fb.String() {
			t.Fatalf("frames diverged at tick %d", i)
		}
	}
}

func TestRenderDoesNotAdvance(t *testing.T) {
	a := testAnimator(t)
	before := a.Scene().Blobs()
	a.Render(10, 10)
	after := a.Scene().Blobs()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("blob %d moved during Render", i)
		}
	}
	if a.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", a.Frames())
	}
}

func TestObserversAndReset(t *testing.T) {
	a := testAnimator(t)
	rec := &recorder{}
	a.AddObserver(rec)

	for i := 0; i < 3; i++ {
		a.Step(0.1, 5, 5)
	}
	if len(rec.frames) != 3 || rec.frames[2] != 3 {
		t.Errorf("observer frames = %v", rec.frames)
	}
	if rec.last == nil || rec.last.Rows != 5 {
		t.Error("observer missed the frame")
	}

	a.Reset()
	if a.Frames() != 0 || a.Scene().Time() != 0 {
		t.Errorf("reset left frames=%d t=%v", a.Frames(), a.Scene().Time())
	}
}

func TestNextModeWraps(t *testing.T) {
	a := testAnimator(t)
	start := a.Mode()
	for range render.Modes() {
		a.NextMode()
	}
	if a.Mode() != start {
		t.Errorf("mode after full cycle = %s, want %s", a.Mode(), start)
	}
}

func TestCycleModes(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.CycleModes = true
	cfg.CycleInterval = 0.25
	a, err := FromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 6; i++ {
		a.Step(0.1, 4, 4)
	}
	if a.Mode() == render.ModeGradient {
		t.Error("mode did not cycle")
	}
	if a.Mode() != a.Cycler().Mode() {
		t.Errorf("renderer %s out of sync with cycler %s", a.Mode(), a.Cycler().Mode())
	}
}

func TestRun(t *testing.T) {
	a := testAnimator(t)
	for _, m := range DefaultMetrics() {
		a.AddMetric(m)
	}

	result, err := a.Run(context.Background(), RunConfig{Rows: 20, Cols: 40, Dt: 0.05, Frames: 30})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Frames != 30 || len(result.FrameTimes) != 30 || len(result.Coverage) != 30 {
		t.Errorf("got %d frames, %d times, %d coverage", result.Frames, len(result.FrameTimes), len(result.Coverage))
	}
	for _, name := range []string{"frame_ms", "coverage", "peak_field"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("missing metric %s", name)
		}
	}
	if result.Metrics["peak_field"] <= 0 {
		t.Errorf("peak_field = %v, want > 0", result.Metrics["peak_field"])
	}
	if result.Last == nil {
		t.Error("no last frame")
	}
}

func TestRunCancelled(t *testing.T) {
	a := testAnimator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := a.Run(ctx, RunConfig{Rows: 5, Cols: 5, Dt: 0.05, Frames: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.Frames != 0 {
		t.Errorf("rendered %d frames after cancel", result.Frames)
	}
}

func TestRunValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero rows", RunConfig{Rows: 0, Cols: 5, Dt: 0.1, Frames: 1}},
		{"zero frames", RunConfig{Rows: 5, Cols: 5, Dt: 0.1, Frames: 0}},
		{"negative dt", RunConfig{Rows: 5, Cols: 5, Dt: -1, Frames: 1}},
	}

	a := testAnimator(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}
