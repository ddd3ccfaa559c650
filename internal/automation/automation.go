// Package automation runs scripted, headless batches of animations: yaml
// scenarios of preset/override steps, and one-parameter sweeps.
package automation

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/metaballs/internal/config"
	"github.com/san-kum/metaballs/internal/sim"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var ErrUnknownParam = errors.New("automation: unknown sweep parameter")

// Scenario defines a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Frames      int            `yaml:"frames"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep overrides the base config for one run. Zero values keep the
// base setting.
type ScenarioStep struct {
	Name      string  `yaml:"name"`
	Preset    string  `yaml:"preset"`
	Mode      string  `yaml:"mode"`
	Motion    string  `yaml:"motion"`
	Threshold float64 `yaml:"threshold"`
	Blobs     int     `yaml:"blobs"`
	Seed      int64   `yaml:"seed"`
	Frames    int     `yaml:"frames"`
}

// StepResult summarizes one scenario step or sweep point.
type StepResult struct {
	Name     string
	Value    float64
	Frames   int
	FPS      float64
	FrameMs  float64
	Coverage float64
	Peak     float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &scenario, nil
}

func (s ScenarioStep) apply(base *config.Config) (*config.Config, error) {
	cfg := *base
	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		p.Width, p.Height, p.Seed, p.Workers = base.Width, base.Height, base.Seed, base.Workers
		cfg = *p
	}
	if s.Mode != "" {
		cfg.Mode = s.Mode
	}
	if s.Motion != "" {
		cfg.Motion = s.Motion
	}
	if s.Threshold != 0 {
		cfg.Threshold = s.Threshold
	}
	if s.Blobs != 0 {
		cfg.Blobs = s.Blobs
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	cfg.CycleModes = false
	return &cfg, cfg.Validate()
}

func runOne(ctx context.Context, cfg *config.Config, frames int) (*sim.Result, error) {
	anim, err := sim.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	for _, m := range sim.DefaultMetrics() {
		anim.AddMetric(m)
	}
	return anim.Run(ctx, sim.RunConfig{Rows: cfg.Height, Cols: cfg.Width, Dt: cfg.Dt, Frames: frames})
}

func summarize(name string, value float64, r *sim.Result) StepResult {
	return StepResult{
		Name:     name,
		Value:    value,
		Frames:   r.Frames,
		FPS:      r.FPS(),
		FrameMs:  r.Metrics["frame_ms"],
		Coverage: r.Metrics["coverage"],
		Peak:     r.Metrics["peak_field"],
	}
}

// RunScenario executes the steps in order over base.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, log *zap.Logger) ([]StepResult, error) {
	if log == nil {
		log = zap.NewNop()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		name := step.Name
		if name == "" {
			name = fmt.Sprintf("step-%d", i+1)
		}
		cfg, err := step.apply(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		frames := step.Frames
		if frames <= 0 {
			frames = scenario.Frames
		}
		if frames <= 0 {
			frames = 100
		}

		log.Info("scenario step", zap.String("step", name), zap.Int("index", i+1), zap.Int("of", len(scenario.Steps)))
		result, err := runOne(ctx, cfg, frames)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}
		results = append(results, summarize(name, 0, result))
	}
	return results, nil
}

// ParameterSweep varies one config value across NumSteps evenly spaced
// points between Min and Max.
type ParameterSweep struct {
	Param    string
	Min      float64
	Max      float64
	NumSteps int
	Frames   int
	// Parallel bounds concurrent runs; <= 0 means one at a time.
	Parallel int
}

// SweepParams lists the values RunSweep can vary.
func SweepParams() []string {
	return []string{"threshold", "blobs", "radius", "speed"}
}

func setParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "threshold":
		cfg.Threshold = v
	case "blobs":
		cfg.Blobs = int(v + 0.5)
	case "radius":
		cfg.Radius = config.RangeConfig{Min: v, Max: v}
	case "speed":
		cfg.Speed = config.RangeConfig{Min: v, Max: v}
	default:
		return fmt.Errorf("%q: %w", name, ErrUnknownParam)
	}
	return nil
}

// RunSweep runs one headless animation per sweep point. Every point uses the
// base seed, so only the swept value differs. Results keep sweep order.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	frames := sweep.Frames
	if frames <= 0 {
		frames = 100
	}

	step := 0.0
	if sweep.NumSteps > 1 {
		step = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	cfgs := make([]*config.Config, sweep.NumSteps)
	for i := range cfgs {
		cfg := *base
		cfg.CycleModes = false
		if err := setParam(&cfg, sweep.Param, sweep.Min+float64(i)*step); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("sweep point %d: %w", i+1, err)
		}
		cfgs[i] = &cfg
	}

	results := make([]SweepResult, sweep.NumSteps)
	g, gctx := errgroup.WithContext(ctx)
	limit := sweep.Parallel
	if limit <= 0 {
		limit = 1
	}
	g.SetLimit(limit)
	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			r, err := runOne(gctx, cfg, frames)
			if err != nil {
				return err
			}
			v := sweep.Min + float64(i)*step
			results[i] = SweepResult(summarize(fmt.Sprintf("%s=%.3g", sweep.Param, v), v, r))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// SweepResult is one sweep point.
type SweepResult StepResult

// Best returns the sweep point with the highest coverage not above limit.
func Best(results []SweepResult, limit float64) (SweepResult, bool) {
	var best SweepResult
	found := false
	for _, r := range results {
		if r.Coverage > limit {
			continue
		}
		if !found || r.Coverage > best.Coverage {
			best, found = r, true
		}
	}
	return best, found
}
