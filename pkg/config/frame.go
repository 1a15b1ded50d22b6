package config

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/animation"
	"github.com/matzehuels/cartesian/pkg/chart"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Frame builds a chart showing m at once, without a transition, and
// measures it at the configured size. It serves one-shot callers such as
// the CLI commands and the HTTP API.
func (c *Config) Frame(ctx context.Context, m *model.Model, logger *log.Logger) (*chart.Chart, error) {
	cfg, err := c.Build(nil)
	if err != nil {
		return nil, err
	}
	cfg.Animation = animation.Spec{}
	cfg.Logger = logger

	ch, err := chart.New(cfg)
	if err != nil {
		return nil, err
	}
	ch.SetModel(ctx, time.Now(), m)
	ch.Measure(ctx, c.Bounds())
	return ch, nil
}
