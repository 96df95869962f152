package filler

import (
	"context"
	"fmt"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/geoirb/doc-templater/internal/image"
	"github.com/geoirb/doc-templater/internal/path"
	"github.com/geoirb/doc-templater/internal/placeholder"
	"github.com/geoirb/doc-templater/internal/xlsx"
)

// Strategy fills one template family. Per-field problems degrade inside
// the strategy; only load and save level failures surface as errors.
type Strategy interface {
	Fill(ctx context.Context, templatePath string, params map[string]interface{}) ([]byte, error)
}

// Filler routes fill requests to the strategy registered for the template
// identifier, falling back to blanket substitution for families without
// dedicated layout knowledge.
type Filler struct {
	strategies map[string]Strategy
	fallback   Strategy

	logger log.Logger
}

// New builds the static strategy registry.
func New(
	scanner *placeholder.Scanner,
	facade *xlsx.Facade,
	expander *xlsx.Expander,
	fetcher *image.Fetcher,
	logger log.Logger,
) *Filler {
	f := &Filler{
		fallback: &Default{facade: facade, scanner: scanner},
		logger:   logger,
	}
	f.strategies = map[string]Strategy{
		path.BasicSpecification:           &BasicSpecification{scanner: scanner, fetcher: fetcher, logger: logger},
		path.LabelingSpecification:        &LabelingSpecification{facade: facade, expander: expander},
		path.PackagingDesignSpecification: &PackagingDesignSpecification{facade: facade},
		path.UserManualSpecification:      &UserManualSpecification{facade: facade},
		path.DHFIndex:                     &DHFIndex{facade: facade, expander: expander},
		path.ProductEnvironmentAssessment: &ProductEnvironmentAssessment{facade: facade},
	}
	return f
}

// Fill runs the strategy for template. Any panic inside a strategy is
// recovered here: the caller gets a plain error and no partial document.
func (f *Filler) Fill(ctx context.Context, template, templatePath string, params map[string]interface{}) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			level.Error(f.logger).Log("msg", "fill failure", "template", template, "panic", r)
			data, err = nil, fmt.Errorf("fill template %s: internal failure", template)
		}
	}()

	strategy, isExist := f.strategies[template]
	if !isExist {
		strategy = f.fallback
	}
	return strategy.Fill(ctx, templatePath, params)
}
