package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/fs"
	"golang.org/x/sync/errgroup"
)

// PageResult is the prediction for one page.
type PageResult struct {
	Page string `json:"page"`
	*swi.Prediction
}

// Run executes the predict command.
func (c *PredictCmd) Run(deps *Dependencies) error {
	table, err := c.wrappers(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]PageResult, len(c.Pages))
	g, gctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)
	for i, page := range c.Pages {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			content, err := os.ReadFile(page)
			if err != nil {
				return fmt.Errorf("read page %q: %w", page, err)
			}
			p, err := deps.NewInducer(table).Predict(string(content))
			if err != nil {
				return fmt.Errorf("%s: %w", page, err)
			}
			results[i] = PageResult{Page: page, Prediction: p}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		return err
	}

	if c.Strict {
		for _, r := range results {
			if err := r.Err(); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.Page, swi.ErrorMessage(err))
				return err
			}
		}
	}
	return nil
}

// wrappers loads the wrapper table from the --wrappers file or the named set.
func (c *PredictCmd) wrappers(deps *Dependencies) (swi.WrapperTable, error) {
	switch {
	case c.Wrappers != "" && c.Set != "":
		return nil, swi.Errorf(swi.EINVALID, "use either --set or --wrappers, not both")
	case c.Wrappers != "":
		return fs.ReadWrappers(c.Wrappers)
	case c.Set != "":
		set, err := deps.Sets.FindWrapperSet(deps.Ctx, c.Set)
		if err != nil {
			return nil, err
		}
		return set.Wrappers, nil
	default:
		return nil, swi.Errorf(swi.EINVALID, "--set or --wrappers required")
	}
}
