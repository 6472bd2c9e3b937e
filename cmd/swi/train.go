package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/fs"
)

// Run executes the train command.
func (c *TrainCmd) Run(deps *Dependencies) error {
	manifest, err := ReadManifest(c.Manifest)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	inducer := deps.NewInducer(nil)

	var trained int
	for _, ex := range manifest.Examples {
		content, err := os.ReadFile(ex.Page)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skipped %s: %v\n", ex.Page, err)
			continue
		}

		added, err := inducer.AddTrainPage(string(content), ex.TrainingSet(), ex.ID)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "skipped %s: %s\n", ex.Page, swi.ErrorMessage(err))
			continue
		}
		if added.Duplicate {
			fmt.Fprintf(deps.Stderr, "warning: %s looks like a page trained before\n", ex.Page)
		}
		trained++
	}

	if trained == 0 {
		fmt.Fprintf(deps.Stderr, "error: no page could be trained\n")
		return swi.Errorf(swi.ETRAINING, "no page could be trained")
	}

	set := &swi.WrapperSet{
		Name:     c.Name,
		Wrappers: inducer.Wrappers(),
		Examples: trained,
	}
	if err := deps.Sets.SaveWrapperSet(deps.Ctx, set); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	if c.Out != "" {
		if err := fs.WriteWrappers(c.Out, set.Wrappers); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
			return err
		}
	}

	fmt.Fprintf(deps.Stdout, "Trained %q on %d of %d pages\n", set.Name, trained, len(manifest.Examples))
	printWrappers(deps.Stdout, set.Wrappers)
	return nil
}
