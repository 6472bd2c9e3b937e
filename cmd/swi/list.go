package main

import (
	"fmt"

	"github.com/fwojciec/swi"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sets, err := deps.Sets.FindWrapperSets(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	if len(sets) == 0 {
		fmt.Fprintln(deps.Stdout, "No wrapper sets found. Use 'swi train' to create one.")
		return nil
	}

	for _, s := range sets {
		fmt.Fprintf(deps.Stdout, "%s  %d labels  %d examples  %s\n",
			s.Name, len(s.Wrappers), s.Examples, s.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}
