package main

import (
	"fmt"

	"github.com/fwojciec/swi"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return swi.Errorf(swi.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Sets.DeleteWrapperSet(deps.Ctx, c.Name); err != nil {
		if swi.ErrorCode(err) == swi.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: wrapper set %q not found. Use 'swi list' to see available sets.\n", c.Name)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted wrapper set %q\n", c.Name)
	return nil
}
