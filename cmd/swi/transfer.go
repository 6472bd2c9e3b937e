package main

import (
	"fmt"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	set, err := deps.Sets.FindWrapperSet(deps.Ctx, c.Name)
	if err != nil {
		if swi.ErrorCode(err) == swi.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: wrapper set %q not found. Use 'swi list' to see available sets.\n", c.Name)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	if err := fs.WriteWrappers(c.Path, set.Wrappers); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %q (%d labels) to %s\n", set.Name, len(set.Wrappers), c.Path)
	return nil
}

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	table, err := fs.ReadWrappers(c.Path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	set := &swi.WrapperSet{Name: c.Name, Wrappers: table}
	if err := deps.Sets.SaveWrapperSet(deps.Ctx, set); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %q (%d labels) from %s\n", set.Name, len(table), c.Path)
	return nil
}
