package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	set, err := deps.Sets.FindWrapperSet(deps.Ctx, c.Name)
	if err != nil {
		if swi.ErrorCode(err) == swi.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: wrapper set %q not found. Use 'swi list' to see available sets.\n", c.Name)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
		return err
	}

	if c.Format != "text" {
		data, err := fs.Encode(set.Wrappers, fs.Format(c.Format))
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", swi.ErrorMessage(err))
			return err
		}
		_, err = deps.Stdout.Write(data)
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  (%d examples, updated %s)\n", set.Name, set.Examples, set.UpdatedAt.Format("2006-01-02 15:04"))
	printWrappers(deps.Stdout, set.Wrappers)
	return nil
}

// printWrappers writes one line per label: label, kind and rule.
func printWrappers(w io.Writer, table swi.WrapperTable) {
	for _, label := range table.Labels() {
		wrapper := table[label]
		fmt.Fprintf(w, "  %s  %s  %s\n", label, wrapper.Kind(), describe(wrapper))
	}
}

// describe returns a one-line summary of a wrapper's rule.
func describe(w swi.Wrapper) string {
	switch w := w.(type) {
	case *swi.Css:
		return describeCss(w)
	case *swi.Meta:
		s := w.Path.String()
		if w.Pattern != nil {
			s += " " + w.Pattern.String()
		}
		return s
	case *swi.Group:
		members := make([]string, len(w.Members))
		for i, m := range w.Members {
			members[i] = describeCss(m)
		}
		return fmt.Sprintf("%s > {%s}", describeCss(&w.Own), strings.Join(members, ", "))
	case *swi.List:
		members := make([]string, len(w.Members))
		for i, m := range w.Members {
			members[i] = describe(m)
		}
		return "[" + strings.Join(members, "; ") + "]"
	default:
		return ""
	}
}

func describeCss(c *swi.Css) string {
	selector := c.Selector
	if selector == "" {
		selector = "(none)"
	}
	s := fmt.Sprintf("%s @%s", selector, c.Attribute)
	if c.Index > 0 {
		s += fmt.Sprintf(" #%d", c.Index)
	}
	if c.Pattern != nil {
		s += " " + c.Pattern.String()
	}
	return s
}
