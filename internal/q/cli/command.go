// Package cli is a small command-tree and flag framework. A program builds a tree of Commands, binds flags to variables at construction time, and calls Run with
// argv; Run returns the process exit code.
//
// Flags may appear anywhere among the args until "--". Long flags take "--name value" or "--name=value"; shorthands take "-n value", "-n=value", or "-nvalue".
// A lone "-" is an ordinary arg (conventionally standard input).
package cli

import "fmt"

// RunFunc is a command handler.
type RunFunc func(c *Context) error

// ArgsFunc validates positional args. It should return a UsageError for user-facing usage mistakes.
type ArgsFunc func(args []string) error

// Command is one node of a command tree.
type Command struct {
	// Name is the token used to invoke this command (ex: "config" in "seqdiff config"). For the root, it is the program name.
	Name string

	Short   string
	Long    string
	Example string

	// Usage names the positional args in the usage line (ex: "OLD NEW"). Defaults to "[args]" for runnable commands.
	Usage string

	Args ArgsFunc // optional
	Run  RunFunc  // optional; a command without Run requires a subcommand

	parent     *Command
	children   []*Command
	local      *FlagSet
	persistent *FlagSet
}

// AddCommand adds child commands under c. It panics on a nil, unnamed, or already attached child.
func (c *Command) AddCommand(children ...*Command) {
	for _, child := range children {
		switch {
		case child == nil:
			panic("cli: AddCommand called with nil child")
		case child.parent != nil:
			panic("cli: AddCommand called with a child already attached to a parent")
		case child.Name == "":
			panic("cli: AddCommand called with a child with empty Name")
		}
		child.parent = c
		c.children = append(c.children, child)
	}
}

// Commands returns a copy of c's direct children.
func (c *Command) Commands() []*Command {
	return append([]*Command(nil), c.children...)
}

// Flags returns the flags that apply only to c.
func (c *Command) Flags() *FlagSet {
	if c.local == nil {
		c.local = newFlagSet()
	}
	return c.local
}

// PersistentFlags returns the flags that apply to c and all of its descendants.
func (c *Command) PersistentFlags() *FlagSet {
	if c.persistent == nil {
		c.persistent = newFlagSet()
	}
	return c.persistent
}

func (c *Command) child(name string) *Command {
	for _, child := range c.children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// path returns the commands from the root down to c.
func (c *Command) path() []*Command {
	var path []*Command
	for cur := c; cur != nil; cur = cur.parent {
		path = append([]*Command{cur}, path...)
	}
	return path
}

// fullName is the space-separated invocation of c, ex: "seqdiff config".
func (c *Command) fullName() string {
	if c.parent == nil {
		return c.Name
	}
	return c.parent.fullName() + " " + c.Name
}

// NoArgs accepts no positional args.
func NoArgs(args []string) error {
	if len(args) != 0 {
		return usageErrorf("expected no args, got %d", len(args))
	}
	return nil
}

// ExactArgs accepts exactly n positional args.
func ExactArgs(n int) ArgsFunc {
	return RangeArgs(n, n)
}

// RangeArgs accepts between min and max positional args, inclusive.
func RangeArgs(min, max int) ArgsFunc {
	return func(args []string) error {
		if len(args) >= min && len(args) <= max {
			return nil
		}
		if min == max {
			return usageErrorf("expected %s, got %d", countArgs(min), len(args))
		}
		return usageErrorf("expected %d to %s, got %d", min, countArgs(max), len(args))
	}
}

func countArgs(n int) string {
	if n == 1 {
		return "1 arg"
	}
	return fmt.Sprintf("%d args", n)
}
