package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
)

func writeHelp(w io.Writer, cmd *Command) {
	if cmd.Short != "" {
		fmt.Fprintf(w, "%s - %s\n", cmd.fullName(), cmd.Short)
	} else {
		fmt.Fprintln(w, cmd.fullName())
	}
	if cmd.Long != "" {
		fmt.Fprintf(w, "\n%s\n", strings.TrimRight(cmd.Long, "\n"))
	}

	fmt.Fprintf(w, "\nUsage:\n  %s\n", usageLine(cmd))

	if len(cmd.children) > 0 {
		children := cmd.Commands()
		sort.Slice(children, func(i, j int) bool { return children[i].Name < children[j].Name })

		fmt.Fprintln(w, "\nCommands:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, child := range children {
			fmt.Fprintf(tw, "  %s\t%s\n", child.Name, child.Short)
		}
		tw.Flush()
	}

	if flags := scopeOf(cmd).sorted(); len(flags) > 0 {
		fmt.Fprintln(w, "\nFlags:")
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, f := range flags {
			fmt.Fprintf(tw, "  %s\t%s\n", flagNames(f), flagUsage(f))
		}
		tw.Flush()
	}

	if cmd.Example != "" {
		fmt.Fprintln(w, "\nExample:")
		for _, line := range strings.Split(strings.TrimRight(cmd.Example, "\n"), "\n") {
			if line == "" {
				fmt.Fprintln(w)
				continue
			}
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}

func usageLine(cmd *Command) string {
	parts := []string{cmd.fullName()}
	if len(scopeOf(cmd).byName) > 0 {
		parts = append(parts, "[flags]")
	}
	if len(cmd.children) > 0 {
		if cmd.Run == nil {
			parts = append(parts, "<command>")
		} else {
			parts = append(parts, "[command]")
		}
	}
	if cmd.Run != nil {
		if cmd.Usage != "" {
			parts = append(parts, cmd.Usage)
		} else {
			parts = append(parts, "[args]")
		}
	}
	return strings.Join(parts, " ")
}

// flagNames renders ex: "-U, --context int" or "    --color string".
func flagNames(f *flag) string {
	names := "    --" + f.name
	if f.shorthand != 0 {
		names = fmt.Sprintf("-%c, --%s", f.shorthand, f.name)
	}
	if t := f.value.typeName(); t != "" {
		names += " " + t
	}
	return names
}

// flagUsage appends the default, unless it is the zero value.
func flagUsage(f *flag) string {
	usage := strings.TrimSpace(f.usage)
	switch f.defValue {
	case "", `""`, "0", "false":
		return usage
	}
	return strings.TrimSpace(fmt.Sprintf("%s (default %s)", usage, f.defValue))
}
