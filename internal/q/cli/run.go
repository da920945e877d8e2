package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

type Options struct {
	// Args is the argv excluding the program name (typically os.Args[1:]).
	Args []string

	// In/Out/Err override standard I/O. If nil, the os equivalents are used.
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Context is passed to a command handler. Flag values are read through the variables bound when the flags were defined.
type Context struct {
	context.Context

	Command *Command
	Args    []string

	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Run parses opts.Args against the tree rooted at root, runs the selected command, and returns a process exit code:
//   - 0 on success, or after printing help for -h/--help (to Out).
//   - 2 for usage errors, which are printed to Err along with the command's help.
//   - an ExitCoder's code, printing its message (if any) to Err.
//   - 1 for any other handler error, printing it to Err.
func Run(ctx context.Context, root *Command, opts Options) int {
	if root == nil || root.Name == "" {
		panic("cli: Run needs a named root command")
	}
	in, out, errOut := opts.In, opts.Out, opts.Err
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	cmd, args, help, err := parse(root, opts.Args)
	switch {
	case err != nil:
		printUsageError(errOut, cmd, err)
		return 2
	case help:
		writeHelp(out, cmd)
		return 0
	case cmd.Run == nil && len(args) == 0:
		printUsageError(errOut, cmd, usageErrorf("missing required subcommand"))
		return 2
	case cmd.Run == nil:
		printUsageError(errOut, cmd, usageErrorf("unknown subcommand: %s", args[0]))
		return 2
	}

	if cmd.Args != nil {
		if err := cmd.Args(args); err != nil {
			var ec ExitCoder
			if errors.As(err, &ec) && ec.ExitCode() != 2 {
				return exitFor(errOut, cmd, err)
			}
			printUsageError(errOut, cmd, err)
			return 2
		}
	}

	err = cmd.Run(&Context{Context: ctx, Command: cmd, Args: args, In: in, Out: out, Err: errOut})
	if err == nil {
		return 0
	}
	return exitFor(errOut, cmd, err)
}

// exitFor maps a handler's error to an exit code. Only a UsageError reprints help; a handler that fails at runtime with code 2 just prints its message.
func exitFor(errOut io.Writer, cmd *Command, err error) int {
	var ue UsageError
	if errors.As(err, &ue) {
		printUsageError(errOut, cmd, err)
		return ue.ExitCode()
	}

	code := 1
	var ec ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	var ee ExitError
	silent := errors.As(err, &ee) && ee.Err == nil
	if code != 0 && !silent {
		if msg := err.Error(); msg != "" {
			fmt.Fprintln(errOut, msg)
		}
	}
	return code
}

func printUsageError(errOut io.Writer, cmd *Command, err error) {
	var ue UsageError
	msg := err.Error()
	if errors.As(err, &ue) {
		msg = ue.Message
	}
	if msg != "" {
		fmt.Fprintf(errOut, "%s\n\n", msg)
	}
	writeHelp(errOut, cmd)
}

// parse selects the deepest command named by the leading non-flag tokens and sets flags as it goes. Selection stops at the first token that is not a
// subcommand, or at "--". It returns the command selected so far even on error, so usage can be printed for it.
func parse(root *Command, argv []string) (cmd *Command, args []string, help bool, err error) {
	cmd = root
	selecting := true

	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		switch {
		case tok == "--":
			return cmd, append(args, argv[i+1:]...), false, nil

		case tok == "-h" || tok == "--help":
			return cmd, nil, true, nil

		case strings.HasPrefix(tok, "--"):
			name, val, hasVal := strings.Cut(tok[2:], "=")
			f := scopeOf(cmd).byName[name]
			if f == nil {
				return cmd, nil, false, usageErrorf("unknown flag: %s", tok)
			}
			consumed, err := setFlag(f, tok, val, hasVal, argv[i+1:])
			if err != nil {
				return cmd, nil, false, err
			}
			i += consumed

		case len(tok) > 1 && tok[0] == '-':
			r, size := utf8.DecodeRuneInString(tok[1:])
			f := scopeOf(cmd).byShort[r]
			if f == nil {
				return cmd, nil, false, usageErrorf("unknown flag: -%c", r)
			}
			rest := tok[1+size:]
			val, hasVal := strings.CutPrefix(rest, "=")
			if !hasVal && rest != "" {
				// Attached value, ex: -U5.
				val, hasVal = rest, true
			}
			consumed, err := setFlag(f, tok, val, hasVal, argv[i+1:])
			if err != nil {
				return cmd, nil, false, err
			}
			i += consumed

		default:
			if selecting {
				if child := cmd.child(tok); child != nil {
					cmd = child
					continue
				}
				selecting = false
			}
			args = append(args, tok)
		}
	}
	return cmd, args, false, nil
}

// setFlag sets f from val, or from the next token when f needs a value and none was attached. It returns how many following tokens it consumed.
func setFlag(f *flag, tok, val string, hasVal bool, next []string) (int, error) {
	consumed := 0
	if !hasVal {
		switch {
		case f.value.typeName() == "":
			val = "true"
		case len(next) == 0:
			return 0, usageErrorf("flag needs a value: %s", tok)
		default:
			val = next[0]
			consumed = 1
		}
	}
	if err := f.value.set(val); err != nil {
		return 0, usageErrorf("invalid value for %s: %v", f.display(), err)
	}
	f.changed = true
	return consumed, nil
}
