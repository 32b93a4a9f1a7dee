package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

const prefix = "cmd"

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and can read flag state.
type Command struct {
	Name    string
	Usage   string
	FlagSet *flag.FlagSet
	Run     func() error
}

// Registry holds subcommands in registration order. Add commands with Register; run with Execute.
type Registry struct {
	cmds *orderedmap.OrderedMap[string, *Command]
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: orderedmap.NewOrderedMap[string, *Command]()}
}

// NewFlagSet returns a flag set for a console command: errors are returned, never printed
// or turned into an exit.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Register adds a subcommand. name is the first token of the line (e.g. "level").
// fs is that command's FlagSet (nil for none); run is called after fs.Parse(args[1:]) succeeds.
// Registering an existing name replaces it in place.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func() error) {
	if fs == nil {
		fs = NewFlagSet(name)
	}
	r.cmds.Set(name, &Command{Name: name, Usage: usage, FlagSet: fs, Run: run})
}

// Names returns the registered command names in registration order.
func (r *Registry) Names() []string {
	return r.cmds.Keys()
}

// Help returns one line per command, in registration order, listing its flags.
func (r *Registry) Help() []string {
	out := make([]string, 0, r.cmds.Len())
	for el := r.cmds.Front(); el != nil; el = el.Next() {
		out = append(out, describe(el.Value))
	}
	return out
}

func describe(c *Command) string {
	var b strings.Builder
	b.WriteString(c.Name)
	c.FlagSet.VisitAll(func(f *flag.Flag) {
		b.WriteString(" [-")
		b.WriteString(f.Name)
		if name, _ := flag.UnquoteUsage(f); name != "" {
			b.WriteString(" " + name)
		}
		b.WriteString("]")
	})
	if c.Usage != "" {
		b.WriteString(": ")
		b.WriteString(c.Usage)
	}
	return b.String()
}

// Parse interprets line as a terminal line. A leading "cmd " is optional; the rest is
// tokenized by spaces. ok is false for a blank line.
func Parse(line string) (args []string, ok bool) {
	args = strings.Fields(line)
	if len(args) > 0 && args[0] == prefix {
		args = args[1:]
	}
	return args, len(args) > 0
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Flags start from their defaults on every run.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds.Get(name)
	if !ok {
		return fmt.Errorf("unknown command: %s (try help)", name)
	}
	cmd.FlagSet.VisitAll(func(f *flag.Flag) {
		_ = f.Value.Set(f.DefValue)
	})
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return fmt.Errorf("usage: %s", describe(cmd))
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run()
}
