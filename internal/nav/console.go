package nav

import (
	"context"
	"fmt"
	"strings"

	"budget/internal/core"
	"budget/internal/runner"
)

// LineStyle tells the renderer how to color a console line.
type LineStyle int

const (
	StylePlain LineStyle = iota
	StyleDim
	StyleCommand
	StyleOK
	StyleInfo
	StyleError
)

type ConsoleLine struct {
	Text  string
	Style LineStyle
}

var builtinHelp = []string{
	"  help       - Show this help",
	"  stats      - Show database statistics",
	"  export     - Export data to CSV",
	"  categories - List categories in use",
	"  clear      - Clear output",
}

// Console is the command terminal screen. Built-ins run inline; anything
// else is handed back as a PendingCommand so the caller can run it off the
// event loop.
type Console struct {
	Input string
	Lines []ConsoleLine
	// Running is set while an external command is in flight.
	Running bool

	id      int
	session *Session
}

func newConsole(s *Session, id int) *Console {
	c := &Console{id: id, session: s}
	c.write(StyleDim, "Available built-in commands:")
	for _, l := range builtinHelp {
		c.write(StylePlain, l)
	}
	c.write(StyleDim, "Or run any shell command or script")
	return c
}

func (c *Console) write(style LineStyle, text string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		c.Lines = append(c.Lines, ConsoleLine{Text: line, Style: style})
	}
}

// PendingCommand is an external command accepted by the console but not yet
// run. Run blocks for at most the runner's timeout.
type PendingCommand struct {
	Command string

	console int
	r       CommandRunner
}

// CommandOutcome is what Run produced; hand it to Controller.CompleteCommand.
type CommandOutcome struct {
	Command string
	Result  runner.Result
	Err     error

	console int
}

func (p *PendingCommand) Run(ctx context.Context) CommandOutcome {
	res, err := p.r.Run(ctx, p.Command)
	return CommandOutcome{Command: p.Command, Result: res, Err: err, console: p.console}
}

// Submit executes the current input. It returns a PendingCommand when the
// input is not a built-in and a runner is configured.
func (c *Console) Submit(ctx context.Context) *PendingCommand {
	command := strings.TrimSpace(c.Input)
	c.Input = ""
	if command == "" {
		return nil
	}
	if c.Running {
		c.write(StyleError, "✗ A command is still running")
		return nil
	}

	c.write(StyleCommand, "$ "+command)
	switch command {
	case "help":
		c.write(StyleOK, "Built-in commands:")
		for _, l := range builtinHelp {
			c.write(StylePlain, l)
		}
	case "clear":
		c.Lines = nil
		c.write(StyleDim, "Output cleared")
	case "stats":
		c.stats(ctx)
	case "export":
		c.export(ctx)
	case "categories":
		c.categories(ctx)
	default:
		if c.session.Runner == nil {
			c.write(StyleError, "✗ Error: external commands are disabled")
			return nil
		}
		c.Running = true
		return &PendingCommand{Command: command, console: c.id, r: c.session.Runner}
	}
	return nil
}

// Complete writes the outcome of a PendingCommand to the output.
func (c *Console) Complete(out CommandOutcome) {
	c.Running = false
	if out.Result.Stdout != "" {
		c.write(StylePlain, out.Result.Stdout)
	}
	if out.Result.Stderr != "" {
		c.write(StyleError, out.Result.Stderr)
	}
	if out.Err == nil {
		c.write(StyleOK, "✓ Command completed successfully")
		return
	}
	c.write(StyleError, "✗ "+capitalize(out.Err.Error()))
}

func (c *Console) stats(ctx context.Context) {
	st, err := c.session.Engine.Stats(ctx, c.session.Cursor.Month())
	if err != nil {
		c.write(StyleError, fmt.Sprintf("✗ Error: %v", err))
		return
	}
	lines := st.Lines()
	for i, l := range lines {
		style := StyleOK
		if i == len(lines)-1 {
			style = StyleInfo
		}
		c.write(style, l)
	}
}

func (c *Console) export(ctx context.Context) {
	if c.session.Exporter == nil {
		c.write(StyleError, "✗ Error: export is not configured")
		return
	}
	paths, err := c.session.Exporter.Export(ctx)
	if err != nil {
		c.write(StyleError, fmt.Sprintf("✗ Error: %v", err))
		return
	}
	c.write(StyleOK, "✓ Exported to "+strings.Join(paths, " and "))
}

func (c *Console) categories(ctx context.Context) {
	for _, kind := range core.Kinds() {
		cats, err := c.session.Engine.DistinctCategories(ctx, kind)
		if err != nil {
			c.write(StyleError, fmt.Sprintf("✗ Error: %v", err))
			return
		}
		if len(cats) == 0 {
			cats = []string{"(none)"}
		}
		c.write(StyleInfo, fmt.Sprintf("%ss: %s", kind.Title(), strings.Join(cats, ", ")))
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
