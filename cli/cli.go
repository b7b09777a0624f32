// Package cli provides the line-oriented terminal front end: prompt, input
// loop, and plain-text output.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/aiadventure/engine"
	"github.com/nathoo/aiadventure/engine/save"
	"github.com/nathoo/aiadventure/meta"
	"github.com/nathoo/aiadventure/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Store     save.Store // nil disables saving
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine and save store.
func New(eng *engine.Engine, store save.Store) *CLI {
	return &CLI{
		Engine: eng,
		Store:  store,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run shows the intro, then loops: prompt, input, dispatch, output. It
// returns at end of input, on /quit, or after exit has saved the game.
func (c *CLI) Run(ctx context.Context) {
	for _, line := range c.Engine.Intro() {
		c.printLine(line)
	}

	h := &meta.Handler{Engine: c.Engine, Store: c.Store, Trace: c.Trace}
	scanner := bufio.NewScanner(c.In)
	for {
		c.print("\n>> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if meta.IsCommand(input) {
			reply := h.Handle(ctx, input)
			c.Trace = h.Trace
			c.printReply(reply)
			if reply.Quit {
				return
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(ctx, input)
		c.printResult(result)
		if c.Trace {
			c.printTrace(result)
		}
		if result.Quit {
			c.printReply(meta.Reply{Lines: h.Save(ctx)})
			return
		}
	}
}

func (c *CLI) printReply(r meta.Reply) {
	for _, line := range r.Lines {
		if r.Listing {
			c.printLine(line)
		} else {
			c.printSystem(line)
		}
	}
}

func (c *CLI) printTrace(result types.Result) {
	for _, line := range engine.TraceLines(result) {
		c.printSystem(line)
	}
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
