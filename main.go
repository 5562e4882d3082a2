package main

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/jcorbin/primeforth/internal/logio"
	"github.com/urfave/cli"
	"golang.org/x/term"
)

func main() {
	var log logio.Logger
	log.SetOutput(os.Stderr)
	log.SetStyle("ERROR", color.New(color.FgRed, color.Bold))
	log.SetStyle("TRACE", color.New(color.FgHiBlack))
	log.ErrorIf(newApp(&log).Run(os.Args))
	os.Exit(log.ExitCode())
}

func newApp(log *logio.Logger) *cli.App {
	app := cli.NewApp()
	app.Name = "primeforth"
	app.Usage = "a small threaded code Forth"
	app.ArgsUsage = "[script.fth]"
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "trace", Usage: "enable trace logging"},
		cli.BoolFlag{Name: "log-output", Usage: "copy program output into the log"},
		cli.DurationFlag{Name: "timeout", Usage: "specify a time limit"},
		cli.IntFlag{Name: "heap", Value: defaultHeapSize, Usage: "heap capacity in cells"},
		cli.IntFlag{Name: "call-depth", Value: defaultCallDepth, Usage: "maximum nesting of word calls"},
		cli.BoolFlag{Name: "bare", Usage: "do not load the kernel prelude"},
		cli.BoolFlag{Name: "no-color", Usage: "disable colored output"},
	}
	app.Action = func(c *cli.Context) error {
		return run(c, log)
	}
	return app
}

// openScript opens the script named on the command line.
var openScript = func(name string) (io.ReadCloser, error) { return os.Open(name) }

func run(c *cli.Context, log *logio.Logger) error {
	ctx := context.Background()
	if timeout := c.Duration("timeout"); timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if c.Bool("no-color") {
		color.NoColor = true
	}

	opts := []VMOption{
		WithHeapSize(c.Int("heap")),
		WithCallDepth(c.Int("call-depth")),
		WithColor(!color.NoColor),
	}
	if c.Bool("trace") {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if c.Bool("bare") {
		opts = append(opts, WithoutKernel())
	}

	if name := c.Args().First(); name != "" {
		f, err := openScript(name)
		if err != nil {
			return err
		}
		defer f.Close()
		opts = append(opts, WithInput(f))
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          promptEmpty,
			HistoryFile:     filepath.Join(os.TempDir(), "primeforth.history"),
			InterruptPrompt: "^C",
			EOFPrompt:       endWord,
		})
		if err != nil {
			return err
		}
		defer rl.Close()
		opts = append(opts,
			WithLineReader(readlineInput{rl}),
			WithOutput(rl.Stdout()))
	} else {
		opts = append(opts,
			WithInput(os.Stdin),
			WithOutput(os.Stdout))
	}

	if c.Bool("log-output") {
		out := &logio.Writer{Logf: log.Leveledf("OUT")}
		defer out.Close()
		opts = append(opts, WithTee(out))
	}

	return New(opts...).Run(ctx)
}

// readlineInput reads interactive lines with editing and history; an
// interrupt discards the line being edited.
type readlineInput struct{ rl *readline.Instance }

func (ri readlineInput) ReadLine(prompt string) (string, error) {
	ri.rl.SetPrompt(prompt)
	for {
		line, err := ri.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return "", io.EOF
		}
		return line, err
	}
}
