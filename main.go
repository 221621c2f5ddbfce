package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/pontaoski/minilang/config"
	"github.com/urfave/cli/v2"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/minilang", "main")

// set from --trace before any command runs
var showTrace bool

const sampleProgram = `var greeting = "hello";
print greeting;
`

func setupLogging(level string) error {
	if level == "" {
		level = capnslog.WARNING.String()
		if cfg, err := config.Load(config.FileName); err == nil && cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
	}

	lvl, err := capnslog.ParseLevel(strings.ToUpper(level))
	if err != nil {
		return err
	}
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, lvl >= capnslog.DEBUG))
	capnslog.SetGlobalLogLevel(lvl)
	return nil
}

// sourceFile picks the file named on the command line, falling back to the
// project entry point.
func sourceFile(c *cli.Context) (string, error) {
	if file := c.Args().First(); file != "" {
		return file, nil
	}

	cfg, err := config.Load(config.FileName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no file given and no %s found", config.FileName)
		}
		return "", err
	}
	plog.Debugf("using entry %s of package %s", cfg.Entry, cfg.Package)
	return cfg.Entry, nil
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "minilang",
		Usage: "minilang interpreter",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.BoolFlag{
				Name:  "trace",
				Usage: "print stack traces for errors",
				Value: false,
			},
		},
		Before: func(c *cli.Context) error {
			showTrace = c.Bool("trace")
			return setupLogging(c.String("log-level"))
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "init a directory",
				Action: func(c *cli.Context) error {
					name := c.Args().First()
					if name == "" {
						return fmt.Errorf("no package name provided")
					}
					if _, err := os.Stat(config.FileName); err == nil {
						return fmt.Errorf("%s already exists", config.FileName)
					}

					cfg := config.Default(name)
					if err := config.Save(config.FileName, cfg); err != nil {
						return fmt.Errorf("error creating %s: %w", config.FileName, err)
					}
					if _, err := os.Stat(cfg.Entry); errors.Is(err, os.ErrNotExist) {
						if err := os.WriteFile(cfg.Entry, []byte(sampleProgram), 0o644); err != nil {
							return fmt.Errorf("error creating %s: %w", cfg.Entry, err)
						}
					}

					plog.Infof("initialized package %s", name)
					return nil
				},
			},
			{
				Name:      "run",
				Usage:     "run a file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "globals",
						Usage: "print the global variables after the run",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					file, err := sourceFile(c)
					if err != nil {
						return err
					}
					source, err := readSource(file)
					if err != nil {
						return err
					}

					in, err := runSource(file, source, c.App.Writer)
					if err != nil {
						return err
					}

					if c.Bool("globals") {
						for _, name := range in.Globals().Keys() {
							v, _ := in.Globals().Get(identifier(name))
							fmt.Fprintf(c.App.Writer, "%s = %s\n", name, v)
						}
					}
					return nil
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a file",
				ArgsUsage: "[file]",
				Action: func(c *cli.Context) error {
					file, err := sourceFile(c)
					if err != nil {
						return err
					}
					source, err := readSource(file)
					if err != nil {
						return err
					}

					tokens, err := scan(file, source)
					if err != nil {
						return err
					}
					for _, tok := range tokens {
						fmt.Fprintf(c.App.Writer, "%s\t%s\n", tok.Location.From, tok)
					}
					return nil
				},
			},
			{
				Name:      "ast",
				Usage:     "print the syntax tree of a file",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "dump",
						Usage: "print the raw Go structures",
						Value: false,
					},
				},
				Action: func(c *cli.Context) error {
					file, err := sourceFile(c)
					if err != nil {
						return err
					}
					source, err := readSource(file)
					if err != nil {
						return err
					}

					program, parseErr := parse(file, source)
					if program == nil && parseErr != nil {
						return parseErr
					}

					if c.Bool("dump") {
						fmt.Fprintln(c.App.Writer, repr.String(program, repr.Indent("  ")))
					} else {
						fmt.Fprintln(c.App.Writer, program.String())
					}
					return parseErr
				},
			},
			{
				Name:  "repl",
				Usage: "start an interactive session",
				Action: func(c *cli.Context) error {
					return runREPL(os.Stdin, c.App.Writer, c.App.ErrWriter)
				},
			},
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		reportError(os.Stderr, err, showTrace)
		os.Exit(1)
	}
}
