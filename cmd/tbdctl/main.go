// Command tbdctl is an interactive shell over an in-memory tbd arena,
// recovering the insert/select/update/delete grammar of the reference
// implementation's tbds.c REPL.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/jpmec/tbd"
	"github.com/jpmec/tbd/internal/tbdlog"
)

func main() {
	app := &cli.App{
		Name:  "tbdctl",
		Usage: "interactive shell over an in-memory tbd arena",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a TOML config file",
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "arena size in bytes (overrides config)",
			},
			&cli.IntFlag{
				Name:  "hunk-size",
				Usage: "hunk granularity in bytes (overrides config)",
			},
			&cli.IntFlag{
				Name:  "max-key-length",
				Usage: "maximum key length (overrides config)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("size") {
		cfg.Size = c.Int("size")
	}
	if c.IsSet("hunk-size") {
		cfg.HunkSize = c.Int("hunk-size")
	}
	if c.IsSet("max-key-length") {
		cfg.MaxKeyLength = c.Int("max-key-length")
	}

	buf := make([]byte, cfg.Size)
	a, err := tbd.Initialize(buf, cfg.Size, cfg.HunkSize, cfg.MaxKeyLength)
	if err != nil {
		return err
	}
	a.SetLogger(tbdlog.New(os.Stderr))

	r := newREPL(a, os.Stdout)
	return r.run()
}
