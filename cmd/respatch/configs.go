package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Color   bool `cli:"name=color desc='force colored output'"`
	Verbose int  `cli:"name=v aliases=verbose desc='log verbosity (0 warnings, 1 info, 2 debug)'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// setupColor decides colored output once per run: forced by -color,
// otherwise on only when the output is a terminal.
func (cfg *MainConfig) setupColor(cc *cli.Context) {
	if cfg.Color {
		color.NoColor = false
		return
	}
	f, ok := cc.Out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		color.NoColor = true
	}
}

type ApplyConfig struct {
	*MainConfig
	DryRun  bool   `cli:"name=n aliases=dry-run desc='apply without writing the bundle back'"`
	Install string `cli:"name=install desc='destination root for [InstallList] file copies'"`

	Apply *cli.Command
}

type PlanConfig struct {
	*MainConfig

	Plan *cli.Command
}

type DiffConfig struct {
	*MainConfig

	Diff *cli.Command
}
