package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/tliron/commonlog"

	"github.com/modforge/respatch"
	"github.com/modforge/respatch/config"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		cfg.Apply.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: apply <patch.ini> <bundle.yaml>", cli.ErrUsage)
	}
	cfg.setupColor(cc)
	commonlog.Configure(cfg.Verbose, nil)

	patchFile, bundleFile := args[0], args[1]
	plan, err := config.Load(patchFile)
	if err != nil {
		return err
	}
	b, err := readBundle(bundleFile)
	if err != nil {
		return err
	}
	root := cfg.Install
	if root == "" {
		root = filepath.Dir(bundleFile)
	}
	env := newBundleEnv(b, filepath.Dir(patchFile), root)
	s := respatch.NewSession(env)
	if err := s.Apply(plan); err != nil {
		return fmt.Errorf("applying %s: %w", patchFile, err)
	}
	env.flush()

	if s.Warnings > 0 {
		fmt.Fprintf(cc.Out, "%s %d operation(s) skipped\n",
			color.YellowString("warning:"), s.Warnings)
	}
	if cfg.DryRun {
		fmt.Fprintf(cc.Out, "dry run, %s not written\n", bundleFile)
		return nil
	}
	if err := writeBundle(bundleFile, b); err != nil {
		return err
	}
	fmt.Fprintf(cc.Out, "%s %s\n", color.GreenString("patched"), bundleFile)
	return nil
}
