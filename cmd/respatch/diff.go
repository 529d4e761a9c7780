package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/modforge/respatch"
	"github.com/modforge/respatch/config"
)

// diff applies the patch to an in-memory copy of the bundle and prints the
// YAML before/after difference. Nothing is written.
func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff <patch.ini> <bundle.yaml>", cli.ErrUsage)
	}
	cfg.setupColor(cc)

	patchFile, bundleFile := args[0], args[1]
	plan, err := config.Load(patchFile)
	if err != nil {
		return err
	}
	b, err := readBundle(bundleFile)
	if err != nil {
		return err
	}
	before, err := b.marshal()
	if err != nil {
		return err
	}
	env := newBundleEnv(b, filepath.Dir(patchFile), "")
	env.noInstall = true
	s := respatch.NewSession(env)
	if err := s.Apply(plan); err != nil {
		return fmt.Errorf("applying %s: %w", patchFile, err)
	}
	env.flush()
	after, err := b.marshal()
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(before), string(after), true)
	diffs = dmp.DiffCleanupSemantic(diffs)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			color.New(color.FgGreen).Fprint(cc.Out, d.Text)
		case diffmatchpatch.DiffDelete:
			color.New(color.FgRed, color.CrossedOut).Fprint(cc.Out, d.Text)
		default:
			fmt.Fprint(cc.Out, d.Text)
		}
	}
	return nil
}
