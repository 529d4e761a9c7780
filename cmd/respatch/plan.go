package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"

	"github.com/modforge/respatch/config"
)

func showPlan(cfg *PlanConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Plan.Parse(cc, args)
	if err != nil {
		cfg.Plan.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: plan <patch.ini>", cli.ErrUsage)
	}
	cfg.setupColor(cc)
	plan, err := config.Load(args[0])
	if err != nil {
		return err
	}
	printPlan(cc.Out, plan)
	return nil
}

var (
	planHeader = color.New(color.FgCyan, color.Bold)
	planCond   = color.New(color.Faint)
)

func printPlan(w io.Writer, plan *config.Plan) {
	if len(plan.Strings) > 0 {
		planHeader.Fprintln(w, "strings")
		for _, e := range plan.Strings {
			printEntry(w, "", e.Op, e.Cond)
		}
	}
	if len(plan.Install) > 0 {
		planHeader.Fprintln(w, "install")
		for _, f := range plan.Install {
			name := f.Name
			if f.SaveAs != "" {
				name = f.SaveAs
			}
			fmt.Fprintf(w, "  %s/%s\n", f.Folder, name)
		}
	}
	if len(plan.Tables) > 0 {
		planHeader.Fprintln(w, "tables")
		for _, p := range plan.Tables {
			for _, e := range p.Entries {
				printEntry(w, p.File, e.Op, e.Cond)
			}
		}
	}
	if len(plan.Trees) > 0 {
		planHeader.Fprintln(w, "trees")
		for _, p := range plan.Trees {
			for _, e := range p.Entries {
				printEntry(w, p.File, e.Op, e.Cond)
			}
		}
	}
	if len(plan.Sources) > 0 {
		planHeader.Fprintln(w, "sources")
		for _, p := range plan.Sources {
			printEntry(w, p.File, p.Op, p.Cond)
		}
	}
	if len(plan.Codes) > 0 {
		planHeader.Fprintln(w, "bytecode")
		for _, p := range plan.Codes {
			for _, e := range p.Entries {
				printEntry(w, p.File, e.Op, e.Cond)
			}
		}
	}
	if len(plan.Sounds) > 0 {
		planHeader.Fprintln(w, "sounds")
		for _, p := range plan.Sounds {
			for _, e := range p.Entries {
				printEntry(w, p.File, e.Op, e.Cond)
			}
		}
	}
}

func printEntry(w io.Writer, file string, op fmt.Stringer, cond *config.Condition) {
	if file != "" {
		fmt.Fprintf(w, "  %s: %s", file, op)
	} else {
		fmt.Fprintf(w, "  %s", op)
	}
	if cond != nil {
		planCond.Fprintf(w, "  if %s", cond.Source)
	}
	fmt.Fprintln(w)
}
