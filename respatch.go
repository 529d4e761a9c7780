// Package respatch applies declarative patch plans to game-data resources:
// tabular data, tree data, sound tables, localized strings and compiled
// bytecode, with a token memory store shared across all of them.
package respatch

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/modforge/respatch/config"
	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/memory"
	"github.com/modforge/respatch/mod"
)

// Session owns one patch application run: the memory store it creates at
// start, the environment that loads and saves resources, and the logger
// warnings and skips go to. It is strictly sequential; every operation runs
// to completion before the next.
type Session struct {
	Mem *memory.Store
	Log commonlog.Logger
	Env Env

	// Warnings counts recoverable conditions that were logged and
	// skipped during Apply.
	Warnings int
}

func NewSession(env Env) *Session {
	return &Session{
		Mem: memory.NewStore(),
		Log: commonlog.GetLogger("respatch"),
		Env: env,
	}
}

// Apply executes the plan's categories in the fixed global order: string
// table, file installation, tables, trees, source substitution, bytecode,
// sound tables; entries run in declaration order within a category. The
// engine never reorders or infers dependencies: sequencing writes before
// reads is the plan author's job, and the first read of an unwritten token
// fails the session. A fatal error aborts everything that remains, but
// tokens already written stay written.
func (s *Session) Apply(plan *config.Plan) error {
	ctx := &mod.Ctx{Mem: s.Mem, Log: s.Log}
	err := s.apply(ctx, plan)
	s.Warnings = ctx.Warnings
	return err
}

func (s *Session) apply(ctx *mod.Ctx, plan *config.Plan) error {
	if err := s.applyStrings(ctx, plan.Strings); err != nil {
		return err
	}
	if len(plan.Install) > 0 {
		if err := s.Env.Install(plan.Install); err != nil {
			return fmt.Errorf("install: %w", err)
		}
	}
	if err := s.applyTables(ctx, plan.Tables); err != nil {
		return err
	}
	if err := s.applyTrees(ctx, plan.Trees); err != nil {
		return err
	}
	if err := s.applySources(ctx, plan.Sources); err != nil {
		return err
	}
	if err := s.applyCodes(ctx, plan.Codes); err != nil {
		return err
	}
	return s.applySounds(ctx, plan.Sounds)
}

// pass reports whether an entry's condition admits it. A nil condition
// always passes; evaluation errors are fatal.
func (s *Session) pass(cond *config.Condition, op fmt.Stringer) (bool, error) {
	if cond == nil {
		return true, nil
	}
	ok, err := cond.Eval(s.Mem)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if !ok && s.Log != nil {
		s.Log.Infof("%s: condition %q not met, skipped", op, cond.Source)
	}
	return ok, nil
}

func (s *Session) applyStrings(ctx *mod.Ctx, entries []config.StringEntry) error {
	if len(entries) == 0 {
		return nil
	}
	st := s.Env.Strings()
	for _, e := range entries {
		ok, err := s.pass(e.Cond, e.Op)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := e.Op.ApplyStrings(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) applyTables(ctx *mod.Ctx, patches []config.TablePatch) error {
	for _, p := range patches {
		if debug.Apply() {
			debug.Logf("table %s: %d entries\n", p.File, len(p.Entries))
		}
		t, err := s.Env.Table(p.File)
		if err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
		for _, e := range p.Entries {
			ok, err := s.pass(e.Cond, e.Op)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := e.Op.ApplyTable(ctx, t); err != nil {
				return fmt.Errorf("%s: %w", p.File, err)
			}
		}
		if err := s.Env.SaveTable(p.File, t); err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
	}
	return nil
}

func (s *Session) applyTrees(ctx *mod.Ctx, patches []config.TreePatch) error {
	for _, p := range patches {
		if debug.Apply() {
			debug.Logf("tree %s: %d entries\n", p.File, len(p.Entries))
		}
		root, err := s.Env.Tree(p.File)
		if err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
		for _, e := range p.Entries {
			ok, err := s.pass(e.Cond, e.Op)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := e.Op.ApplyTree(ctx, root); err != nil {
				return fmt.Errorf("%s: %w", p.File, err)
			}
		}
		if err := s.Env.SaveTree(p.File, root); err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
	}
	return nil
}

func (s *Session) applySources(ctx *mod.Ctx, patches []config.SourcePatch) error {
	for _, p := range patches {
		ok, err := s.pass(p.Cond, p.Op)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		src, err := s.Env.Source(p.File)
		if err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
		out, err := p.Op.ApplySource(ctx, src)
		if err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
		if err := s.Env.SaveSource(p.File, out); err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
	}
	return nil
}

func (s *Session) applyCodes(ctx *mod.Ctx, patches []config.CodePatch) error {
	for _, p := range patches {
		b, err := s.Env.Code(p.File)
		if err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
		for _, e := range p.Entries {
			ok, err := s.pass(e.Cond, e.Op)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := e.Op.ApplyCode(ctx, b); err != nil {
				return fmt.Errorf("%s: %w", p.File, err)
			}
		}
		if err := s.Env.SaveCode(p.File, b); err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
	}
	return nil
}

func (s *Session) applySounds(ctx *mod.Ctx, patches []config.SoundPatch) error {
	for _, p := range patches {
		snd, err := s.Env.Sound(p.File)
		if err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
		for _, e := range p.Entries {
			ok, err := s.pass(e.Cond, e.Op)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if err := e.Op.ApplySound(ctx, snd); err != nil {
				return fmt.Errorf("%s: %w", p.File, err)
			}
		}
		if err := s.Env.SaveSound(p.File, snd); err != nil {
			return fmt.Errorf("%s: %w", p.File, err)
		}
	}
	return nil
}
