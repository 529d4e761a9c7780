// Package mod implements the patch operations, one family per resource
// kind. Ops are built once by the config loader and applied in declaration
// order with a shared Ctx carrying the session memory store and logger.
package mod

import (
	"github.com/tliron/commonlog"

	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
)

// Ctx is threaded through every op application. Warnings counts the
// recoverable skips the session has logged.
type Ctx struct {
	Mem      *memory.Store
	Log      commonlog.Logger
	Warnings int
}

func (c *Ctx) Warnf(format string, args ...any) {
	c.Warnings++
	if c.Log != nil {
		c.Log.Warningf(format, args...)
	}
}

type TableOp interface {
	ApplyTable(c *Ctx, t *ir.Table) error
	String() string
}

type TreeOp interface {
	ApplyTree(c *Ctx, root *ir.Node) error
	String() string
}

type SoundOp interface {
	ApplySound(c *Ctx, s *ir.SoundTable) error
	String() string
}

type CodeOp interface {
	ApplyCode(c *Ctx, b ir.Bytecode) error
	String() string
}

type StringOp interface {
	ApplyStrings(c *Ctx, s *ir.StringTable) error
	String() string
}

type SourceOp interface {
	ApplySource(c *Ctx, src string) (string, error)
	String() string
}
