package mod

import (
	"fmt"
	"math"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
	"github.com/modforge/respatch/resolve"
)

// PatchOffset overwrites a fixed-width integer field at an absolute offset
// in a bytecode buffer: big-endian unsigned 16-bit by default, or signed
// 32-bit. Offsets outside the buffer are fatal.
type PatchOffset struct {
	Name   string
	Offset int
	Width  int // 16 or 32
	V      resolve.Value
}

func (op *PatchOffset) ApplyCode(c *Ctx, b ir.Bytecode) error {
	n, err := resolve.EvalInt(op.V, &resolve.Context{Mem: c.Mem})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if debug.Op() {
		debug.Logf("%s writes %d (u%d) at 0x%x\n", op, n, op.Width, op.Offset)
	}
	switch op.Width {
	case 16:
		if n < 0 || n > math.MaxUint16 {
			return fmt.Errorf("%s: %w: %d does not fit 16 bits", op, memory.ErrTypeMismatch, n)
		}
		return b.PutUint16(op.Offset, uint16(n))
	case 32:
		if n < math.MinInt32 || n > math.MaxInt32 {
			return fmt.Errorf("%s: %w: %d does not fit 32 bits", op, memory.ErrTypeMismatch, n)
		}
		return b.PutInt32(op.Offset, int32(n))
	}
	return fmt.Errorf("%s: unsupported width %d", op, op.Width)
}

func (op *PatchOffset) String() string {
	return fmt.Sprintf("PatchOffset %s 0x%x", op.Name, op.Offset)
}
