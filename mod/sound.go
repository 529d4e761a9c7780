package mod

import (
	"fmt"

	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/resolve"
)

// SetSlot assigns a string reference to a sound-table slot. The resolved
// value must be an integer; structural paths and non-numeric strings fail.
type SetSlot struct {
	Name string
	Slot string
	V    resolve.Value
}

func (op *SetSlot) ApplySound(c *Ctx, s *ir.SoundTable) error {
	n, err := resolve.EvalInt(op.V, &resolve.Context{Mem: c.Mem})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.Set(op.Slot, int32(n)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (op *SetSlot) String() string {
	return fmt.Sprintf("SetSlot %s %q", op.Name, op.Slot)
}
