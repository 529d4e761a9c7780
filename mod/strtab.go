package mod

import (
	"fmt"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
)

// AppendString appends an entry to the session string table and writes the
// new string reference into the stringref token namespace. These run first
// in the global order so later categories can consume the token.
type AppendString struct {
	Name      string
	Text      string
	Voiceover string
	Token     int
}

func (op *AppendString) ApplyStrings(c *Ctx, s *ir.StringTable) error {
	ref := s.Append(op.Text, op.Voiceover)
	c.Mem.SetStrRef(op.Token, ref)
	if debug.Op() {
		debug.Logf("%s appended entry %d\n", op, ref)
	}
	return nil
}

func (op *AppendString) String() string {
	return fmt.Sprintf("AppendString %s StrRef%d", op.Name, op.Token)
}

// ReplaceString rewrites an existing string table entry in place. Token
// is optional (-1 when unused) and records the replaced reference.
type ReplaceString struct {
	Name      string
	Ref       int32
	Text      string
	Voiceover string
	Token     int
}

func (op *ReplaceString) ApplyStrings(c *Ctx, s *ir.StringTable) error {
	if err := s.Replace(op.Ref, op.Text, op.Voiceover); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if op.Token >= 0 {
		c.Mem.SetStrRef(op.Token, op.Ref)
	}
	return nil
}

func (op *ReplaceString) String() string {
	return fmt.Sprintf("ReplaceString %s %d", op.Name, op.Ref)
}
