package resolve

import (
	"errors"
	"testing"

	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
)

func targetContext() *Context {
	t := ir.NewTable("label", "name")
	r0 := t.NewRow("0")
	r0.SetCell("label", "stun")
	r1 := t.NewRow("1")
	r1.SetCell("label", "heal")
	return &Context{Mem: memory.NewStore(), Table: t}
}

func TestByIndex(t *testing.T) {
	ctx := targetContext()
	if i, err := (ByIndex{V: Constant("1")}).Find(ctx); i != 1 || err != nil {
		t.Errorf("got %d %v", i, err)
	}
	if i, err := (ByIndex{V: Constant("5")}).Find(ctx); i != -1 || err != nil {
		t.Errorf("out of range should be not-found: %d %v", i, err)
	}
	if _, err := (ByIndex{V: Constant("abc")}).Find(ctx); !errors.Is(err, memory.ErrTypeMismatch) {
		t.Errorf("non-numeric index: got %v", err)
	}
}

func TestByLabelAndByCell(t *testing.T) {
	ctx := targetContext()
	if i, err := (ByLabel{V: Constant("1")}).Find(ctx); i != 1 || err != nil {
		t.Errorf("ByLabel: %d %v", i, err)
	}
	if i, err := (ByCell{Column: "label", V: Constant("stun")}).Find(ctx); i != 0 || err != nil {
		t.Errorf("ByCell: %d %v", i, err)
	}
	if i, err := (ByCell{Column: "label", V: Constant("nope")}).Find(ctx); i != -1 || err != nil {
		t.Errorf("ByCell miss: %d %v", i, err)
	}
}

// dynamic targeting: the target operand itself comes from the memory store
func TestMemoryDrivenTarget(t *testing.T) {
	ctx := targetContext()
	ctx.Mem.SetToken(0, memory.StringValue("heal"))
	i, err := (ByCell{Column: "label", V: MemoryRef(0)}).Find(ctx)
	if i != 1 || err != nil {
		t.Errorf("got %d %v", i, err)
	}
	if _, err := (ByLabel{V: MemoryRef(9)}).Find(ctx); !errors.Is(err, memory.ErrUndefinedToken) {
		t.Errorf("unwritten token in target: got %v", err)
	}
}
