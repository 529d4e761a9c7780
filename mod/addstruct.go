package mod

import (
	"fmt"
	"strconv"

	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
)

// AddStruct appends a struct to the list at Path. StoreIndex lists token
// ids that receive the new element's list index as a string.
type AddStruct struct {
	Name       string
	Path       ir.StructuralPath
	StructID   int
	StoreIndex []int
	Children   []*AddField
}

func (op *AddStruct) ApplyTree(c *Ctx, root *ir.Node) error {
	list, err := root.At(op.Path)
	if err != nil {
		c.Warnf("%s: %v, skipped", op, err)
		return nil
	}
	node := ir.NewStruct(op.StructID)
	idx, err := list.Append(node)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, id := range op.StoreIndex {
		c.Mem.SetToken(id, memory.StringValue(strconv.Itoa(idx)))
	}
	for _, child := range op.Children {
		if err := child.applyAt(c, root, node); err != nil {
			return err
		}
	}
	return nil
}

func (op *AddStruct) String() string {
	return "AddStruct " + op.Name
}
