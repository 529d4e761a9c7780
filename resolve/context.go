package resolve

import (
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
)

// Context is what a resolver sees at apply time: the session memory store
// and, when a table op is running, the live table, the row being processed
// and the column being added.
type Context struct {
	Mem    *memory.Store
	Table  *ir.Table
	Row    *ir.Row
	Column string
}
