package respatch

import (
	"github.com/modforge/respatch/config"
	"github.com/modforge/respatch/ir"
)

// Env is the boundary to the external collaborators: it hands the engine
// already-decoded in-memory resources and takes them back for
// serialization. Load is called when a resource's patch section begins and
// the matching Save when it completes; the string table lives for the
// whole session. Substituted script sources go back through SaveSource for
// the external compiler.
type Env interface {
	Table(name string) (*ir.Table, error)
	SaveTable(name string, t *ir.Table) error

	Tree(name string) (*ir.Node, error)
	SaveTree(name string, root *ir.Node) error

	Sound(name string) (*ir.SoundTable, error)
	SaveSound(name string, s *ir.SoundTable) error

	Code(name string) (ir.Bytecode, error)
	SaveCode(name string, b ir.Bytecode) error

	Source(name string) (string, error)
	SaveSource(name string, src string) error

	Strings() *ir.StringTable

	Install(files []config.InstallFile) error
}
