package config

import (
	"github.com/modforge/respatch/mod"
)

// Plan is the fully-resolved patch description: typed operation records in
// declaration order, grouped by category in the global apply order.
type Plan struct {
	Strings []StringEntry
	Install []InstallFile
	Tables  []TablePatch
	Trees   []TreePatch
	Sources []SourcePatch
	Codes   []CodePatch
	Sounds  []SoundPatch
}

type StringEntry struct {
	Cond *Condition
	Op   mod.StringOp
}

// InstallFile is a pass-through record for the external file-copy
// collaborator; the engine itself is indifferent to it.
type InstallFile struct {
	Folder  string
	Name    string
	SaveAs  string
	Replace bool
}

type TableEntry struct {
	Cond *Condition
	Op   mod.TableOp
}

type TablePatch struct {
	File    string
	Entries []TableEntry
}

type TreeEntry struct {
	Cond *Condition
	Op   mod.TreeOp
}

type TreePatch struct {
	File    string
	Entries []TreeEntry
}

// SourcePatch substitutes tokens in one script source; compilation of the
// result happens outside the engine.
type SourcePatch struct {
	File string
	Cond *Condition
	Op   mod.SourceOp
}

type CodeEntry struct {
	Cond *Condition
	Op   mod.CodeOp
}

type CodePatch struct {
	File    string
	Entries []CodeEntry
}

type SoundEntry struct {
	Cond *Condition
	Op   mod.SoundOp
}

type SoundPatch struct {
	File    string
	Entries []SoundEntry
}
