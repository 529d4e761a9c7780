package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/modforge/respatch/config"
	"github.com/modforge/respatch/ir"
)

// bundle is the YAML form of a resource set: every resource kind the engine
// patches, keyed by resource name.
type bundle struct {
	Strings []bundleString          `yaml:"strings,omitempty"`
	Tables  map[string]*bundleTable `yaml:"tables,omitempty"`
	Trees   map[string]*bundleNode  `yaml:"trees,omitempty"`
	Sounds  map[string]*bundleSound `yaml:"sounds,omitempty"`
	Codes   map[string][]byte       `yaml:"codes,omitempty"`
	Sources map[string]string       `yaml:"sources,omitempty"`
}

type bundleString struct {
	Text      string `yaml:"text"`
	Voiceover string `yaml:"voiceover,omitempty"`
}

type bundleTable struct {
	Columns []string    `yaml:"columns"`
	Rows    []bundleRow `yaml:"rows,omitempty"`
}

type bundleRow struct {
	Label string            `yaml:"label"`
	Cells map[string]string `yaml:"cells,omitempty"`
}

type bundleNode struct {
	Type     string        `yaml:"type"`
	StructID int           `yaml:"structId,omitempty"`
	Fields   []bundleField `yaml:"fields,omitempty"`
	Elems    []*bundleNode `yaml:"elems,omitempty"`
	Value    string        `yaml:"value,omitempty"`
	StrRef   int32         `yaml:"strref,omitempty"`
}

type bundleField struct {
	Label string      `yaml:"label"`
	Node  *bundleNode `yaml:"node"`
}

type bundleSound struct {
	Slots []bundleSlot `yaml:"slots"`
}

type bundleSlot struct {
	Name string `yaml:"name"`
	Ref  int32  `yaml:"ref"`
}

func readBundle(path string) (*bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	b := &bundle{}
	if err := yaml.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("reading bundle %s: %w", path, err)
	}
	return b, nil
}

func writeBundle(path string, b *bundle) error {
	data, err := yaml.Marshal(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (b *bundle) marshal() ([]byte, error) {
	return yaml.Marshal(b)
}

func (t *bundleTable) toTable() *ir.Table {
	res := ir.NewTable(t.Columns...)
	for _, r := range t.Rows {
		row := res.NewRow(r.Label)
		for _, col := range t.Columns {
			row.SetCell(col, r.Cells[col])
		}
	}
	return res
}

func fromTable(t *ir.Table) *bundleTable {
	res := &bundleTable{Columns: t.Columns}
	for _, r := range t.Rows {
		br := bundleRow{Label: r.Label, Cells: map[string]string{}}
		for _, col := range t.Columns {
			br.Cells[col] = r.Cell(col)
		}
		res.Rows = append(res.Rows, br)
	}
	return res
}

func (n *bundleNode) toNode() (*ir.Node, error) {
	t, err := ir.ParseType(n.Type)
	if err != nil {
		return nil, err
	}
	switch t {
	case ir.StructType:
		res := ir.NewStruct(n.StructID)
		for _, f := range n.Fields {
			child, err := f.Node.toNode()
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Label, err)
			}
			if err := res.SetField(f.Label, child); err != nil {
				return nil, err
			}
		}
		return res, nil
	case ir.ListType:
		res := ir.NewList()
		for i, e := range n.Elems {
			child, err := e.toNode()
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			if _, err := res.Append(child); err != nil {
				return nil, err
			}
		}
		return res, nil
	case ir.LocStringType:
		return ir.FromLocString(n.Value, n.StrRef), nil
	}
	res := &ir.Node{Type: t}
	if err := res.SetValue(n.Value); err != nil {
		return nil, err
	}
	return res, nil
}

func fromNode(n *ir.Node) *bundleNode {
	res := &bundleNode{Type: n.Type.String()}
	switch n.Type {
	case ir.StructType:
		res.StructID = n.StructID
		for _, c := range n.Values {
			res.Fields = append(res.Fields, bundleField{Label: c.Label, Node: fromNode(c)})
		}
	case ir.ListType:
		for _, c := range n.Values {
			res.Elems = append(res.Elems, fromNode(c))
		}
	case ir.LocStringType:
		res.Value = n.String
		res.StrRef = n.StrRef
	default:
		res.Value = n.ValueString()
	}
	return res
}

func (s *bundleSound) toSound() *ir.SoundTable {
	names := make([]string, len(s.Slots))
	for i, sl := range s.Slots {
		names[i] = sl.Name
	}
	res := ir.NewSoundTable(names...)
	for _, sl := range s.Slots {
		res.Set(sl.Name, sl.Ref)
	}
	return res
}

func fromSound(s *ir.SoundTable) *bundleSound {
	res := &bundleSound{}
	for _, name := range s.Names {
		ref, _ := s.Get(name)
		res.Slots = append(res.Slots, bundleSlot{Name: name, Ref: ref})
	}
	return res
}

// bundleEnv serves a Session from an in-memory bundle. Saves replace the
// bundle's entries; nothing touches the filesystem until the bundle is
// written back. Install copies files from the patch directory under root.
type bundleEnv struct {
	b       *bundle
	strings ir.StringTable

	dir  string // where [InstallList] sources are found
	root string // where they go

	noInstall bool // preview runs skip file copies
}

func newBundleEnv(b *bundle, dir, root string) *bundleEnv {
	env := &bundleEnv{b: b, dir: dir, root: root}
	for _, s := range b.Strings {
		env.strings.Append(s.Text, s.Voiceover)
	}
	return env
}

// flush copies session state that lives outside the per-resource maps back
// into the bundle.
func (e *bundleEnv) flush() {
	e.b.Strings = e.b.Strings[:0]
	for _, s := range e.strings.Entries {
		e.b.Strings = append(e.b.Strings, bundleString{Text: s.Text, Voiceover: s.Voiceover})
	}
}

func (e *bundleEnv) Table(name string) (*ir.Table, error) {
	t, ok := e.b.Tables[name]
	if !ok {
		return nil, fmt.Errorf("no table %q in bundle", name)
	}
	return t.toTable(), nil
}

func (e *bundleEnv) SaveTable(name string, t *ir.Table) error {
	if e.b.Tables == nil {
		e.b.Tables = map[string]*bundleTable{}
	}
	e.b.Tables[name] = fromTable(t)
	return nil
}

func (e *bundleEnv) Tree(name string) (*ir.Node, error) {
	n, ok := e.b.Trees[name]
	if !ok {
		return nil, fmt.Errorf("no tree %q in bundle", name)
	}
	return n.toNode()
}

func (e *bundleEnv) SaveTree(name string, root *ir.Node) error {
	if e.b.Trees == nil {
		e.b.Trees = map[string]*bundleNode{}
	}
	e.b.Trees[name] = fromNode(root)
	return nil
}

func (e *bundleEnv) Sound(name string) (*ir.SoundTable, error) {
	s, ok := e.b.Sounds[name]
	if !ok {
		return nil, fmt.Errorf("no sound table %q in bundle", name)
	}
	return s.toSound(), nil
}

func (e *bundleEnv) SaveSound(name string, s *ir.SoundTable) error {
	if e.b.Sounds == nil {
		e.b.Sounds = map[string]*bundleSound{}
	}
	e.b.Sounds[name] = fromSound(s)
	return nil
}

func (e *bundleEnv) Code(name string) (ir.Bytecode, error) {
	b, ok := e.b.Codes[name]
	if !ok {
		return nil, fmt.Errorf("no bytecode %q in bundle", name)
	}
	res := make(ir.Bytecode, len(b))
	copy(res, b)
	return res, nil
}

func (e *bundleEnv) SaveCode(name string, b ir.Bytecode) error {
	if e.b.Codes == nil {
		e.b.Codes = map[string][]byte{}
	}
	e.b.Codes[name] = b
	return nil
}

func (e *bundleEnv) Source(name string) (string, error) {
	s, ok := e.b.Sources[name]
	if !ok {
		return "", fmt.Errorf("no source %q in bundle", name)
	}
	return s, nil
}

func (e *bundleEnv) SaveSource(name string, src string) error {
	if e.b.Sources == nil {
		e.b.Sources = map[string]string{}
	}
	e.b.Sources[name] = src
	return nil
}

func (e *bundleEnv) Strings() *ir.StringTable {
	return &e.strings
}

func (e *bundleEnv) Install(files []config.InstallFile) error {
	if e.noInstall {
		return nil
	}
	for _, f := range files {
		src := filepath.Join(e.dir, f.Name)
		name := f.Name
		if f.SaveAs != "" {
			name = f.SaveAs
		}
		dst := filepath.Join(e.root, f.Folder, name)
		if !f.Replace {
			if _, err := os.Stat(dst); err == nil {
				continue
			}
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return fmt.Errorf("install %s: %w", f.Name, err)
		}
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("install %s: %w", f.Name, err)
		}
	}
	return nil
}
