package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/modforge/respatch/debug"
	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/mod"
	"github.com/modforge/respatch/resolve"
)

// Load parses a patch description (a file path or raw bytes) into a Plan.
// All section references are resolved and all resolver syntax parsed here;
// conflicting target methods and storage-only misuse fail the load.
func Load(source any) (*Plan, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		KeyValueDelimiters: "=",
	}, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	l := &loader{f: f}
	plan := &Plan{}
	steps := []func(*Plan) error{
		l.loadStrings,
		l.loadInstall,
		l.loadTables,
		l.loadTrees,
		l.loadSources,
		l.loadCodes,
		l.loadSounds,
	}
	for _, step := range steps {
		if err := step(plan); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

type loader struct {
	f *ini.File
}

func (l *loader) section(name string) (*ini.Section, error) {
	s, err := l.f.GetSection(name)
	if err != nil {
		return nil, fmt.Errorf("%w: missing section [%s]", ErrLoad, name)
	}
	return s, nil
}

// index returns the category index section, or nil when the category is
// absent from the description.
func (l *loader) index(name string) *ini.Section {
	s, err := l.f.GetSection(name)
	if err != nil {
		return nil
	}
	if debug.Config() {
		debug.Logf("category [%s]: %d entries\n", name, len(s.Keys()))
	}
	return s
}

func condition(s *ini.Section) (*Condition, error) {
	if !s.HasKey("Condition") {
		return nil, nil
	}
	return CompileCondition(s.Key("Condition").Value())
}

func (l *loader) loadStrings(plan *Plan) error {
	idx := l.index("TLKList")
	if idx == nil {
		return nil
	}
	for _, key := range idx.Keys() {
		name := key.Name()
		if rest, ok := strings.CutPrefix(name, "StrRef"); ok {
			id, err := strconv.Atoi(rest)
			if err != nil {
				return fmt.Errorf("%w: bad string reference key %q", ErrLoad, name)
			}
			s, err := l.section(key.Value())
			if err != nil {
				return err
			}
			cond, err := condition(s)
			if err != nil {
				return err
			}
			plan.Strings = append(plan.Strings, StringEntry{Cond: cond, Op: &mod.AppendString{
				Name:      key.Value(),
				Text:      resolve.Unescape(s.Key("Text").Value()),
				Voiceover: s.Key("Voiceover").Value(),
				Token:     id,
			}})
			continue
		}
		if strings.HasPrefix(name, "Replace") {
			s, err := l.section(key.Value())
			if err != nil {
				return err
			}
			cond, err := condition(s)
			if err != nil {
				return err
			}
			ref, err := strconv.Atoi(s.Key("StrRef").Value())
			if err != nil {
				return fmt.Errorf("%w: [%s]: bad StrRef", ErrLoad, key.Value())
			}
			token := -1
			if s.HasKey("Token") {
				token, err = strconv.Atoi(s.Key("Token").Value())
				if err != nil {
					return fmt.Errorf("%w: [%s]: bad Token", ErrLoad, key.Value())
				}
			}
			plan.Strings = append(plan.Strings, StringEntry{Cond: cond, Op: &mod.ReplaceString{
				Name:      key.Value(),
				Ref:       int32(ref),
				Text:      resolve.Unescape(s.Key("Text").Value()),
				Voiceover: s.Key("Voiceover").Value(),
				Token:     token,
			}})
			continue
		}
		return fmt.Errorf("%w: [TLKList]: unrecognized key %q", ErrLoad, name)
	}
	return nil
}

func (l *loader) loadInstall(plan *Plan) error {
	idx := l.index("InstallList")
	if idx == nil {
		return nil
	}
	for _, key := range idx.Keys() {
		s, err := l.section(key.Value())
		if err != nil {
			return err
		}
		replace := false
		if s.HasKey("Replace") {
			replace, _ = strconv.ParseBool(s.Key("Replace").Value())
		}
		plan.Install = append(plan.Install, InstallFile{
			Folder:  s.Key("Folder").Value(),
			Name:    s.Key("Name").Value(),
			SaveAs:  s.Key("SaveAs").Value(),
			Replace: replace,
		})
	}
	return nil
}

func (l *loader) loadTables(plan *Plan) error {
	idx := l.index("2DAList")
	if idx == nil {
		return nil
	}
	for _, key := range idx.Keys() {
		file := key.Value()
		s, err := l.section(file)
		if err != nil {
			return err
		}
		patch := TablePatch{File: file}
		for _, entry := range s.Keys() {
			te, err := l.loadTableEntry(entry.Name(), entry.Value())
			if err != nil {
				return err
			}
			patch.Entries = append(patch.Entries, te)
		}
		plan.Tables = append(plan.Tables, patch)
	}
	return nil
}

func (l *loader) loadTableEntry(kind, section string) (TableEntry, error) {
	s, err := l.section(section)
	if err != nil {
		return TableEntry{}, err
	}
	cond, err := condition(s)
	if err != nil {
		return TableEntry{}, err
	}
	var op mod.TableOp
	switch {
	case strings.HasPrefix(kind, "ChangeRow"):
		op, err = l.loadChangeRow(s)
	case strings.HasPrefix(kind, "AddRow"):
		op, err = l.loadAddRow(s)
	case strings.HasPrefix(kind, "CopyRow"):
		op, err = l.loadCopyRow(s)
	case strings.HasPrefix(kind, "AddColumn"):
		op, err = l.loadAddColumn(s)
	default:
		return TableEntry{}, fmt.Errorf("%w: unrecognized table entry key %q", ErrLoad, kind)
	}
	if err != nil {
		return TableEntry{}, fmt.Errorf("%w: [%s]: %w", ErrLoad, section, err)
	}
	return TableEntry{Cond: cond, Op: op}, nil
}

// rowTarget builds the entry's target from RowIndex/RowLabel/ColumnLookup.
// Exactly one method must be present.
func rowTarget(s *ini.Section) (resolve.Target, error) {
	var targets []resolve.Target
	if s.HasKey("RowIndex") {
		v, err := resolve.ParseTargetValue(s.Key("RowIndex").Value())
		if err != nil {
			return nil, err
		}
		targets = append(targets, resolve.ByIndex{V: v})
	}
	if s.HasKey("RowLabel") {
		v, err := resolve.ParseTargetValue(s.Key("RowLabel").Value())
		if err != nil {
			return nil, err
		}
		targets = append(targets, resolve.ByLabel{V: v})
	}
	if s.HasKey("ColumnLookup") {
		if !s.HasKey("LookupValue") {
			return nil, fmt.Errorf("ColumnLookup without LookupValue")
		}
		v, err := resolve.ParseTargetValue(s.Key("LookupValue").Value())
		if err != nil {
			return nil, err
		}
		targets = append(targets, resolve.ByCell{Column: s.Key("ColumnLookup").Value(), V: v})
	}
	switch len(targets) {
	case 0:
		return nil, fmt.Errorf("no target method specified")
	case 1:
		return targets[0], nil
	}
	return nil, fmt.Errorf("%w: %d methods specified", resolve.ErrConflictingTarget, len(targets))
}

// rowEdits parses the cell assignments and token stores of a row section,
// in key order. Reserved names are the caller's structural keys.
func rowEdits(s *ini.Section, reserved ...string) ([]mod.CellAssign, []mod.TokenStore, error) {
	var cells []mod.CellAssign
	var stores []mod.TokenStore
keys:
	for _, key := range s.Keys() {
		name := key.Name()
		for _, r := range reserved {
			if name == r {
				continue keys
			}
		}
		if rest, ok := strings.CutPrefix(name, "2DAMEMORY"); ok {
			id, err := strconv.Atoi(rest)
			if err != nil {
				return nil, nil, fmt.Errorf("bad token key %q", name)
			}
			src, err := resolve.ParseStoreSource(key.Value())
			if err != nil {
				return nil, nil, err
			}
			stores = append(stores, mod.TokenStore{ID: id, Source: src})
			continue
		}
		v, err := resolve.ParseValue(key.Value())
		if err != nil {
			return nil, nil, fmt.Errorf("column %q: %w", name, err)
		}
		cells = append(cells, mod.CellAssign{Column: name, V: v})
	}
	return cells, stores, nil
}

func (l *loader) loadChangeRow(s *ini.Section) (mod.TableOp, error) {
	target, err := rowTarget(s)
	if err != nil {
		return nil, err
	}
	cells, stores, err := rowEdits(s, "RowIndex", "RowLabel", "ColumnLookup", "LookupValue", "Condition")
	if err != nil {
		return nil, err
	}
	return &mod.ChangeRow{Name: s.Name(), Target: target, Cells: cells, Stores: stores}, nil
}

func (l *loader) loadAddRow(s *ini.Section) (mod.TableOp, error) {
	if s.HasKey("RowIndex") || s.HasKey("ColumnLookup") {
		return nil, fmt.Errorf("AddRow does not take a target method")
	}
	var label resolve.Value
	if s.HasKey("RowLabel") {
		var err error
		label, err = resolve.ParseValue(s.Key("RowLabel").Value())
		if err != nil {
			return nil, err
		}
	}
	cells, stores, err := rowEdits(s, "RowLabel", "ExclusiveColumn", "Condition")
	if err != nil {
		return nil, err
	}
	return &mod.AddRow{
		Name:            s.Name(),
		ExclusiveColumn: s.Key("ExclusiveColumn").Value(),
		Label:           label,
		Cells:           cells,
		Stores:          stores,
	}, nil
}

func (l *loader) loadCopyRow(s *ini.Section) (mod.TableOp, error) {
	target, err := rowTarget(s)
	if err != nil {
		return nil, err
	}
	var label resolve.Value
	if s.HasKey("NewRowLabel") {
		label, err = resolve.ParseValue(s.Key("NewRowLabel").Value())
		if err != nil {
			return nil, err
		}
	}
	cells, stores, err := rowEdits(s,
		"RowIndex", "RowLabel", "ColumnLookup", "LookupValue",
		"NewRowLabel", "ExclusiveColumn", "Condition")
	if err != nil {
		return nil, err
	}
	return &mod.CopyRow{
		Name:            s.Name(),
		Source:          target,
		ExclusiveColumn: s.Key("ExclusiveColumn").Value(),
		NewLabel:        label,
		Cells:           cells,
		Stores:          stores,
	}, nil
}

func (l *loader) loadAddColumn(s *ini.Section) (mod.TableOp, error) {
	if !s.HasKey("ColumnLabel") {
		return nil, fmt.Errorf("AddColumn without ColumnLabel")
	}
	op := &mod.AddColumn{
		Name:    s.Name(),
		Column:  s.Key("ColumnLabel").Value(),
		Default: resolve.Unescape(s.Key("DefaultValue").Value()),
	}
	for _, key := range s.Keys() {
		name := key.Name()
		switch name {
		case "ColumnLabel", "DefaultValue", "Condition":
			continue
		}
		if rest, ok := strings.CutPrefix(name, "2DAMEMORY"); ok {
			id, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("bad token key %q", name)
			}
			src, err := resolve.ParseColumnStore(key.Value())
			if err != nil {
				return nil, err
			}
			op.Stores = append(op.Stores, mod.TokenStore{ID: id, Source: src})
			continue
		}
		if rest, ok := strings.CutPrefix(name, "I"); ok {
			if n, err := strconv.Atoi(rest); err == nil {
				v, err := resolve.ParseValue(key.Value())
				if err != nil {
					return nil, err
				}
				op.Indexed = append(op.Indexed, mod.IndexOverride{Index: n, V: v})
				continue
			}
		}
		if rest, ok := strings.CutPrefix(name, "L"); ok && rest != "" {
			v, err := resolve.ParseValue(key.Value())
			if err != nil {
				return nil, err
			}
			op.Labeled = append(op.Labeled, mod.LabelOverride{Label: rest, V: v})
			continue
		}
		return nil, fmt.Errorf("unrecognized AddColumn key %q", name)
	}
	return op, nil
}

func (l *loader) loadTrees(plan *Plan) error {
	idx := l.index("GFFList")
	if idx == nil {
		return nil
	}
	for _, key := range idx.Keys() {
		file := key.Value()
		s, err := l.section(file)
		if err != nil {
			return err
		}
		patch := TreePatch{File: file}
		for _, entry := range s.Keys() {
			te, err := l.loadTreeEntry(entry.Name(), entry.Value())
			if err != nil {
				return err
			}
			patch.Entries = append(patch.Entries, te)
		}
		plan.Trees = append(plan.Trees, patch)
	}
	return nil
}

func (l *loader) loadTreeEntry(kind, value string) (TreeEntry, error) {
	switch {
	case strings.HasPrefix(kind, "AddField"):
		s, err := l.section(value)
		if err != nil {
			return TreeEntry{}, err
		}
		cond, err := condition(s)
		if err != nil {
			return TreeEntry{}, err
		}
		op, err := l.loadAddField(s)
		if err != nil {
			return TreeEntry{}, err
		}
		return TreeEntry{Cond: cond, Op: op}, nil
	case strings.HasPrefix(kind, "ModifyField"):
		s, err := l.section(value)
		if err != nil {
			return TreeEntry{}, err
		}
		cond, err := condition(s)
		if err != nil {
			return TreeEntry{}, err
		}
		op, err := l.loadModifyField(s)
		if err != nil {
			return TreeEntry{}, err
		}
		return TreeEntry{Cond: cond, Op: op}, nil
	case strings.HasPrefix(kind, "AddStruct"):
		s, err := l.section(value)
		if err != nil {
			return TreeEntry{}, err
		}
		cond, err := condition(s)
		if err != nil {
			return TreeEntry{}, err
		}
		op, err := l.loadAddStruct(s)
		if err != nil {
			return TreeEntry{}, err
		}
		return TreeEntry{Cond: cond, Op: op}, nil
	case strings.HasPrefix(kind, "CopyToken"):
		s, err := l.section(value)
		if err != nil {
			return TreeEntry{}, err
		}
		cond, err := condition(s)
		if err != nil {
			return TreeEntry{}, err
		}
		op, err := l.loadCopyToken(s)
		if err != nil {
			return TreeEntry{}, err
		}
		return TreeEntry{Cond: cond, Op: op}, nil
	}
	// bare key: a path=value shorthand for ModifyField
	p, err := ir.ParsePath(kind)
	if err != nil {
		return TreeEntry{}, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	v, err := resolve.ParseValue(value)
	if err != nil {
		return TreeEntry{}, fmt.Errorf("%w: %q: %v", ErrLoad, kind, err)
	}
	return TreeEntry{Op: &mod.ModifyField{Name: kind, Path: p, V: v}}, nil
}

func (l *loader) loadAddField(s *ini.Section) (*mod.AddField, error) {
	t, err := ir.ParseType(s.Key("FieldType").Value())
	if err != nil {
		return nil, fmt.Errorf("%w: [%s]: %v", ErrLoad, s.Name(), err)
	}
	p, err := ir.ParsePath(s.Key("Path").Value())
	if err != nil {
		return nil, fmt.Errorf("%w: [%s]: %v", ErrLoad, s.Name(), err)
	}
	op := &mod.AddField{
		Name:  s.Name(),
		Path:  p,
		Label: s.Key("Label").Value(),
		Type:  t,
	}
	if s.HasKey("StructID") {
		op.StructID, err = strconv.Atoi(s.Key("StructID").Value())
		if err != nil {
			return nil, fmt.Errorf("%w: [%s]: bad StructID", ErrLoad, s.Name())
		}
	}
	if s.HasKey("Value") {
		op.V, err = resolve.ParseValue(s.Key("Value").Value())
		if err != nil {
			return nil, fmt.Errorf("%w: [%s]: %v", ErrLoad, s.Name(), err)
		}
	}
	for _, key := range s.Keys() {
		name := key.Name()
		if rest, ok := strings.CutPrefix(name, "2DAMEMORY"); ok {
			id, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: [%s]: bad token key %q", ErrLoad, s.Name(), name)
			}
			if key.Value() != "!FieldPath" {
				return nil, fmt.Errorf("%w: [%s]: AddField token store wants !FieldPath, got %q",
					ErrLoad, s.Name(), key.Value())
			}
			op.StorePath = append(op.StorePath, id)
			continue
		}
		if strings.HasPrefix(name, "AddField") {
			cs, err := l.section(key.Value())
			if err != nil {
				return nil, err
			}
			child, err := l.loadAddField(cs)
			if err != nil {
				return nil, err
			}
			op.Children = append(op.Children, child)
		}
	}
	return op, nil
}

func (l *loader) loadModifyField(s *ini.Section) (*mod.ModifyField, error) {
	p, err := ir.ParsePath(s.Key("Path").Value())
	if err != nil {
		return nil, fmt.Errorf("%w: [%s]: %v", ErrLoad, s.Name(), err)
	}
	v, err := resolve.ParseValue(s.Key("Value").Value())
	if err != nil {
		return nil, fmt.Errorf("%w: [%s]: %v", ErrLoad, s.Name(), err)
	}
	return &mod.ModifyField{Name: s.Name(), Path: p, V: v}, nil
}

func (l *loader) loadAddStruct(s *ini.Section) (*mod.AddStruct, error) {
	p, err := ir.ParsePath(s.Key("Path").Value())
	if err != nil {
		return nil, fmt.Errorf("%w: [%s]: %v", ErrLoad, s.Name(), err)
	}
	op := &mod.AddStruct{Name: s.Name(), Path: p}
	if s.HasKey("StructID") {
		op.StructID, err = strconv.Atoi(s.Key("StructID").Value())
		if err != nil {
			return nil, fmt.Errorf("%w: [%s]: bad StructID", ErrLoad, s.Name())
		}
	}
	for _, key := range s.Keys() {
		name := key.Name()
		if rest, ok := strings.CutPrefix(name, "2DAMEMORY"); ok {
			id, err := strconv.Atoi(rest)
			if err != nil {
				return nil, fmt.Errorf("%w: [%s]: bad token key %q", ErrLoad, s.Name(), name)
			}
			if key.Value() != "ListIndex" {
				return nil, fmt.Errorf("%w: [%s]: AddStruct token store wants ListIndex, got %q",
					ErrLoad, s.Name(), key.Value())
			}
			op.StoreIndex = append(op.StoreIndex, id)
			continue
		}
		if strings.HasPrefix(name, "AddField") {
			cs, err := l.section(key.Value())
			if err != nil {
				return nil, err
			}
			child, err := l.loadAddField(cs)
			if err != nil {
				return nil, err
			}
			op.Children = append(op.Children, child)
		}
	}
	return op, nil
}

func (l *loader) loadCopyToken(s *ini.Section) (*mod.CopyToken, error) {
	op := &mod.CopyToken{Name: s.Name(), Deref: true}
	if s.HasKey("Deref") {
		op.Deref, _ = strconv.ParseBool(s.Key("Deref").Value())
	}
	found := false
	for _, key := range s.Keys() {
		rest, ok := strings.CutPrefix(key.Name(), "2DAMEMORY")
		if !ok {
			continue
		}
		if found {
			return nil, fmt.Errorf("%w: [%s]: more than one token copy", ErrLoad, s.Name())
		}
		dst, err := strconv.Atoi(rest)
		if err != nil {
			return nil, fmt.Errorf("%w: [%s]: bad token key %q", ErrLoad, s.Name(), key.Name())
		}
		srcRest, ok := strings.CutPrefix(key.Value(), "2DAMEMORY")
		if !ok {
			return nil, fmt.Errorf("%w: [%s]: CopyToken source wants 2DAMEMORY{n}, got %q",
				ErrLoad, s.Name(), key.Value())
		}
		src, err := strconv.Atoi(srcRest)
		if err != nil {
			return nil, fmt.Errorf("%w: [%s]: bad token source %q", ErrLoad, s.Name(), key.Value())
		}
		op.Dst, op.Src = dst, src
		found = true
	}
	if !found {
		return nil, fmt.Errorf("%w: [%s]: CopyToken without a token copy", ErrLoad, s.Name())
	}
	return op, nil
}

func (l *loader) loadSources(plan *Plan) error {
	idx := l.index("CompileList")
	if idx == nil {
		return nil
	}
	for _, key := range idx.Keys() {
		file := key.Value()
		sp := SourcePatch{File: file, Op: &mod.SubstituteSource{Name: file}}
		if s, err := l.f.GetSection(file); err == nil {
			cond, err := condition(s)
			if err != nil {
				return err
			}
			sp.Cond = cond
		}
		plan.Sources = append(plan.Sources, sp)
	}
	return nil
}

func (l *loader) loadCodes(plan *Plan) error {
	idx := l.index("HACKList")
	if idx == nil {
		return nil
	}
	for _, key := range idx.Keys() {
		file := key.Value()
		s, err := l.section(file)
		if err != nil {
			return err
		}
		cond, err := condition(s)
		if err != nil {
			return err
		}
		patch := CodePatch{File: file}
		for _, entry := range s.Keys() {
			name := entry.Name()
			if name == "Condition" {
				continue
			}
			offStr, width := name, 16
			if rest, ok := strings.CutSuffix(name, ":32"); ok {
				offStr, width = rest, 32
			}
			off, err := strconv.ParseInt(offStr, 0, 32)
			if err != nil {
				return fmt.Errorf("%w: [%s]: bad offset %q", ErrLoad, file, name)
			}
			v, err := resolve.ParseValue(entry.Value())
			if err != nil {
				return fmt.Errorf("%w: [%s]: %v", ErrLoad, file, err)
			}
			patch.Entries = append(patch.Entries, CodeEntry{Cond: cond, Op: &mod.PatchOffset{
				Name:   file,
				Offset: int(off),
				Width:  width,
				V:      v,
			}})
		}
		plan.Codes = append(plan.Codes, patch)
	}
	return nil
}

func (l *loader) loadSounds(plan *Plan) error {
	idx := l.index("SSFList")
	if idx == nil {
		return nil
	}
	for _, key := range idx.Keys() {
		file := key.Value()
		s, err := l.section(file)
		if err != nil {
			return err
		}
		cond, err := condition(s)
		if err != nil {
			return err
		}
		patch := SoundPatch{File: file}
		for _, entry := range s.Keys() {
			if entry.Name() == "Condition" {
				continue
			}
			v, err := resolve.ParseValue(entry.Value())
			if err != nil {
				return fmt.Errorf("%w: [%s]: %v", ErrLoad, file, err)
			}
			patch.Entries = append(patch.Entries, SoundEntry{Cond: cond, Op: &mod.SetSlot{
				Name: file,
				Slot: entry.Name(),
				V:    v,
			}})
		}
		plan.Sounds = append(plan.Sounds, patch)
	}
	return nil
}
