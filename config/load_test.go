package config

import (
	"errors"
	"testing"

	"github.com/modforge/respatch/mod"
	"github.com/modforge/respatch/resolve"
)

const fullPatch = `
[TLKList]
StrRef0=new_spell_name
Replace0=fix_typo

[new_spell_name]
Text=Stunning Burst
Voiceover=n_stun

[fix_typo]
StrRef=42
Text=Corrected line.
Token=1

[InstallList]
File0=install_override

[install_override]
Folder=override
Name=n_model.mdl
Replace=1

[2DAList]
Table0=spells.2da

[spells.2da]
ChangeRow0=spells_fix_heal
AddRow0=spells_new
AddColumn0=spells_newcol

[spells_fix_heal]
RowLabel=heal
name=25
2DAMEMORY1=RowIndex

[spells_new]
RowLabel=2
ExclusiveColumn=label
label=new_spell
name=StrRef0
2DAMEMORY0=RowIndex

[spells_newcol]
ColumnLabel=newcol
DefaultValue=0
I5=1
Lheal=2
2DAMEMORY2=I5

[GFFList]
File0=n_creature.utc

[n_creature.utc]
AddField0=utc_add_str
ModifyField0=utc_set_hp
AddStruct0=utc_add_class
CopyToken0=utc_copy
FirstName=StrRef0

[utc_add_str]
FieldType=Byte
Path=
Label=Str
Value=18
2DAMEMORY3=!FieldPath

[utc_set_hp]
Path=HitPoints
Value=2DAMEMORY0

[utc_add_class]
Path=ClassList
StructID=2
2DAMEMORY4=ListIndex
AddField0=utc_class_id

[utc_class_id]
FieldType=Int
Path=
Label=Class
Value=5

[utc_copy]
2DAMEMORY5=2DAMEMORY3

[CompileList]
Script0=n_spell.nss

[HACKList]
File0=n_patch.ncs

[n_patch.ncs]
0x1A=2DAMEMORY0
0x20:32=-2

[SSFList]
File0=n_sounds.ssf

[n_sounds.ssf]
Battlecry 1=StrRef0
`

func loadTest(t *testing.T, src string) *Plan {
	t.Helper()
	plan, err := Load([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return plan
}

func TestLoadStrings(t *testing.T) {
	plan := loadTest(t, fullPatch)
	if len(plan.Strings) != 2 {
		t.Fatalf("got %d string entries", len(plan.Strings))
	}
	app, ok := plan.Strings[0].Op.(*mod.AppendString)
	if !ok {
		t.Fatalf("entry 0: %T", plan.Strings[0].Op)
	}
	if app.Token != 0 || app.Text != "Stunning Burst" || app.Voiceover != "n_stun" {
		t.Errorf("append: %+v", app)
	}
	rep, ok := plan.Strings[1].Op.(*mod.ReplaceString)
	if !ok {
		t.Fatalf("entry 1: %T", plan.Strings[1].Op)
	}
	if rep.Ref != 42 || rep.Text != "Corrected line." || rep.Token != 1 {
		t.Errorf("replace: %+v", rep)
	}
}

func TestLoadInstall(t *testing.T) {
	plan := loadTest(t, fullPatch)
	if len(plan.Install) != 1 {
		t.Fatalf("got %d install entries", len(plan.Install))
	}
	f := plan.Install[0]
	if f.Folder != "override" || f.Name != "n_model.mdl" || !f.Replace {
		t.Errorf("install: %+v", f)
	}
}

func TestLoadTablesDeclarationOrder(t *testing.T) {
	plan := loadTest(t, fullPatch)
	if len(plan.Tables) != 1 {
		t.Fatalf("got %d table patches", len(plan.Tables))
	}
	p := plan.Tables[0]
	if p.File != "spells.2da" {
		t.Errorf("file = %q", p.File)
	}
	if len(p.Entries) != 3 {
		t.Fatalf("got %d entries", len(p.Entries))
	}
	if _, ok := p.Entries[0].Op.(*mod.ChangeRow); !ok {
		t.Errorf("entry 0: %T", p.Entries[0].Op)
	}
	add, ok := p.Entries[1].Op.(*mod.AddRow)
	if !ok {
		t.Fatalf("entry 1: %T", p.Entries[1].Op)
	}
	if add.ExclusiveColumn != "label" || len(add.Cells) != 2 || len(add.Stores) != 1 {
		t.Errorf("add row: %+v", add)
	}
	col, ok := p.Entries[2].Op.(*mod.AddColumn)
	if !ok {
		t.Fatalf("entry 2: %T", p.Entries[2].Op)
	}
	if col.Column != "newcol" || col.Default != "0" {
		t.Errorf("add column: %+v", col)
	}
	if len(col.Indexed) != 1 || col.Indexed[0].Index != 5 {
		t.Errorf("indexed overrides: %+v", col.Indexed)
	}
	if len(col.Labeled) != 1 || col.Labeled[0].Label != "heal" {
		t.Errorf("labeled overrides: %+v", col.Labeled)
	}
	if len(col.Stores) != 1 || col.Stores[0].ID != 2 {
		t.Errorf("stores: %+v", col.Stores)
	}
}

func TestLoadTrees(t *testing.T) {
	plan := loadTest(t, fullPatch)
	if len(plan.Trees) != 1 {
		t.Fatalf("got %d tree patches", len(plan.Trees))
	}
	entries := plan.Trees[0].Entries
	if len(entries) != 5 {
		t.Fatalf("got %d entries", len(entries))
	}
	add, ok := entries[0].Op.(*mod.AddField)
	if !ok {
		t.Fatalf("entry 0: %T", entries[0].Op)
	}
	if add.Label != "Str" || len(add.StorePath) != 1 || add.StorePath[0] != 3 {
		t.Errorf("add field: %+v", add)
	}
	if _, ok := entries[1].Op.(*mod.ModifyField); !ok {
		t.Errorf("entry 1: %T", entries[1].Op)
	}
	st, ok := entries[2].Op.(*mod.AddStruct)
	if !ok {
		t.Fatalf("entry 2: %T", entries[2].Op)
	}
	if st.StructID != 2 || len(st.StoreIndex) != 1 || st.StoreIndex[0] != 4 {
		t.Errorf("add struct: %+v", st)
	}
	if len(st.Children) != 1 || st.Children[0].Label != "Class" {
		t.Errorf("struct children: %+v", st.Children)
	}
	ct, ok := entries[3].Op.(*mod.CopyToken)
	if !ok {
		t.Fatalf("entry 3: %T", entries[3].Op)
	}
	if ct.Dst != 5 || ct.Src != 3 || !ct.Deref {
		t.Errorf("copy token: %+v", ct)
	}
	// bare path=value shorthand
	mf, ok := entries[4].Op.(*mod.ModifyField)
	if !ok {
		t.Fatalf("entry 4: %T", entries[4].Op)
	}
	if mf.Path.String() != "FirstName" {
		t.Errorf("shorthand path: %q", mf.Path.String())
	}
}

func TestLoadCodes(t *testing.T) {
	plan := loadTest(t, fullPatch)
	if len(plan.Codes) != 1 {
		t.Fatalf("got %d code patches", len(plan.Codes))
	}
	entries := plan.Codes[0].Entries
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	p0 := entries[0].Op.(*mod.PatchOffset)
	if p0.Offset != 0x1A || p0.Width != 16 {
		t.Errorf("entry 0: %+v", p0)
	}
	p1 := entries[1].Op.(*mod.PatchOffset)
	if p1.Offset != 0x20 || p1.Width != 32 {
		t.Errorf("entry 1: %+v", p1)
	}
}

func TestLoadSourcesAndSounds(t *testing.T) {
	plan := loadTest(t, fullPatch)
	if len(plan.Sources) != 1 || plan.Sources[0].File != "n_spell.nss" {
		t.Errorf("sources: %+v", plan.Sources)
	}
	if len(plan.Sounds) != 1 || len(plan.Sounds[0].Entries) != 1 {
		t.Fatalf("sounds: %+v", plan.Sounds)
	}
	slot := plan.Sounds[0].Entries[0].Op.(*mod.SetSlot)
	if slot.Slot != "Battlecry 1" {
		t.Errorf("slot: %+v", slot)
	}
}

func TestLoadConflictingTarget(t *testing.T) {
	src := `
[2DAList]
Table0=spells.2da
[spells.2da]
ChangeRow0=bad
[bad]
RowIndex=1
RowLabel=heal
name=5
`
	if _, err := Load([]byte(src)); !errors.Is(err, resolve.ErrConflictingTarget) {
		t.Errorf("got %v, want ErrConflictingTarget", err)
	}
}

func TestLoadMissingTarget(t *testing.T) {
	src := `
[2DAList]
Table0=spells.2da
[spells.2da]
ChangeRow0=bad
[bad]
name=5
`
	if _, err := Load([]byte(src)); !errors.Is(err, ErrLoad) {
		t.Errorf("got %v, want ErrLoad", err)
	}
}

func TestLoadStorageOnlyResolverRejected(t *testing.T) {
	src := `
[2DAList]
Table0=spells.2da
[spells.2da]
ChangeRow0=bad
[bad]
RowLabel=heal
name=RowIndex
`
	if _, err := Load([]byte(src)); !errors.Is(err, resolve.ErrStorageOnly) {
		t.Errorf("got %v, want ErrStorageOnly", err)
	}
}

func TestLoadAddFieldStoreMustBeFieldPath(t *testing.T) {
	src := `
[GFFList]
File0=x.utc
[x.utc]
AddField0=bad
[bad]
FieldType=Int
Path=
Label=X
2DAMEMORY0=RowIndex
`
	if _, err := Load([]byte(src)); !errors.Is(err, ErrLoad) {
		t.Errorf("got %v, want ErrLoad", err)
	}
}

func TestLoadMissingSection(t *testing.T) {
	src := `
[2DAList]
Table0=spells.2da
`
	if _, err := Load([]byte(src)); !errors.Is(err, ErrLoad) {
		t.Errorf("got %v, want ErrLoad", err)
	}
}

func TestLoadCondition(t *testing.T) {
	src := `
[TLKList]
StrRef0=line
[line]
Condition=defined(0) && strref(0) > 10
Text=Hi
`
	plan := loadTest(t, src)
	if len(plan.Strings) != 1 {
		t.Fatalf("got %d entries", len(plan.Strings))
	}
	if plan.Strings[0].Cond == nil {
		t.Fatal("condition not compiled")
	}
}

func TestLoadBadCondition(t *testing.T) {
	src := `
[TLKList]
StrRef0=line
[line]
Condition=)(
Text=Hi
`
	if _, err := Load([]byte(src)); err == nil {
		t.Error("bad expression must fail the load")
	}
}
