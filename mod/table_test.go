package mod

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/modforge/respatch/ir"
	"github.com/modforge/respatch/memory"
	"github.com/modforge/respatch/resolve"
)

func testCtx() *Ctx {
	return &Ctx{Mem: memory.NewStore()}
}

func spells() *ir.Table {
	t := ir.NewTable("label", "name")
	r0 := t.NewRow("0")
	r0.SetCell("label", "stun")
	r0.SetCell("name", "10")
	r1 := t.NewRow("1")
	r1.SetCell("label", "heal")
	r1.SetCell("name", "25")
	return t
}

func TestChangeRow(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &ChangeRow{
		Target: resolve.ByLabel{V: resolve.Constant("1")},
		Cells:  []CellAssign{{Column: "name", V: resolve.Constant("99")}},
		Stores: []TokenStore{{ID: 0, Source: resolve.RowIndex{}}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	if tab.Rows[1].Cell("name") != "99" {
		t.Errorf("cell: %q", tab.Rows[1].Cell("name"))
	}
	v, err := c.Mem.TokenString(0)
	if err != nil || v != "1" {
		t.Errorf("token 0: %q %v", v, err)
	}
}

func TestChangeRowMissingTargetWarnsAndSkips(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &ChangeRow{
		Target: resolve.ByLabel{V: resolve.Constant("nope")},
		Cells:  []CellAssign{{Column: "name", V: resolve.Constant("99")}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatalf("missing target must not be fatal: %v", err)
	}
	if c.Warnings != 1 {
		t.Errorf("warnings = %d", c.Warnings)
	}
	if tab.Rows[0].Cell("name") != "10" || tab.Rows[1].Cell("name") != "25" {
		t.Error("skipped op must not modify the table")
	}
}

func TestAddRowStoresRowIndex(t *testing.T) {
	c := testCtx()
	tab := &ir.Table{Columns: []string{"label"}}
	op := &AddRow{
		Cells:  []CellAssign{{Column: "label", V: resolve.Constant("x")}},
		Stores: []TokenStore{{ID: 0, Source: resolve.RowIndex{}}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	v, err := c.Mem.TokenString(0)
	if err != nil || v != "0" {
		t.Errorf("token 0: %q %v", v, err)
	}
}

func TestAddRowStoresRowLabel(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &AddRow{
		Label:  resolve.Constant("MyNewRow"),
		Stores: []TokenStore{{ID: 1, Source: resolve.RowLabel{}}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	v, err := c.Mem.TokenString(1)
	if err != nil || v != "MyNewRow" {
		t.Errorf("token 1: %q %v", v, err)
	}
}

func TestAddRowDefaultLabelIsRowCount(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &AddRow{}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	if tab.Rows[2].Label != "2" {
		t.Errorf("label = %q", tab.Rows[2].Label)
	}
}

func TestExclusiveColumnIdempotence(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &AddRow{
		ExclusiveColumn: "label",
		Cells: []CellAssign{
			{Column: "label", V: resolve.Constant("X")},
			{Column: "name", V: resolve.Constant("50")},
		},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, r := range tab.Rows {
		if r.Cell("label") == "X" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d rows with label X, want exactly 1", count)
	}
	if len(tab.Rows) != 3 {
		t.Errorf("got %d rows", len(tab.Rows))
	}
}

// AddRow with an explicit row label, token 0 recording the final position
func TestAddRowScenario(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &AddRow{
		ExclusiveColumn: "label",
		Label:           resolve.Constant("2"),
		Cells: []CellAssign{
			{Column: "label", V: resolve.Constant("new_spell")},
			{Column: "name", V: resolve.Constant("102")},
		},
		Stores: []TokenStore{{ID: 0, Source: resolve.RowIndex{}}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	i, row := tab.RowByLabel("2")
	if row == nil {
		t.Fatal("no row labeled 2")
	}
	if row.Cell("label") != "new_spell" || row.Cell("name") != "102" {
		t.Errorf("cells: %v", row.Cells)
	}
	v, err := c.Mem.TokenString(0)
	if err != nil || v != "2" {
		t.Errorf("token 0 = %q %v, want the final position %d", v, err, i)
	}
}

func TestCopyRowMissingSourceIsFatal(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &CopyRow{Source: resolve.ByLabel{V: resolve.Constant("nope")}}
	if err := op.ApplyTable(c, tab); !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("got %v, want ErrSourceNotFound", err)
	}
}

func TestCopyRowClonesAndOverrides(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &CopyRow{
		Source:   resolve.ByIndex{V: resolve.Constant("0")},
		NewLabel: resolve.Constant("5"),
		Cells:    []CellAssign{{Column: "name", V: resolve.Constant("11")}},
		Stores:   []TokenStore{{ID: 2, Source: resolve.RowIndex{}}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	r := tab.Rows[2]
	if r.Label != "5" {
		t.Errorf("label = %q", r.Label)
	}
	want := map[string]string{"label": "stun", "name": "11"}
	if d := cmp.Diff(want, r.Cells); d != "" {
		t.Errorf("cells (-want +got):\n%s", d)
	}
	if v, _ := c.Mem.TokenString(2); v != "2" {
		t.Errorf("token 2 = %q", v)
	}
}

func TestCopyRowExclusiveUpdatesInPlace(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &CopyRow{
		Source:          resolve.ByIndex{V: resolve.Constant("0")},
		ExclusiveColumn: "label",
		Cells:           []CellAssign{{Column: "label", V: resolve.Constant("heal")}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	if len(tab.Rows) != 2 {
		t.Fatalf("got %d rows, want update in place", len(tab.Rows))
	}
	// source cells land on the matched row, then the override reasserts
	if tab.Rows[1].Cell("name") != "10" || tab.Rows[1].Cell("label") != "heal" {
		t.Errorf("row 1: %v", tab.Rows[1].Cells)
	}
}

func TestAddColumnOverridePrecedence(t *testing.T) {
	c := testCtx()
	tab := ir.NewTable("label")
	for i := 0; i < 7; i++ {
		tab.NewRow("")
	}
	op := &AddColumn{
		Column:  "newcol",
		Default: "0",
		Indexed: []IndexOverride{{Index: 5, V: resolve.Constant("1")}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	for i, r := range tab.Rows {
		want := "0"
		if i == 5 {
			want = "1"
		}
		if r.Cell("newcol") != want {
			t.Errorf("row %d: %q, want %q", i, r.Cell("newcol"), want)
		}
	}
}

func TestAddColumnStoresCellValueNotRow(t *testing.T) {
	c := testCtx()
	tab := spells()
	op := &AddColumn{
		Column:  "cost",
		Default: "",
		Labeled: []LabelOverride{{Label: "1", V: resolve.Constant("300")}},
		Stores:  []TokenStore{{ID: 4, Source: resolve.ColumnAtLabel("1")}},
	}
	if err := op.ApplyTable(c, tab); err != nil {
		t.Fatal(err)
	}
	v, err := c.Mem.TokenString(4)
	if err != nil || v != "300" {
		t.Errorf("token 4 = %q %v, want the new column's value", v, err)
	}
}
