package ir

import (
	"errors"
	"testing"
)

type pathTest struct {
	in  string
	out string
	err bool
}

var pathTests = []pathTest{
	{in: "", out: ""},
	{in: "EntryList", out: "EntryList"},
	{in: "EntryList/0", out: "EntryList/0"},
	{in: "EntryList/0/RepliesList/12/Text", out: "EntryList/0/RepliesList/12/Text"},
	{in: "a//b", err: true},
	{in: "/a", err: true},
}

func TestParsePath(t *testing.T) {
	for _, tc := range pathTests {
		p, err := ParsePath(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("ParsePath(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePath(%q): %v", tc.in, err)
			continue
		}
		if p.String() != tc.out {
			t.Errorf("ParsePath(%q).String() = %q, want %q", tc.in, p.String(), tc.out)
		}
	}
}

func TestParsePathSteps(t *testing.T) {
	p, err := ParsePath("EntryList/3/Text")
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 3 {
		t.Fatalf("got %d steps", len(p))
	}
	if p[0].Indexed || p[0].Label != "EntryList" {
		t.Errorf("step 0: %+v", p[0])
	}
	if !p[1].Indexed || p[1].Index != 3 {
		t.Errorf("step 1: %+v", p[1])
	}
	if p[2].Indexed || p[2].Label != "Text" {
		t.Errorf("step 2: %+v", p[2])
	}
}

func TestChildElemCopy(t *testing.T) {
	base, err := ParsePath("EntryList")
	if err != nil {
		t.Fatal(err)
	}
	a := base.Elem(0)
	b := base.Elem(1)
	if a.String() != "EntryList/0" || b.String() != "EntryList/1" {
		t.Errorf("Elem shares backing storage: %q %q", a.String(), b.String())
	}
	c := a.Child("Text")
	if c.String() != "EntryList/0/Text" {
		t.Errorf("Child: %q", c.String())
	}
}

func TestNavigate(t *testing.T) {
	root := NewStruct(0)
	list := NewList()
	root.SetField("EntryList", list)
	s0 := NewStruct(1)
	list.Append(s0)
	s0.SetField("Text", FromString("hello"))

	p, _ := ParsePath("EntryList/0/Text")
	node, err := root.At(p)
	if err != nil {
		t.Fatal(err)
	}
	if node.String != "hello" {
		t.Errorf("got %q", node.String)
	}
	if node.PathTo().String() != "EntryList/0/Text" {
		t.Errorf("PathTo: %q", node.PathTo().String())
	}

	bad, _ := ParsePath("EntryList/1/Text")
	if _, err := root.At(bad); !errors.Is(err, ErrNoSuchPath) {
		t.Errorf("got %v, want ErrNoSuchPath", err)
	}
}
