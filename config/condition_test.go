package config

import (
	"testing"

	"github.com/modforge/respatch/memory"
)

var conditionTests = []struct {
	src  string
	want bool
}{
	{"true", true},
	{"false", false},
	{"defined(0)", true},
	{"defined(9)", false},
	{"token(0) == 'stun'", true},
	{"strref(1) > 100", true},
	{"strref(1) > 100 && !defined(9)", true},
}

func TestConditionEval(t *testing.T) {
	mem := memory.NewStore()
	mem.SetToken(0, memory.StringValue("stun"))
	mem.SetStrRef(1, 136600)
	for _, tc := range conditionTests {
		c, err := CompileCondition(tc.src)
		if err != nil {
			t.Errorf("%q: %v", tc.src, err)
			continue
		}
		got, err := c.Eval(mem)
		if err != nil {
			t.Errorf("%q: %v", tc.src, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%q = %v, want %v", tc.src, got, tc.want)
		}
	}
}

func TestConditionUndefinedTokenReadFails(t *testing.T) {
	mem := memory.NewStore()
	c, err := CompileCondition("token(3) == 'x'")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Eval(mem); err == nil {
		t.Error("reading an unwritten token must fail")
	}
}
