package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Apply   bool
	Op      bool
	Resolve bool
	Config  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Apply = boolEnv("RESPATCH_DEBUG_APPLY")
	d.Op = boolEnv("RESPATCH_DEBUG_OP")
	d.Resolve = boolEnv("RESPATCH_DEBUG_RESOLVE")
	d.Config = boolEnv("RESPATCH_DEBUG_CONFIG")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Apply() bool {
	return d.Apply
}
func Op() bool {
	return d.Op
}
func Resolve() bool {
	return d.Resolve
}
func Config() bool {
	return d.Config
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
