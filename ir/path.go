package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Step is one navigation step in a StructuralPath: a field label inside a
// struct, or an element index inside a list.
type Step struct {
	Label   string
	Index   int
	Indexed bool
}

func (s Step) String() string {
	if s.Indexed {
		return strconv.Itoa(s.Index)
	}
	return s.Label
}

// StructuralPath identifies a location inside a tree resource as an ordered
// sequence of steps from the root. It is a first-class value: the memory
// store can hold one, and tree ops navigate with it.
type StructuralPath []Step

func (p StructuralPath) String() string {
	segs := make([]string, len(p))
	for i, s := range p {
		segs[i] = s.String()
	}
	return strings.Join(segs, "/")
}

// Child returns a copy of p extended with a label step.
func (p StructuralPath) Child(label string) StructuralPath {
	res := make(StructuralPath, len(p), len(p)+1)
	copy(res, p)
	return append(res, Step{Label: label})
}

// Elem returns a copy of p extended with an index step.
func (p StructuralPath) Elem(i int) StructuralPath {
	res := make(StructuralPath, len(p), len(p)+1)
	copy(res, p)
	return append(res, Step{Index: i, Indexed: true})
}

// ParsePath parses a /-separated path of labels and indices. A segment of
// digits is an index step, anything else a label step. The empty string is
// the root path.
func ParsePath(s string) (StructuralPath, error) {
	if s == "" {
		return nil, nil
	}
	segs := strings.Split(s, "/")
	res := make(StructuralPath, 0, len(segs))
	for _, seg := range segs {
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrParsePath, s)
		}
		if isDigits(seg) {
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil, fmt.Errorf("%w: index %q in %q: %v", ErrParsePath, seg, s, err)
			}
			res = append(res, Step{Index: i, Indexed: true})
			continue
		}
		res = append(res, Step{Label: seg})
	}
	return res, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
