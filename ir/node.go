package ir

import (
	"fmt"
	"strconv"
)

type Type int

const (
	StructType Type = iota
	ListType
	IntType
	FloatType
	StringType
	ResRefType
	LocStringType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		StructType:    "Struct",
		ListType:      "List",
		IntType:       "Int",
		FloatType:     "Float",
		StringType:    "String",
		ResRefType:    "ResRef",
		LocStringType: "LocString",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

// ParseType maps a field-type name from a patch description to a Type.
// Narrow integer and string spellings collapse onto the engine's types.
func ParseType(s string) (Type, error) {
	tt, ok := map[string]Type{
		"Struct":       StructType,
		"List":         ListType,
		"Byte":         IntType,
		"Char":         IntType,
		"Word":         IntType,
		"Short":        IntType,
		"DWord":        IntType,
		"Int":          IntType,
		"Int64":        IntType,
		"Float":        FloatType,
		"Double":       FloatType,
		"String":       StringType,
		"ExoString":    StringType,
		"ResRef":       ResRefType,
		"LocString":    LocStringType,
		"ExoLocString": LocStringType,
	}[s]
	if !ok {
		return 0, fmt.Errorf("unrecognized field type %q", s)
	}
	return tt, nil
}

func (t Type) IsLeaf() bool {
	switch t {
	case StructType, ListType:
		return false
	default:
		return true
	}
}

// Node is a node in a tree resource. StructType nodes hold labeled fields
// in Values, ListType nodes hold unlabeled struct elements in Values, leaf
// nodes hold a scalar. Parent links let a node report its own path.
type Node struct {
	Type        Type
	Label       string
	Parent      *Node
	ParentIndex int
	Values      []*Node

	StructID int

	String  string
	Int64   int64
	Float64 float64
	StrRef  int32
}

func NewStruct(structID int) *Node {
	return &Node{Type: StructType, StructID: structID}
}

func NewList() *Node {
	return &Node{Type: ListType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float64: v}
}

func FromResRef(v string) *Node {
	return &Node{Type: ResRefType, String: v}
}

func FromLocString(text string, strRef int32) *Node {
	return &Node{Type: LocStringType, String: text, StrRef: strRef}
}

// Field returns the child with the given label, or nil. Struct nodes only.
func (y *Node) Field(label string) *Node {
	if y.Type != StructType {
		return nil
	}
	for _, c := range y.Values {
		if c.Label == label {
			return c
		}
	}
	return nil
}

// SetField appends child under label, replacing any existing field with the
// same label.
func (y *Node) SetField(label string, child *Node) error {
	if y.Type != StructType {
		return fmt.Errorf("cannot set field %q on %s node", label, y.Type)
	}
	child.Label = label
	child.Parent = y
	for i, c := range y.Values {
		if c.Label == label {
			child.ParentIndex = i
			y.Values[i] = child
			return nil
		}
	}
	child.ParentIndex = len(y.Values)
	y.Values = append(y.Values, child)
	return nil
}

// Append adds an element to a list node and returns its index.
func (y *Node) Append(child *Node) (int, error) {
	if y.Type != ListType {
		return 0, fmt.Errorf("cannot append to %s node", y.Type)
	}
	child.Parent = y
	child.ParentIndex = len(y.Values)
	y.Values = append(y.Values, child)
	return child.ParentIndex, nil
}

// At navigates from y along p. Label steps require a struct, index steps a
// list or struct (positional).
func (y *Node) At(p StructuralPath) (*Node, error) {
	res := y
	for i, step := range p {
		var next *Node
		if step.Indexed {
			if step.Index >= 0 && step.Index < len(res.Values) {
				next = res.Values[step.Index]
			}
		} else {
			next = res.Field(step.Label)
		}
		if next == nil {
			return nil, fmt.Errorf("%w: %q (at %q)", ErrNoSuchPath, p.String(), p[:i+1].String())
		}
		res = next
	}
	return res, nil
}

// PathTo returns the structural path from the root to y.
func (y *Node) PathTo() StructuralPath {
	if y.Parent == nil {
		return nil
	}
	prefix := y.Parent.PathTo()
	if y.Parent.Type == ListType {
		return prefix.Elem(y.ParentIndex)
	}
	return prefix.Child(y.Label)
}

// ValueString renders a leaf's scalar as a cell-style string. Localized
// strings render their text when present, otherwise the string reference.
func (y *Node) ValueString() string {
	switch y.Type {
	case IntType:
		return strconv.FormatInt(y.Int64, 10)
	case FloatType:
		return strconv.FormatFloat(y.Float64, 'g', -1, 64)
	case StringType, ResRefType:
		return y.String
	case LocStringType:
		if y.String != "" {
			return y.String
		}
		return strconv.FormatInt(int64(y.StrRef), 10)
	}
	return ""
}

// SetValue assigns a string form to a leaf according to its type. Localized
// strings take a numeric value as a string reference and anything else as
// text.
func (y *Node) SetValue(v string) error {
	switch y.Type {
	case IntType:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("field %q: %v", y.Label, err)
		}
		y.Int64 = n
	case FloatType:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("field %q: %v", y.Label, err)
		}
		y.Float64 = f
	case StringType, ResRefType:
		y.String = v
	case LocStringType:
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			y.StrRef = int32(n)
			return nil
		}
		y.String = v
	default:
		return fmt.Errorf("cannot set value on %s node", y.Type)
	}
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.cloneTo(res)
}

func (y *Node) cloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Label = y.Label
	dst.StructID = y.StructID
	dst.String = y.String
	dst.Int64 = y.Int64
	dst.Float64 = y.Float64
	dst.StrRef = y.StrRef
	dst.Values = make([]*Node, len(y.Values))
	for i, c := range y.Values {
		cc := &Node{}
		c.cloneTo(cc)
		cc.Parent = dst
		cc.ParentIndex = i
		dst.Values[i] = cc
	}
	return dst
}
