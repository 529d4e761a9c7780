// Package memory implements the token store shared by every patch operation
// in a session: two independent id-keyed namespaces, one holding string or
// structural-path values and one holding string references. Tokens must be
// written before they are read; the store is the only state that survives
// across patch categories.
package memory

import (
	"fmt"

	"github.com/modforge/respatch/ir"
)

type Kind int

const (
	StringKind Kind = iota
	PathKind
)

func (k Kind) String() string {
	if k == PathKind {
		return "path"
	}
	return "string"
}

// Value is what a token slot holds: a plain string or a structural path.
// Consumers type-switch and fail explicitly on an unexpected variant.
type Value interface {
	Kind() Kind
	String() string
}

type StringValue string

func (StringValue) Kind() Kind       { return StringKind }
func (v StringValue) String() string { return string(v) }

type PathValue ir.StructuralPath

func (PathValue) Kind() Kind { return PathKind }
func (v PathValue) String() string {
	return ir.StructuralPath(v).String()
}

// Store is the session token table. It is created at session start, passed
// by reference to every modifier, and discarded at session end. Writes
// silently overwrite; reads of unwritten ids fail.
type Store struct {
	tokens  map[int]Value
	strRefs map[int]int32
}

func NewStore() *Store {
	return &Store{
		tokens:  map[int]Value{},
		strRefs: map[int]int32{},
	}
}

func (s *Store) SetToken(id int, v Value) {
	s.tokens[id] = v
}

// Token returns the value last written to id.
func (s *Store) Token(id int) (Value, error) {
	v, ok := s.tokens[id]
	if !ok {
		return nil, fmt.Errorf("%w: token %d", ErrUndefinedToken, id)
	}
	return v, nil
}

// TokenString returns the value at id, requiring a plain string.
func (s *Store) TokenString(id int) (string, error) {
	v, err := s.Token(id)
	if err != nil {
		return "", err
	}
	if v.Kind() != StringKind {
		return "", fmt.Errorf("%w: token %d holds a %s, need a string", ErrTypeMismatch, id, v.Kind())
	}
	return v.String(), nil
}

// TokenPath returns the value at id, requiring a structural path.
func (s *Store) TokenPath(id int) (ir.StructuralPath, error) {
	v, err := s.Token(id)
	if err != nil {
		return nil, err
	}
	p, ok := v.(PathValue)
	if !ok {
		return nil, fmt.Errorf("%w: token %d holds a %s, need a path", ErrTypeMismatch, id, v.Kind())
	}
	return ir.StructuralPath(p), nil
}

func (s *Store) SetStrRef(id int, v int32) {
	s.strRefs[id] = v
}

func (s *Store) StrRef(id int) (int32, error) {
	v, ok := s.strRefs[id]
	if !ok {
		return 0, fmt.Errorf("%w: string reference token %d", ErrUndefinedToken, id)
	}
	return v, nil
}
