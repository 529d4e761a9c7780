package resolve

import (
	"fmt"
	"strconv"
	"strings"
)

// Canonical literal markers from the patch description syntax.
const (
	emptyMarker = "****"
	lfMarker    = "<#LF#>"
	crMarker    = "<#CR#>"
)

// Unescape rewrites the canonical empty-string and line-break markers into
// the literal they stand for.
func Unescape(s string) string {
	if s == emptyMarker {
		return ""
	}
	s = strings.ReplaceAll(s, lfMarker, "\n")
	return strings.ReplaceAll(s, crMarker, "\r")
}

func parseRef(s string) (Value, bool, error) {
	if rest, ok := strings.CutPrefix(s, "2DAMEMORY"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, false, fmt.Errorf("%w: bad token id in %q", ErrSyntax, s)
		}
		return MemoryRef(n), true, nil
	}
	if rest, ok := strings.CutPrefix(s, "StrRef"); ok {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return nil, false, fmt.Errorf("%w: bad string reference id in %q", ErrSyntax, s)
		}
		return StrRefMemory(n), true, nil
	}
	if rest, ok := strings.CutPrefix(s, "High("); ok {
		col, ok := strings.CutSuffix(rest, ")")
		if !ok {
			return nil, false, fmt.Errorf("%w: unterminated High in %q", ErrSyntax, s)
		}
		return High{Column: col}, true, nil
	}
	return nil, false, nil
}

// ParseValue parses the right-hand side of a cell/field/slot assignment:
// a memory reference, a High() scan, or a literal. Storage-only resolvers
// are a contract violation here and rejected up front.
func ParseValue(s string) (Value, error) {
	switch s {
	case "RowIndex", "RowLabel":
		return nil, fmt.Errorf("%w: %s", ErrStorageOnly, s)
	}
	v, ok, err := parseRef(s)
	if err != nil {
		return nil, err
	}
	if ok {
		return v, nil
	}
	return Constant(Unescape(s)), nil
}

// ParseStoreSource parses the right-hand side of a token-store assignment
// in a row context: RowIndex, RowLabel, a bare column name, a memory
// reference, or a High() scan.
func ParseStoreSource(s string) (Value, error) {
	switch s {
	case "RowIndex":
		return RowIndex{}, nil
	case "RowLabel":
		return RowLabel{}, nil
	}
	v, ok, err := parseRef(s)
	if err != nil {
		return nil, err
	}
	if ok {
		return v, nil
	}
	return CellValue(s), nil
}

// ParseColumnStore parses the right-hand side of a token-store assignment
// in a column-add context: I{index} or L{label}, persisting the value the
// new column holds at that row.
func ParseColumnStore(s string) (Value, error) {
	if rest, ok := strings.CutPrefix(s, "I"); ok {
		if n, err := strconv.Atoi(rest); err == nil {
			return ColumnAtIndex(n), nil
		}
	}
	if rest, ok := strings.CutPrefix(s, "L"); ok && rest != "" {
		return ColumnAtLabel(rest), nil
	}
	return nil, fmt.Errorf("%w: column-add store wants I{index} or L{label}, got %q", ErrSyntax, s)
}

// ParseTargetValue parses the operand of a target method: a literal or a
// memory reference driving dynamic targeting.
func ParseTargetValue(s string) (Value, error) {
	v, ok, err := parseRef(s)
	if err != nil {
		return nil, err
	}
	if ok {
		return v, nil
	}
	return Constant(Unescape(s)), nil
}
