package mod

import (
	"fmt"
	"regexp"
	"strconv"
)

var sourceToken = regexp.MustCompile(`#(2DAMEMORY|StrRef)(\d+)#`)

// SubstituteSource replaces #2DAMEMORY{n}# and #StrRef{n}# markers in
// script source text with the current token values. An undefined token is
// fatal; compiling the substituted source is the caller's concern.
type SubstituteSource struct {
	Name string
}

func (op *SubstituteSource) ApplySource(c *Ctx, src string) (string, error) {
	var firstErr error
	res := sourceToken.ReplaceAllStringFunc(src, func(m string) string {
		if firstErr != nil {
			return m
		}
		sub := sourceToken.FindStringSubmatch(m)
		id, _ := strconv.Atoi(sub[2])
		if sub[1] == "StrRef" {
			v, err := c.Mem.StrRef(id)
			if err != nil {
				firstErr = fmt.Errorf("%s: %w", op, err)
				return m
			}
			return strconv.FormatInt(int64(v), 10)
		}
		v, err := c.Mem.TokenString(id)
		if err != nil {
			firstErr = fmt.Errorf("%s: %w", op, err)
			return m
		}
		return v
	})
	if firstErr != nil {
		return "", firstErr
	}
	return res, nil
}

func (op *SubstituteSource) String() string {
	return "SubstituteSource " + op.Name
}
