package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validIdent(name string) bool { return identPattern.MatchString(name) }

// parseType resolves a type token such as "u16", "vec3" or "f32*3*2".
//
// The token is a base type followed by zero or more "*N" array markers;
// each marker wraps everything to its left, so "f32*3*2" is two [3]f32.
// Struct names resolve against structs, which holds only structs declared
// before the one being parsed.
func parseType(token string, structs map[string]*Struct) (*Type, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty type", ErrUnknownType)
	}

	parts := strings.Split(token, "*")
	base := parts[0]

	var t *Type
	if p := Primitive(base); p.Valid() {
		t = &Type{Kind: KindPrimitive, Prim: p, Token: base}
	} else if st, ok := structs[base]; ok {
		t = &Type{Kind: KindStruct, Struct: st, Token: base}
	} else {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, base)
	}

	spelled := base
	for _, countToken := range parts[1:] {
		n, err := strconv.Atoi(countToken)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: %q in %q", ErrInvalidArray, countToken, token)
		}
		spelled += "*" + countToken
		t = &Type{Kind: KindArray, Elem: t, Len: n, Token: spelled}
	}
	return t, nil
}
