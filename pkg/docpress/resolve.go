package docpress

import (
	"strconv"
	"strings"
)

// pathSegment is one step of a dotted path: either a field name or a
// bracket-integer list index.
type pathSegment struct {
	field string
	index int
	isIdx bool
}

// splitPath parses a dotted path expression like "items[2].name" into
// segments. A malformed path yields ok=false; the resolver treats that the
// same as a missing path.
func splitPath(path string) ([]pathSegment, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, false
	}

	var segs []pathSegment
	rest := path
	for rest != "" {
		if rest[0] == '.' {
			rest = rest[1:]
			if rest == "" {
				return nil, false
			}
			continue
		}
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return nil, false
			}
			idx, err := strconv.Atoi(strings.TrimSpace(rest[1:end]))
			if err != nil {
				return nil, false
			}
			segs = append(segs, pathSegment{index: idx, isIdx: true})
			rest = rest[end+1:]
			continue
		}
		end := strings.IndexAny(rest, ".[")
		var name string
		if end < 0 {
			name, rest = rest, ""
		} else {
			name, rest = rest[:end], rest[end:]
		}
		if name == "" {
			return nil, false
		}
		segs = append(segs, pathSegment{field: name})
	}
	return segs, true
}

// scope is the variable-resolution context for one evaluation frame. Loop
// iterations push a scope whose element is addressable as "this"; every
// other path falls through to the root data context.
type scope struct {
	root   Value
	elem   Value
	inLoop bool
	parent *scope
}

func rootScope(data Value) *scope {
	return &scope{root: data}
}

func (s *scope) push(elem Value) *scope {
	return &scope{root: s.root, elem: elem, inLoop: true, parent: s}
}

// Resolve walks a dotted path against the scope. Any missing, null, or
// mistyped intermediate segment stops the walk and returns Absent; the
// resolver never fails.
func (s *scope) Resolve(path string) Value {
	segs, ok := splitPath(path)
	if !ok {
		return Absent
	}

	current := s.root
	if segs[0].field == "this" {
		if !s.inLoop {
			return Absent
		}
		current = s.elem
		segs = segs[1:]
	}

	for _, seg := range segs {
		if seg.isIdx {
			current = current.Index(seg.index)
		} else {
			current = current.Field(seg.field)
		}
		if current.IsAbsent() {
			return Absent
		}
	}
	return current
}
