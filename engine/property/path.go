package property

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidPathError reports that a property path could not be resolved against a value.
type InvalidPathError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid property path %q: %s", e.Path, e.Reason)
}

// Component is one step of a property path: a field name followed by zero or more list indices.
type Component struct {
	Name    string
	Indices []int
}

// ParsePath splits a path such as "surfaces[0].material.diffuseColor" into components.
//
// Parameters:
//   - path: the dotted path
//
// Returns:
//   - []Component: the parsed components in order
//   - error: an *InvalidPathError on empty names, unbalanced brackets or bad indices
func ParsePath(path string) ([]Component, error) {
	if path == "" {
		return nil, &InvalidPathError{Path: path, Reason: "empty path"}
	}

	parts := strings.Split(path, ".")
	out := make([]Component, 0, len(parts))
	for _, part := range parts {
		c, err := parseComponent(part)
		if err != nil {
			return nil, &InvalidPathError{Path: path, Reason: err.Error()}
		}
		out = append(out, c)
	}
	return out, nil
}

func parseComponent(part string) (Component, error) {
	open := strings.IndexByte(part, '[')
	name := part
	rest := ""
	if open >= 0 {
		name, rest = part[:open], part[open:]
	}
	if name == "" {
		return Component{}, fmt.Errorf("empty field name in %q", part)
	}
	if strings.ContainsAny(name, "]") {
		return Component{}, fmt.Errorf("unbalanced brackets in %q", part)
	}

	c := Component{Name: name}
	for rest != "" {
		if rest[0] != '[' {
			return Component{}, fmt.Errorf("unexpected %q after index in %q", rest, part)
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return Component{}, fmt.Errorf("unbalanced brackets in %q", part)
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil || idx < 0 {
			return Component{}, fmt.Errorf("bad index %q in %q", rest[1:end], part)
		}
		c.Indices = append(c.Indices, idx)
		rest = rest[end+1:]
	}
	return c, nil
}

// SetByPath resolves path against root and writes value into the addressed field or list item.
// Intermediate steps must resolve to a Reflector (named step) or a List (indexed step).
//
// Parameters:
//   - root: the value the path is relative to
//   - path: the property path
//   - value: the boxed value to write; its dynamic type must match the field's type
//
// Returns:
//   - error: an *InvalidPathError when the path cannot be resolved, or an error wrapping
//     ErrInvalidValue when the value has the wrong type
func SetByPath(root Reflector, path string, value any) error {
	comps, err := ParsePath(path)
	if err != nil {
		return err
	}

	var cur any = root
	for ci, c := range comps {
		last := ci == len(comps)-1
		f, err := lookup(cur, c.Name, path)
		if err != nil {
			return err
		}

		if last && len(c.Indices) == 0 {
			if f.Set == nil {
				return &InvalidPathError{Path: path, Reason: fmt.Sprintf("field %q is read-only", c.Name)}
			}
			return f.Set(value)
		}

		cur = f.Get()
		for ii, idx := range c.Indices {
			l, err := index(cur, c.Name, idx, path)
			if err != nil {
				return err
			}
			if last && ii == len(c.Indices)-1 {
				return l.SetItem(idx, value)
			}
			cur = l.Item(idx)
		}
	}
	return nil
}

// GetByPath resolves path against root and returns the addressed value.
//
// Parameters:
//   - root: the value the path is relative to
//   - path: the property path
//
// Returns:
//   - any: the current value of the addressed field or list item
//   - error: an *InvalidPathError when the path cannot be resolved
func GetByPath(root Reflector, path string) (any, error) {
	comps, err := ParsePath(path)
	if err != nil {
		return nil, err
	}

	var cur any = root
	for _, c := range comps {
		f, err := lookup(cur, c.Name, path)
		if err != nil {
			return nil, err
		}
		cur = f.Get()
		for _, idx := range c.Indices {
			l, err := index(cur, c.Name, idx, path)
			if err != nil {
				return nil, err
			}
			cur = l.Item(idx)
		}
	}
	return cur, nil
}

func lookup(cur any, name, path string) (Field, error) {
	r, ok := cur.(Reflector)
	if !ok || r == nil {
		return Field{}, &InvalidPathError{Path: path, Reason: fmt.Sprintf("cannot resolve %q: value of type %T is not a structure", name, cur)}
	}
	f, ok := Find(r.Fields(), name)
	if !ok {
		return Field{}, &InvalidPathError{Path: path, Reason: fmt.Sprintf("no such field %q on %T", name, cur)}
	}
	return f, nil
}

func index(cur any, name string, idx int, path string) (List, error) {
	l, ok := cur.(List)
	if !ok {
		return nil, &InvalidPathError{Path: path, Reason: fmt.Sprintf("field %q is not indexable", name)}
	}
	if idx >= l.Len() {
		return nil, &InvalidPathError{Path: path, Reason: fmt.Sprintf("index %d out of range for %q of length %d", idx, name, l.Len())}
	}
	return l, nil
}
