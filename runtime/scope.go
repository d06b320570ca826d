package runtime

import (
	"fmt"
	"sort"
	"strings"
)

// Parameter bindings. Bindings are stored as tags in symbol tables, which
// are attached to scopes.
//

// --- Tags -------------------------------------------------------

// Tag is the symbols type to be stored into symbol tables. It may be a
// little surprising this type is not called 'Symbol', but I prefer the
// name 'Tag' because it is less confusing when dealing with grammars:
// Grammars consist of symbols (within rules), too.
// Thus, symbols are used in the scope of the grammar, tags are used during
// runtime (of the client program).
//
type Tag struct {
	name  string
	Value Value
}

// NewTag creates a new tag, bound to a value.
func NewTag(nm string, v Value) *Tag {
	return &Tag{
		name:  nm,
		Value: v,
	}
}

// String is a debug Stringer for tags.
func (t *Tag) String() string {
	return fmt.Sprintf("%s=%v", t.name, t.Value)
}

// === Symbol Tables =========================================================

// SymbolTable is a symbol table to store tags (map-like semantics).
// The zero value is an empty table; storage is allocated with the first tag.
type SymbolTable struct {
	Table map[string]*Tag
}

// ResolveTag checks for a tag in the symbol table.
// Returns a tag or nil.
//
func (t *SymbolTable) ResolveTag(tagname string) *Tag {
	return t.Table[tagname]
}

// DefineTag creates a new tag to store into the symbol table.
// The tag's name may not be empty
// Overwrites existing tag with this name, if any.
// Returns the new tag and the previously stored tag (or nil).
//
func (t *SymbolTable) DefineTag(tagname string, v Value) (*Tag, *Tag) {
	if len(tagname) == 0 {
		return nil, nil
	}
	if t.Table == nil {
		t.Table = make(map[string]*Tag)
	}
	tag := NewTag(tagname, v)
	old := t.Table[tagname]
	t.Table[tagname] = tag
	return tag, old
}

// === Scopes ================================================================

// Scope is a named scope, which contains the parameter bindings of a
// procedure call. Scopes do not know about the scope of their caller.
type Scope struct {
	Name   string
	symtab SymbolTable
}

// NewScope creates a new scope.
func NewScope(nm string) *Scope {
	return &Scope{Name: nm}
}

// Global creates the outermost scope, which never holds any bindings.
func Global() *Scope {
	return NewScope("globals")
}

// Prettyfied Stringer, listing the bindings in alphabetical order.
func (s *Scope) String() string {
	tags := make([]string, 0, len(s.symtab.Table))
	for _, tag := range s.symtab.Table {
		tags = append(tags, tag.String())
	}
	sort.Strings(tags)
	if len(tags) == 0 {
		return fmt.Sprintf("<scope %s>", s.Name)
	}
	return fmt.Sprintf("<scope %s %s>", s.Name, strings.Join(tags, " "))
}

// Bind binds a parameter name to a value. Returns the new tag and the previously
// stored tag under this key, if any.
//
func (s *Scope) Bind(name string, v Value) (*Tag, *Tag) {
	return s.symtab.DefineTag(name, v)
}

// Lookup finds the value bound to a parameter name.
//
// Parameters are visible only within the procedure they are declared in.
// Callers reach an outer binding only by evaluating a deferred value, which
// re-enters its capturing scope.
func (s *Scope) Lookup(name string) (Value, bool) {
	tag := s.symtab.ResolveTag(name)
	if tag == nil {
		return nil, false
	}
	return tag.Value, true
}
