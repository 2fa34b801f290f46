package compiler

import "github.com/dolthub/swiss"

// funcTable is the emitter's name -> FuncID symbol table. Function ids are
// reserved in declaration order before any function body is lowered, so
// forward references ("func a() { b() }" defined before "func b()") resolve
// against a stub entry in Functions that gets patched once b's body is
// compiled; see addFuncStub/replaceFuncStub on *emitter in compiler.go.
//
// Backed by swiss.Map rather than a plain Go map, per the domain-stack
// wiring: a module's function count is known and small, but the lookup
// pattern (define once during the forward-reference pass, then read-mostly
// during every call site's resolution) is exactly what a open-addressing
// hash map is for, and the teacher repo's own symbol tables reach for this
// package rather than the builtin map type.
type funcTable struct {
	byName *swiss.Map[string, FuncID]
}

func newFuncTable() *funcTable {
	return &funcTable{byName: swiss.NewMap[string, FuncID](8)}
}

func (t *funcTable) define(name string, id FuncID) { t.byName.Put(name, id) }

func (t *funcTable) lookup(name string) (FuncID, bool) { return t.byName.Get(name) }

// localScope is the name -> frame-relative-slot table for one function
// body. Locals are never freed or shadowed within a function (Vuur's
// arithmetic core has no nested scoping rules beyond sequential
// declaration), so a flat swiss.Map suffices; slot 0 is the first argument.
type localScope struct {
	slots *swiss.Map[string, uint32]
	next  uint32
}

func newLocalScope() *localScope {
	return &localScope{slots: swiss.NewMap[string, uint32](8)}
}

// declare assigns the next frame-relative slot to name and returns it.
func (s *localScope) declare(name string) uint32 {
	slot := s.next
	s.slots.Put(name, slot)
	s.next++
	return slot
}

func (s *localScope) lookup(name string) (uint32, bool) { return s.slots.Get(name) }
