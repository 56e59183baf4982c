package typebag

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Registry holds at most one value per type. It works as a small type keyed
// locator: a value is inserted once and looked up later by its type alone.
// The zero value is an empty registry ready to use.
//
// A Registry is not safe for concurrent use, see Locked.
type Registry struct {
	noCopy noCopy
	cells  map[TypeToken]Cell
}

func NewRegistry() *Registry {
	return &Registry{cells: map[TypeToken]Cell{}}
}

// ReplaceOutcome tells if Replace added a new entry or overwrote an existing one.
type ReplaceOutcome uint8

const (
	Inserted ReplaceOutcome = iota + 1
	Replaced
)

func (o ReplaceOutcome) String() string {
	switch o {
	case Inserted:
		return "Inserted"
	case Replaced:
		return "Replaced"
	default:
		return fmt.Sprintf("ReplaceOutcome(%d)", uint8(o))
	}
}

// Insert stores value as the registry's T. If a T was stored before, it is
// removed from the registry and returned together with true. The previous
// value is handed back to the caller, not destroyed.
func Insert[T any](r *Registry, value T) (T, bool) {
	previous, replaced := Remove[T](r)
	r.put(Wrap(value))
	return previous, replaced
}

// Replace stores value as the registry's T and destroys any previous T.
func Replace[T any](r *Registry, value T) ReplaceOutcome {
	outcome := Inserted

	token := TokenOf[T]()
	if cell, ok := r.cells[token]; ok {
		cell.Destroy()
		outcome = Replaced
	}

	r.put(Wrap(value))
	return outcome
}

// Lookup returns a copy of the stored T.
func Lookup[T any](r *Registry) (T, bool) {
	cell, ok := r.cellOf(TokenOf[T]())
	if !ok {
		var tZero T
		return tZero, false
	}

	return ReadAs[T](&cell)
}

// LookupMut returns a pointer to the stored T. The pointer stays valid until
// the value is removed, replaced or the registry cleared.
func LookupMut[T any](r *Registry) (*T, bool) {
	cell, ok := r.cellOf(TokenOf[T]())
	if !ok {
		return nil, false
	}

	return ReadMutAs[T](&cell)
}

// GetOrInsertWith returns a pointer to the stored T, inserting the result of
// makeValue first if no T is stored yet.
func GetOrInsertWith[T any](r *Registry, makeValue func() T) *T {
	if ptr, ok := LookupMut[T](r); ok {
		return ptr
	}

	r.put(Wrap(makeValue()))

	ptr, _ := LookupMut[T](r)
	return ptr
}

// Remove removes the stored T and returns it.
func Remove[T any](r *Registry) (T, bool) {
	token := TokenOf[T]()

	cell, ok := r.cellOf(token)
	if !ok {
		var tZero T
		return tZero, false
	}

	delete(r.cells, token)

	value, ok := TakeAs[T](&cell)
	if !ok {
		panic(fmt.Errorf("typebag: registry entry %s holds %s", token, cell.Token()))
	}

	return value, true
}

// Contains reports whether a T is stored, without touching the value.
func Contains[T any](r *Registry) bool {
	return r.ContainsToken(TokenOf[T]())
}

func (r *Registry) ContainsToken(token TypeToken) bool {
	_, ok := r.cells[token]
	return ok
}

func (r *Registry) Len() int {
	return len(r.cells)
}

func (r *Registry) IsEmpty() bool {
	return len(r.cells) == 0
}

// Tokens yields the tokens of all stored values, ordered by token id.
func (r *Registry) Tokens() iter.Seq[TypeToken] {
	return slices.Values(r.sortedTokens())
}

// Clear destroys all stored values, ordered by token id.
func (r *Registry) Clear() {
	for _, token := range r.sortedTokens() {
		cell := r.cells[token]
		cell.Destroy()
		delete(r.cells, token)
	}
}

func (r *Registry) sortedTokens() []TypeToken {
	return slices.SortedFunc(maps.Keys(r.cells), func(a, b TypeToken) int {
		return int(a.Id()) - int(b.Id())
	})
}

func (r *Registry) put(cell Cell) {
	if r.cells == nil {
		r.cells = map[TypeToken]Cell{}
	}

	r.cells[cell.Token()] = cell
}

func (r *Registry) cellOf(token TypeToken) (Cell, bool) {
	cell, ok := r.cells[token]
	if !ok {
		return Cell{}, false
	}

	if cell.Token() != token {
		panic(fmt.Errorf("typebag: registry entry %s holds %s", token, cell.Token()))
	}

	return cell, true
}
