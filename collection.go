package typebag

import (
	"iter"
	"slices"
	"strings"
)

// Collection is an ordered sequence of cells holding values of any type.
// Insertion order is kept and the same type may appear any number of times.
// The zero value is an empty collection ready to use.
//
// A Collection is not safe for concurrent use, see Locked.
type Collection struct {
	noCopy noCopy
	cells  []Cell
}

func NewCollection() *Collection {
	return &Collection{}
}

// Push appends value to the end of the collection.
func Push[T any](c *Collection, value T) {
	c.cells = append(c.cells, Wrap(value))
}

// Get returns a copy of the value at index if it is a T. An index out of
// range and a value of another type both report false.
func Get[T any](c *Collection, index int) (T, bool) {
	cell, ok := c.cellAt(index)
	if !ok {
		var tZero T
		return tZero, false
	}

	return ReadAs[T](cell)
}

// GetMut returns a pointer to the value at index if it is a T, with the same
// absence rules as Get.
func GetMut[T any](c *Collection, index int) (*T, bool) {
	cell, ok := c.cellAt(index)
	if !ok {
		return nil, false
	}

	return ReadMutAs[T](cell)
}

// TakeAt removes the value at index if it is a T and returns it. Following
// values move down by one. Nothing changes if the value is not a T.
func TakeAt[T any](c *Collection, index int) (T, bool) {
	cell, ok := c.cellAt(index)
	if !ok {
		var tZero T
		return tZero, false
	}

	value, ok := TakeAs[T](cell)
	if ok {
		c.cells = deleteAt(c.cells, index)
	}

	return value, ok
}

// IterAs yields all values of type T in insertion order, skipping values of
// other types. The sequence can be iterated any number of times and only
// covers the values present when iteration starts.
func IterAs[T any](c *Collection) iter.Seq[T] {
	return func(yield func(T) bool) {
		for cell := range c.cellsAtStart() {
			value, ok := ReadAs[T](cell)
			if !ok {
				continue
			}

			if !yield(value) {
				return
			}
		}
	}
}

// IterMutAs is like IterAs but yields pointers to the stored values.
func IterMutAs[T any](c *Collection) iter.Seq[*T] {
	return func(yield func(*T) bool) {
		for cell := range c.cellsAtStart() {
			value, ok := ReadMutAs[T](cell)
			if !ok {
				continue
			}

			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of values of type T.
func Count[T any](c *Collection) int {
	var count int
	for idx := range c.cells {
		if Is[T](&c.cells[idx]) {
			count += 1
		}
	}

	return count
}

func (c *Collection) Len() int {
	return len(c.cells)
}

func (c *Collection) IsEmpty() bool {
	return len(c.cells) == 0
}

// TokenAt returns the token of the value at index.
func (c *Collection) TokenAt(index int) (TypeToken, bool) {
	cell, ok := c.cellAt(index)
	if !ok {
		return TypeToken{}, false
	}

	return cell.Token(), true
}

// Remove destroys the value at index. Following values move down by one.
func (c *Collection) Remove(index int) bool {
	cell, ok := c.cellAt(index)
	if !ok {
		return false
	}

	cell.Destroy()
	c.cells = deleteAt(c.cells, index)

	return true
}

// Clear destroys all values in insertion order.
func (c *Collection) Clear() {
	for idx := range c.cells {
		c.cells[idx].Destroy()
	}

	clear(c.cells)
	c.cells = c.cells[:0]
}

func (c *Collection) String() string {
	var sb strings.Builder
	sb.WriteString("Collection[")

	for idx := range c.cells {
		if idx > 0 {
			sb.WriteString(", ")
		}

		sb.WriteString(c.cells[idx].Token().String())
	}

	sb.WriteString("]")
	return sb.String()
}

func (c *Collection) cellAt(index int) (*Cell, bool) {
	if index < 0 || index >= len(c.cells) {
		return nil, false
	}

	return &c.cells[index], true
}

// cellsAtStart yields the cells present when iteration starts. Values pushed
// while iterating are not visited.
func (c *Collection) cellsAtStart() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		n := len(c.cells)

		for idx := 0; idx < n && idx < len(c.cells); idx++ {
			if !yield(&c.cells[idx]) {
				return
			}
		}
	}
}

func deleteAt(cells []Cell, index int) []Cell {
	// slices.Delete zeroes the now unused tail element
	return slices.Delete(cells, index, index+1)
}
