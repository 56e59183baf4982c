package typebag

import (
	"fmt"
	"log/slog"
)

// Dropper is implemented by payloads that need to release something when the
// cell owning them is destroyed. Drop is called at most once per stored value.
type Dropper interface {
	Drop()
}

// erased is the operation set bound to a payload at Wrap time.
type erased interface {
	token() TypeToken
	destroy()
	live() bool
	describe() string
}

type typed[T any] struct {
	tok   TypeToken
	value T

	// set once the value was moved out or dropped
	gone bool
}

func (t *typed[T]) token() TypeToken {
	return t.tok
}

func (t *typed[T]) live() bool {
	return !t.gone
}

func (t *typed[T]) describe() string {
	return fmt.Sprintf("%v", t.value)
}

func (t *typed[T]) take() T {
	value := t.value
	t.release()
	return value
}

func (t *typed[T]) destroy() {
	if t.gone {
		return
	}

	dropper, ok := any(t.value).(Dropper)
	if !ok {
		dropper, ok = any(&t.value).(Dropper)
	}

	if ok {
		slog.Debug("Dropping value", slog.Any("token", t.tok))
		dropper.Drop()
	}

	t.release()
}

func (t *typed[T]) release() {
	var tZero T
	t.value = tZero
	t.gone = true
}

// Cell owns exactly one value of a single concrete type. The type is only
// known at the value level through the cells TypeToken; the typed accessors
// ReadAs, ReadMutAs and TakeAs check the token before touching the payload.
//
// A Cell is a single owner value. Copying a Cell aliases the payload, move it
// instead. The zero Cell is empty.
type Cell struct {
	payload erased
}

// Wrap moves value into a new cell recorded under TokenOf[T]().
func Wrap[T any](value T) Cell {
	return Cell{payload: &typed[T]{tok: TokenOf[T](), value: value}}
}

// Token returns the token of the stored type, or the zero token if the cell is empty.
func (c *Cell) Token() TypeToken {
	if c.IsEmpty() {
		return TypeToken{}
	}

	return c.payload.token()
}

// IsEmpty reports whether the cell holds no value, either because it was
// never filled, its value was taken or it was destroyed.
func (c *Cell) IsEmpty() bool {
	return c.payload == nil || !c.payload.live()
}

// Destroy releases the payload through the operations bound at Wrap time.
// If the payload implements Dropper, its Drop method runs exactly once.
// Destroying an empty cell does nothing.
func (c *Cell) Destroy() {
	if c.payload == nil {
		return
	}

	c.payload.destroy()
	c.payload = nil
}

func (c *Cell) String() string {
	if c.IsEmpty() {
		return "Cell(<empty>)"
	}

	return fmt.Sprintf("Cell[%s](%s)", c.payload.token(), c.payload.describe())
}

// Is reports whether the cell holds a value of type T.
func Is[T any](c *Cell) bool {
	return !c.IsEmpty() && c.payload.token() == TokenOf[T]()
}

// ReadAs returns a copy of the stored value if the cell holds a T.
func ReadAs[T any](c *Cell) (T, bool) {
	payload, ok := payloadOf[T](c)
	if !ok {
		var tZero T
		return tZero, false
	}

	return payload.value, true
}

// ReadMutAs returns a pointer to the stored value if the cell holds a T.
// The pointer stays valid until the value is taken or the cell destroyed.
func ReadMutAs[T any](c *Cell) (*T, bool) {
	payload, ok := payloadOf[T](c)
	if !ok {
		return nil, false
	}

	return &payload.value, true
}

// TakeAs moves the value out of the cell if it holds a T, leaving the cell empty.
// On a mismatch the cell is left untouched and still owns its value.
func TakeAs[T any](c *Cell) (T, bool) {
	payload, ok := payloadOf[T](c)
	if !ok {
		var tZero T
		return tZero, false
	}

	value := payload.take()
	c.payload = nil

	return value, true
}

func payloadOf[T any](c *Cell) (*typed[T], bool) {
	// compare tokens before looking at the payload
	if !Is[T](c) {
		return nil, false
	}

	payload, ok := c.payload.(*typed[T])
	if !ok {
		// same token but a different adapter type means the cell was
		// re-labelled, which the api does not allow
		panic(fmt.Errorf("typebag: cell token %s does not match payload %T", c.payload.token(), c.payload))
	}

	return payload, true
}
