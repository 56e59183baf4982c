package typebag

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type Account struct {
	Name    string
	Balance int64
	Tags    []string
	Limits  map[string]int
}

// resource records its name into log when dropped
type resource struct {
	name string
	log  *[]string
}

func (r resource) Drop() {
	*r.log = append(*r.log, r.name)
}

// pointerResource implements Dropper on the pointer receiver
type pointerResource struct {
	drops *int
}

func (r *pointerResource) Drop() {
	*r.drops += 1
}

func TestWrap_RoundTrip(t *testing.T) {
	tests := []struct {
		Name  string
		Value any
		Take  func(c *Cell) (any, bool)
		Wrap  func() Cell
	}{
		{
			Name:  "int",
			Value: 42,
			Wrap:  func() Cell { return Wrap(42) },
			Take:  func(c *Cell) (any, bool) { return TakeAs[int](c) },
		},
		{
			Name:  "string",
			Value: "hello",
			Wrap:  func() Cell { return Wrap("hello") },
			Take:  func(c *Cell) (any, bool) { return TakeAs[string](c) },
		},
		{
			Name: "struct",
			Value: Account{
				Name:    "savings",
				Balance: 1200,
				Tags:    []string{"a", "b"},
				Limits:  map[string]int{"daily": 100},
			},
			Wrap: func() Cell {
				return Wrap(Account{
					Name:    "savings",
					Balance: 1200,
					Tags:    []string{"a", "b"},
					Limits:  map[string]int{"daily": 100},
				})
			},
			Take: func(c *Cell) (any, bool) { return TakeAs[Account](c) },
		},
		{
			Name:  "generic",
			Value: Box[[]int]{Value: []int{1, 2, 3}},
			Wrap:  func() Cell { return Wrap(Box[[]int]{Value: []int{1, 2, 3}}) },
			Take:  func(c *Cell) (any, bool) { return TakeAs[Box[[]int]](c) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			cell := tt.Wrap()

			value, ok := tt.Take(&cell)
			require.True(t, ok)

			if diff := cmp.Diff(tt.Value, value); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}

			require.True(t, cell.IsEmpty())
		})
	}
}

func TestCell_TypeMismatch(t *testing.T) {
	cell := Wrap(Meters(5))

	require.Equal(t, TokenOf[Meters](), cell.Token())

	// the underlying type is a different type
	_, ok := ReadAs[int](&cell)
	require.False(t, ok)

	ptr, ok := ReadMutAs[Feet](&cell)
	require.False(t, ok)
	require.Nil(t, ptr)

	value, ok := TakeAs[string](&cell)
	require.False(t, ok)
	require.Empty(t, value)

	// a failed take leaves the value in the cell
	require.False(t, cell.IsEmpty())

	meters, ok := TakeAs[Meters](&cell)
	require.True(t, ok)
	require.Equal(t, Meters(5), meters)
}

func TestCell_StaticTypeIsRecorded(t *testing.T) {
	var value any = 12
	cell := Wrap(value)

	require.Equal(t, TokenOf[any](), cell.Token())

	_, ok := ReadAs[int](&cell)
	require.False(t, ok)

	stored, ok := ReadAs[any](&cell)
	require.True(t, ok)
	require.Equal(t, 12, stored)
}

func TestCell_ReadMutAs(t *testing.T) {
	cell := Wrap(Account{Name: "checking"})

	account, ok := ReadMutAs[Account](&cell)
	require.True(t, ok)

	account.Balance = 99
	account.Tags = append(account.Tags, "updated")

	copied, ok := ReadAs[Account](&cell)
	require.True(t, ok)
	require.Equal(t, int64(99), copied.Balance)
	require.Equal(t, []string{"updated"}, copied.Tags)

	// modifying a copy does not change the stored value
	copied.Balance = 0

	stored, _ := ReadAs[Account](&cell)
	require.Equal(t, int64(99), stored.Balance)
}

func TestCell_Empty(t *testing.T) {
	var cell Cell

	require.True(t, cell.IsEmpty())
	require.True(t, cell.Token().IsZero())
	require.False(t, Is[int](&cell))
	require.Equal(t, "Cell(<empty>)", cell.String())

	_, ok := ReadAs[int](&cell)
	require.False(t, ok)

	_, ok = TakeAs[int](&cell)
	require.False(t, ok)

	// destroying an empty cell is fine
	cell.Destroy()
}

func TestCell_DestroyDropsOnce(t *testing.T) {
	var log []string

	cell := Wrap(resource{name: "first", log: &log})
	cell.Destroy()
	cell.Destroy()

	require.Equal(t, []string{"first"}, log)
	require.True(t, cell.IsEmpty())

	_, ok := ReadAs[resource](&cell)
	require.False(t, ok)
}

func TestCell_DestroyDropsPointerReceiver(t *testing.T) {
	var drops int

	cell := Wrap(pointerResource{drops: &drops})
	cell.Destroy()
	require.Equal(t, 1, drops)

	ptrCell := Wrap(&pointerResource{drops: &drops})
	ptrCell.Destroy()
	require.Equal(t, 2, drops)
}

func TestCell_TakeDoesNotDrop(t *testing.T) {
	var log []string

	cell := Wrap(resource{name: "taken", log: &log})

	value, ok := TakeAs[resource](&cell)
	require.True(t, ok)
	require.Equal(t, "taken", value.name)

	// the value now belongs to the caller
	cell.Destroy()
	require.Empty(t, log)
}

func TestCell_String(t *testing.T) {
	cell := Wrap(Meters(3))
	require.Equal(t, "Cell[typebag.Meters](3)", cell.String())
}
