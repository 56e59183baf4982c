package typebag

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"sync/atomic"
)

// TypeToken identifies a concrete Go type for the lifetime of the process.
// Two tokens are equal iff they denote the same type. Tokens are comparable
// and can be used as map keys. The zero value denotes no type at all.
type TypeToken struct {
	info *typeInfo
}

type typeInfo struct {
	id   uint32
	typ  reflect.Type
	name string
}

// TokenOf returns the token of the static type T.
//
// T is taken as written at the call site: TokenOf[any]() is the token of the
// interface type any, not the token of whatever value is later stored in it.
func TokenOf[T any]() TypeToken {
	return TokenFor(reflect.TypeFor[T]())
}

// TokenFor returns the token of a runtime type descriptor. For every type T,
// TokenFor(reflect.TypeFor[T]()) == TokenOf[T]().
func TokenFor(ty reflect.Type) TypeToken {
	if ty == nil {
		panic("typebag: TokenFor called with nil type")
	}

	if cached, ok := (*typeInfos.Load())[ty]; ok {
		return TypeToken{info: cached}
	}

	return TypeToken{info: ensureTypeInfo(ty)}
}

// Id returns a small process local number of the type. Ids are assigned in
// order of first use, starting at one, and are never reused.
func (t TypeToken) Id() uint32 {
	if t.info == nil {
		return 0
	}

	return t.info.id
}

// Type returns the reflect.Type the token was derived from, or nil for the zero token.
func (t TypeToken) Type() reflect.Type {
	if t.info == nil {
		return nil
	}

	return t.info.typ
}

func (t TypeToken) IsZero() bool {
	return t.info == nil
}

func (t TypeToken) String() string {
	if t.info == nil {
		return "<none>"
	}

	return t.info.name
}

func (t TypeToken) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", t.String()),
		slog.Int("id", int(t.Id())),
	)
}

func (t TypeToken) GoString() string {
	return fmt.Sprintf("typebag.TypeToken(%d, %s)", t.Id(), t)
}

// readers never lock, writers copy the table and swap it in.
var typeInfos atomic.Pointer[map[reflect.Type]*typeInfo]

func init() {
	// initialize the lookup table
	typeInfos.Store(&map[reflect.Type]*typeInfo{})
}

func ensureTypeInfo(ty reflect.Type) *typeInfo {
	for {
		previous := typeInfos.Load()
		if cached, ok := (*previous)[ty]; ok {
			return cached
		}

		info := &typeInfo{
			id:   uint32(len(*previous) + 1),
			typ:  ty,
			name: ty.String(),
		}

		next := maps.Clone(*previous)
		next[ty] = info

		if typeInfos.CompareAndSwap(previous, &next) {
			slog.Debug(
				"New type token interned",
				slog.String("name", info.name),
				slog.Int("id", int(info.id)),
			)

			return info
		}
	}
}
