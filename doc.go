// Package typebag stores values of unrelated types in one container and
// hands them back only as the type they were stored with.
//
// A Cell owns one value together with the TypeToken of its static type.
// ReadAs, ReadMutAs and TakeAs compare tokens before they touch the value, so
// asking for the wrong type reports absence instead of reinterpreting it:
//
//	cell := typebag.Wrap(42)
//	n, ok := typebag.ReadAs[int](&cell)     // 42, true
//	s, ok := typebag.ReadAs[string](&cell)  // "", false
//
// A Collection keeps cells in insertion order and allows duplicates of a type,
// a Registry keeps one value per type:
//
//	var registry typebag.Registry
//	typebag.Insert(&registry, Config{Verbose: true})
//	config, ok := typebag.Lookup[Config](&registry)
//
// None of the containers synchronize access. Wrap them in Locked to share them
// between goroutines.
package typebag
