// Package xsorted provides ordered associative containers backed by one
// generic red-black tree engine: Set and Map keep unique keys, MultiSet
// and MultiMap keep duplicate keys in insertion order.
//
// Every container sorts its elements under an injectable total order
// (infra.Comparator) and serves lookup, insert and delete in O(log n).
// The New constructors take the natural ascending order of the key type,
// the NewXxxFunc constructors take a custom comparator and the NewXxxOf
// constructors build a pre-filled container in one call.
//
// Iteration comes in two shapes. The containers expose lazy range-over-func
// sequences (All, Backward, AllFrom and the equal range scans of the multi
// containers) which read the live structure, so deleting the element just
// yielded is allowed mid walk. Callers that need to walk both directions
// from a found position can drop down to the engine cursors in lib/tree.
//
// None of the containers is safe for concurrent use, callers must
// serialize access externally.
package xsorted
