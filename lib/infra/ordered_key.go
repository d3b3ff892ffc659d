package infra

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
// If future releases of Go add new predeclared unsigned integer types,
// this constraint will be modified to include them.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
// If future releases of Go add new predeclared integer types,
// this constraint will be modified to include them.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
// If future releases of Go add new predeclared floating-point types,
// this constraint will be modified to include them.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// Comparator defines a total order over K.
// Assume i is the new key.
//  1. i == j (return 0)
//  2. i > j (return a positive number), turn to right part.
//  3. i < j (return a negative number), turn to left part.
//
// K is unconstrained so that composite keys stay orderable; the comparator
// alone carries the order.
type Comparator[K any] func(i, j K) int64

// OrderedKeyCompare is the natural ascending comparator for ordered keys.
func OrderedKeyCompare[K OrderedKey](i, j K) int64 {
	if i == j {
		return 0
	} else if i > j {
		return 1
	}
	return -1
}

// Reverse flips the order defined by cmp.
func Reverse[K any](cmp Comparator[K]) Comparator[K] {
	return func(i, j K) int64 {
		return cmp(j, i)
	}
}
