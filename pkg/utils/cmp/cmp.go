package cmp

// SliceEq returns true when two slices have the same elements in the same order.
func SliceEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SliceEqWith returns true when two slices are element-wise equal by pred.
func SliceEqWith[T any, U any](a []T, b []U, pred func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !pred(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SliceContentEq returns true when two slices have the same elements,
// ignoring order and multiplicity of match pairing.
func SliceContentEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
aloop:
	for i := range a {
		for j := range b {
			if !matched[j] && a[i] == b[j] {
				matched[j] = true
				continue aloop
			}
		}
		return false
	}
	return true
}

// SliceContentEqWith is SliceContentEq with a custom equality predicate.
func SliceContentEqWith[T any, U any](a []T, b []U, pred func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	matched := make([]bool, len(b))
aloop:
	for i := range a {
		for j := range b {
			if !matched[j] && pred(a[i], b[j]) {
				matched[j] = true
				continue aloop
			}
		}
		return false
	}
	return true
}

// MapEq returns true when two maps have the same key-value pairs.
func MapEq[K comparable, V comparable](a, b map[K]V) bool {
	return MapEqWith(a, b, func(x, y V) bool { return x == y })
}

// MapEqWith returns true when two maps have the same keys and
// values equal by pred.
func MapEqWith[K comparable, V any, W any](a map[K]V, b map[K]W, pred func(V, W) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !pred(va, vb) {
			return false
		}
	}
	return true
}
