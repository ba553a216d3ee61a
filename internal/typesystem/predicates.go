package typesystem

// IsNumeric reports whether t participates in arithmetic and promotion.
func IsNumeric(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	switch p.K {
	case KindInt, KindLong, KindFloat, KindDouble, KindByte, KindChar:
		return true
	}
	return false
}

// IsPrintable reports whether t may appear in interpolated strings and
// ANY-typed parameters.
func IsPrintable(t Type) bool {
	if IsNumeric(t) {
		return true
	}
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	return p.K == KindBool || p.K == KindString
}

// IsVariadicCompatible reports whether t may be passed through a variadic
// tail. Arrays are rejected.
func IsVariadicCompatible(t Type) bool {
	if IsPrintable(t) {
		return true
	}
	_, ok := t.(*Opaque)
	return ok
}

// IsValuePrimitive reports whether t is one of the scalar value kinds that
// may cross a private-scope boundary (escape analysis sense).
func IsValuePrimitive(t Type) bool {
	p, ok := t.(*Primitive)
	if !ok {
		return false
	}
	switch p.K {
	case KindInt, KindLong, KindFloat, KindDouble, KindChar, KindByte, KindBool:
		return true
	}
	return false
}

// IsReference reports whether values of t have reference semantics: captured
// by spawned tasks via snapshot, frozen on spawn.
func IsReference(t Type) bool {
	switch tt := t.(type) {
	case *Array, *Class:
		return true
	case *Primitive:
		return tt.K == KindString
	}
	return false
}

// promotionRank orders the numeric lattice int < long < float < double.
// byte and char promote like int.
func promotionRank(k PrimitiveKind) int {
	switch k {
	case KindByte, KindChar, KindInt:
		return 0
	case KindLong:
		return 1
	case KindFloat:
		return 2
	case KindDouble:
		return 3
	}
	return -1
}

// Promote yields the smallest common numeric type of a and b in the order
// int < long < float < double, or false if either operand is non-numeric.
func Promote(a, b Type) (Type, bool) {
	if !IsNumeric(a) || !IsNumeric(b) {
		return nil, false
	}
	pa := a.(*Primitive)
	pb := b.(*Primitive)
	ra, rb := promotionRank(pa.K), promotionRank(pb.K)
	r := ra
	if rb > r {
		r = rb
	}
	switch r {
	case 0:
		// byte/char arithmetic widens to int
		return Int, true
	case 1:
		return Long, true
	case 2:
		return Float, true
	default:
		return Double, true
	}
}

// Promotable reports whether a value of type 'from' may be implicitly
// widened to 'to' along the numeric lattice.
func Promotable(from, to Type) bool {
	if Equal(from, to) {
		return true
	}
	if !IsNumeric(from) || !IsNumeric(to) {
		return false
	}
	pf := from.(*Primitive)
	pt := to.(*Primitive)
	return promotionRank(pf.K) <= promotionRank(pt.K)
}
