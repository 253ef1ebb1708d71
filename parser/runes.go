package parser

import "unicode"

// Rune predicates for use with Is and IsNot over rune streams.
var (
	IsDigit  Predicate[rune] = unicode.IsDigit
	IsLetter Predicate[rune] = unicode.IsLetter
	IsSpace  Predicate[rune] = unicode.IsSpace
	IsUpper  Predicate[rune] = unicode.IsUpper
	IsLower  Predicate[rune] = unicode.IsLower
	IsPunct  Predicate[rune] = unicode.IsPunct
)

// Equal returns a predicate matching exactly want.
func Equal[I comparable](want I) Predicate[I] {
	return func(item I) bool {
		return item == want
	}
}

// OneOf returns a predicate matching any of the given items.
func OneOf[I comparable](items ...I) Predicate[I] {
	set := make(map[I]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return func(item I) bool {
		_, ok := set[item]
		return ok
	}
}

// InRange returns a predicate matching runes in [lo, hi].
func InRange(lo, hi rune) Predicate[rune] {
	return func(r rune) bool {
		return r >= lo && r <= hi
	}
}

// ClassPredicate looks up a named rune class such as "digit" or "letter".
func ClassPredicate(name string) (Predicate[rune], bool) {
	switch name {
	case "digit":
		return IsDigit, true
	case "letter":
		return IsLetter, true
	case "space":
		return IsSpace, true
	case "upper":
		return IsUpper, true
	case "lower":
		return IsLower, true
	case "punct":
		return IsPunct, true
	case "alnum":
		return func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }, true
	}
	return nil, false
}

// ClassNames lists the names accepted by ClassPredicate.
var ClassNames = []string{"alnum", "digit", "letter", "lower", "punct", "space", "upper"}
