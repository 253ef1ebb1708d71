package parser

import "github.com/dhamidi/pcx/stream"

// Predicate decides whether a single item is accepted. Predicates must be
// pure: combinators may call them any number of times while backtracking.
type Predicate[I any] func(item I) bool

// Not returns the negation of pred.
func Not[I any](pred Predicate[I]) Predicate[I] {
	return func(item I) bool {
		return !pred(item)
	}
}

// Condition consumes one item and succeeds with it if its predicate holds.
//
// See Is and IsNot.
type Condition[I any] struct {
	pred Predicate[I]
}

// Is returns a parser that consumes an item and succeeds if pred holds for
// it. It fails if pred does not hold or the input is exhausted.
func Is[I any](pred Predicate[I]) *Condition[I] {
	return &Condition[I]{pred: pred}
}

// IsNot returns a parser that consumes an item and succeeds if pred does
// not hold for it. It fails if pred holds or the input is exhausted.
func IsNot[I any](pred Predicate[I]) *Condition[I] {
	return Is(Not(pred))
}

func (c *Condition[I]) ParseIter(s *stream.Stream[I]) (I, error) {
	return matchItem(s, c.pred)
}

// ConditionOnce is the single-use form of Condition. Its predicate may own
// state and is invoked at most once.
//
// See IsOnce and IsNotOnce.
type ConditionOnce[I any] struct {
	pred Predicate[I]
}

// IsOnce is the single-use form of Is.
func IsOnce[I any](pred Predicate[I]) *ConditionOnce[I] {
	return &ConditionOnce[I]{pred: pred}
}

// IsNotOnce is the single-use form of IsNot.
func IsNotOnce[I any](pred Predicate[I]) *ConditionOnce[I] {
	return IsOnce(Not(pred))
}

func (c *ConditionOnce[I]) ParseIterOnce(s *stream.Stream[I]) (I, error) {
	pred := c.pred
	if pred == nil {
		var zero I
		return zero, ErrConsumed
	}
	c.pred = nil
	return matchItem(s, pred)
}

// matchItem pulls one item and tests it. The item is consumed even when
// pred rejects it, so the error position is the position after the read.
func matchItem[I any](s *stream.Stream[I], pred Predicate[I]) (I, error) {
	item, ok := s.Next()
	if ok && pred(item) {
		return item, nil
	}
	var zero I
	return zero, Expected(s.Pos(), ExpectedCondition)
}
