package parser

import (
	"errors"
	"testing"

	"github.com/dhamidi/pcx/stream"
)

func isA(c rune) bool { return c == 'a' }

func TestConditionScenarios(t *testing.T) {
	tests := []struct {
		name    string
		parser  Parser[rune, rune]
		start   stream.Position
		want    rune
		wantErr *ParseError
		wantPos stream.Position
	}{
		{
			name:    "is matches first item",
			parser:  Is(isA),
			start:   0,
			want:    'a',
			wantPos: 1,
		},
		{
			name:    "is rejects second item",
			parser:  Is(isA),
			start:   1,
			wantErr: &ParseError{Kind: KindExpected, Position: 2, Expected: ExpectedCondition},
			wantPos: 2,
		},
		{
			name:    "is_not rejects matching item",
			parser:  IsNot(isA),
			start:   0,
			wantErr: &ParseError{Kind: KindExpected, Position: 1, Expected: ExpectedCondition},
			wantPos: 1,
		},
		{
			name:    "is at end of input",
			parser:  Is(func(c rune) bool { return c == 'z' }),
			start:   2,
			wantErr: &ParseError{Kind: KindExpected, Position: 2, Expected: ExpectedCondition},
			wantPos: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := stream.FromString("ab")
			s.Restore(tt.start)

			got, err := tt.parser.ParseIter(s)
			if s.Pos() != tt.wantPos {
				t.Errorf("Pos() = %d, want %d", s.Pos(), tt.wantPos)
			}
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ParseIter() error = %v", err)
				}
				if got != tt.want {
					t.Errorf("ParseIter() = %q, want %q", got, tt.want)
				}
				return
			}
			pe, ok := AsParseError(err)
			if !ok {
				t.Fatalf("ParseIter() error = %v, want *ParseError", err)
			}
			if *pe != *tt.wantErr {
				t.Errorf("ParseIter() error = %+v, want %+v", *pe, *tt.wantErr)
			}
		})
	}
}

func TestIsAndIsNotPartitionPresentItems(t *testing.T) {
	preds := map[string]Predicate[rune]{
		"digit":  IsDigit,
		"letter": IsLetter,
		"never":  func(rune) bool { return false },
		"always": func(rune) bool { return true },
	}
	input := "a1 Z?"

	for name, pred := range preds {
		for i := 0; i < len(input); i++ {
			isStream := stream.FromString(input)
			isStream.Restore(stream.Position(i))
			notStream := stream.FromString(input)
			notStream.Restore(stream.Position(i))

			_, isErr := Is(pred).ParseIter(isStream)
			_, notErr := IsNot(pred).ParseIter(notStream)

			if (isErr == nil) == (notErr == nil) {
				t.Errorf("%s at %d: Is err = %v, IsNot err = %v; want exactly one to succeed", name, i, isErr, notErr)
			}
			if (isErr == nil) != pred(rune(input[i])) {
				t.Errorf("%s at %d: Is succeeded = %v, predicate = %v", name, i, isErr == nil, pred(rune(input[i])))
			}
			// Both consume the examined item regardless of outcome.
			if isStream.Pos() != stream.Position(i+1) || notStream.Pos() != stream.Position(i+1) {
				t.Errorf("%s at %d: positions = %d, %d; want %d", name, i, isStream.Pos(), notStream.Pos(), i+1)
			}
		}
	}
}

func TestConditionExhaustedAlwaysFails(t *testing.T) {
	parsers := map[string]Parser[rune, rune]{
		"is always":     Is(func(rune) bool { return true }),
		"is_not never":  IsNot(func(rune) bool { return false }),
		"is never":      Is(func(rune) bool { return false }),
		"is_not always": IsNot(func(rune) bool { return true }),
	}

	for name, p := range parsers {
		t.Run(name, func(t *testing.T) {
			s := stream.FromString("")
			_, err := p.ParseIter(s)
			pe, ok := AsParseError(err)
			if !ok {
				t.Fatalf("ParseIter() error = %v, want *ParseError", err)
			}
			if pe.Position != 0 || pe.Expected != ExpectedCondition {
				t.Errorf("error = %+v, want position 0 and %q", *pe, ExpectedCondition)
			}
			if s.Pos() != 0 {
				t.Errorf("Pos() = %d, want 0", s.Pos())
			}
		})
	}
}

func TestConditionIsReusable(t *testing.T) {
	letter := Is(IsLetter)
	s := stream.FromString("abc")
	for i := 0; i < 3; i++ {
		if _, err := letter.ParseIter(s); err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
	}
	if !s.AtEnd() {
		t.Errorf("Pos() = %d, want end", s.Pos())
	}
}

func TestConditionOnceMatchesReusable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		once  func() ParserOnce[rune, rune]
		reuse Parser[rune, rune]
	}{
		{"is match", "ab", func() ParserOnce[rune, rune] { return IsOnce(isA) }, Is(isA)},
		{"is mismatch", "ba", func() ParserOnce[rune, rune] { return IsOnce(isA) }, Is(isA)},
		{"is_not match", "ba", func() ParserOnce[rune, rune] { return IsNotOnce(isA) }, IsNot(isA)},
		{"is_not mismatch", "ab", func() ParserOnce[rune, rune] { return IsNotOnce(isA) }, IsNot(isA)},
		{"is end", "", func() ParserOnce[rune, rune] { return IsOnce(isA) }, Is(isA)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			onceStream := stream.FromString(tt.input)
			reuseStream := stream.FromString(tt.input)

			gotOnce, errOnce := tt.once().ParseIterOnce(onceStream)
			gotReuse, errReuse := tt.reuse.ParseIter(reuseStream)

			if gotOnce != gotReuse {
				t.Errorf("output = %q, want %q", gotOnce, gotReuse)
			}
			if (errOnce == nil) != (errReuse == nil) {
				t.Errorf("error = %v, want %v", errOnce, errReuse)
			}
			if errOnce != nil && errOnce.Error() != errReuse.Error() {
				t.Errorf("error = %q, want %q", errOnce, errReuse)
			}
			if onceStream.Pos() != reuseStream.Pos() {
				t.Errorf("Pos() = %d, want %d", onceStream.Pos(), reuseStream.Pos())
			}
		})
	}
}

func TestConditionOnceIsSpentAfterOneAttempt(t *testing.T) {
	calls := 0
	seen := make([]rune, 0, 1)
	p := IsOnce(func(c rune) bool {
		calls++
		seen = append(seen, c)
		return true
	})

	s := stream.FromString("xy")
	got, err := p.ParseIterOnce(s)
	if err != nil || got != 'x' {
		t.Fatalf("first ParseIterOnce() = %q, %v; want 'x', nil", got, err)
	}

	_, err = p.ParseIterOnce(s)
	if !errors.Is(err, ErrConsumed) {
		t.Errorf("second ParseIterOnce() error = %v, want ErrConsumed", err)
	}
	if calls != 1 {
		t.Errorf("predicate called %d times, want 1", calls)
	}
	if s.Pos() != 1 {
		t.Errorf("Pos() after spent attempt = %d, want 1", s.Pos())
	}
}

func TestIsNotOnceIsSpentAfterFailure(t *testing.T) {
	p := IsNotOnce(isA)
	s := stream.FromString("aa")

	if _, err := p.ParseIterOnce(s); err == nil {
		t.Fatal("first ParseIterOnce() succeeded, want failure")
	}
	if _, err := p.ParseIterOnce(s); !errors.Is(err, ErrConsumed) {
		t.Errorf("second ParseIterOnce() error = %v, want ErrConsumed", err)
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := Expected(4, ExpectedCondition)
	want := "parse error at 4: expected <condition>"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if KindExpected.String() != "expected" {
		t.Errorf("KindExpected.String() = %q", KindExpected.String())
	}
}
