package ui

import (
	"reflect"
	"testing"
)

func TestFuzzyMatcher(t *testing.T) {
	options := []string{"Add", "Subtract", "Multiply by constant", "Divide"}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty query returns everything", "", options},
		{"whitespace query returns everything", "   ", options},
		{"no collision", "Multiply", []string{"Multiply by constant"}},
		{"case insensitive", "SUB", []string{"Subtract"}},
		{"nothing matches", "xyz", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FuzzyMatcher{}.Match(tt.query, options)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Match(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestFuzzyMatcherSubsequence(t *testing.T) {
	got := FuzzyMatcher{}.Match("dv", []string{"Add", "Divide", "Subtract"})
	if len(got) != 1 || got[0] != "Divide" {
		t.Fatalf("expected only Divide for subsequence dv, got %v", got)
	}
}

func TestFuzzyMatcherDoesNotAliasInput(t *testing.T) {
	options := []string{"a", "b"}
	got := FuzzyMatcher{}.Match("", options)
	got[0] = "mutated"
	if options[0] != "a" {
		t.Fatal("matcher result must not alias the candidate slice")
	}
}

func TestFuzzyMatcherEmptyCandidates(t *testing.T) {
	if got := (FuzzyMatcher{}).Match("x", nil); len(got) != 0 {
		t.Fatalf("expected no matches, got %v", got)
	}
}
