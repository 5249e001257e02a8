package ui

import (
	"strings"
	"unicode"
)

const defaultPlaceholder = "Choose an option..."

// fieldWords splits a snake_case field name into capitalised words.
func fieldWords(name string) []string {
	parts := strings.Split(strings.TrimSpace(name), "_")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(strings.ToLower(p))
		r[0] = unicode.ToUpper(r[0])
		words = append(words, string(r))
	}
	return words
}

// placeholderFor derives the trigger placeholder from a field name:
// "database_name" becomes "Select a database name" and "embedding_model"
// becomes "Select an embedding model".
func placeholderFor(name string) string {
	words := fieldWords(name)
	if len(words) == 0 {
		return defaultPlaceholder
	}
	article := "a"
	if strings.ContainsRune("aeiouAEIOU", []rune(words[0])[0]) {
		article = "an"
	}
	return "Select " + article + " " + strings.ToLower(strings.Join(words, " "))
}

// firstWordOf returns the capitalised first word of a field name, used by the
// "New <FirstWord>" action.
func firstWordOf(name string) string {
	words := fieldWords(name)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

func newOptionLabel(name string) string {
	if w := firstWordOf(name); w != "" {
		return "New " + w
	}
	return "New option"
}
