package utils

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrSlugExhausted is returned when no free suffix was found.
var ErrSlugExhausted = errors.New("no free slug available")

const maxSlugSuffix = 1000

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9_\s-]+`)
	dashOrSpace  = regexp.MustCompile(`[-\s]+`)
)

// Letters that NFKD does not decompose into an ASCII base.
var specialLetters = map[rune]rune{
	'đ': 'd', 'Đ': 'D',
	'ł': 'l', 'Ł': 'L',
	'ø': 'o', 'Ø': 'O',
}

// Slugify turns a display name into a URL slug.
// "Joe's Pizza" → "joes-pizza", "Café René" → "cafe-rene"
func Slugify(input string) string {
	// Step 1: strip diacritics
	ascii := RemoveDiacritics(input)

	// Step 2: lowercase, drop everything except word chars, spaces and hyphens
	cleaned := nonSlugChars.ReplaceAllString(strings.ToLower(ascii), "")

	// Step 3: collapse runs of spaces/hyphens into one hyphen, trim the edges
	hyphenated := dashOrSpace.ReplaceAllString(strings.TrimSpace(cleaned), "-")
	return strings.Trim(hyphenated, "-_")
}

// RemoveDiacritics: "Nguyễn" → "Nguyen"
func RemoveDiacritics(input string) string {
	t := transform.Chain(
		runes.Map(func(r rune) rune {
			if repl, ok := specialLetters[r]; ok {
				return repl
			}
			return r
		}),
		norm.NFKD,
		runes.Remove(runes.In(unicode.Mn)),
	)
	out, _, err := transform.String(t, input)
	if err != nil {
		return input
	}
	return out
}

// UniqueSlug returns base if free, otherwise the first free of base-1, base-2, ...
func UniqueSlug(ctx context.Context, base string, exists func(context.Context, string) (bool, error)) (string, error) {
	candidate := base
	for i := 1; i <= maxSlugSuffix; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", ErrSlugExhausted
}
