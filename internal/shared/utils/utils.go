package utils

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}

// RuneLen counts characters after trimming surrounding whitespace.
func RuneLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// =====================================================
// PAGINATION
// =====================================================

// Page describes one page of a result set. Number is 1-based.
type Page struct {
	Number     int
	Size       int
	Total      int
	TotalPages int
}

// NewPage parses a ?page= value leniently: garbage becomes page 1 and
// out-of-range numbers clamp to the last page.
func NewPage(raw string, size, total int) Page {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		n = 1
	}
	p := Page{Size: size, Total: total, TotalPages: totalPages(total, size)}
	if n > p.TotalPages {
		n = p.TotalPages
	}
	p.Number = n
	return p
}

// ParsePageStrict accepts only positive integers (empty means 1).
func ParsePageStrict(raw string) (int, bool) {
	if raw == "" {
		return 1, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func totalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

func (p Page) Offset() int  { return (p.Number - 1) * p.Size }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }
func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) Next() int     { return p.Number + 1 }
func (p Page) Prev() int     { return p.Number - 1 }
