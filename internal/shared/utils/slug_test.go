package utils

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Joe's Pizza":           "joes-pizza",
		"Café René":             "cafe-rene",
		"  -- Hello   World --": "hello-world",
		"Bánh mì Đà Nẵng":       "banh-mi-da-nang",
		"A & B Plumbing":        "a-b-plumbing",
		"snake_case_name":       "snake_case_name",
		"!!!":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestUniqueSlugAppendsCounter(t *testing.T) {
	taken := map[string]bool{"joes-pizza": true, "joes-pizza-1": true}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	slug, err := UniqueSlug(context.Background(), "joes-pizza", exists)
	require.NoError(t, err)
	assert.Equal(t, "joes-pizza-2", slug)

	slug, err = UniqueSlug(context.Background(), "tacos", exists)
	require.NoError(t, err)
	assert.Equal(t, "tacos", slug)
}

func TestUniqueSlugPropagatesErrors(t *testing.T) {
	boom := errors.New("db down")
	_, err := UniqueSlug(context.Background(), "x", func(context.Context, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestUniqueSlugExhausted(t *testing.T) {
	_, err := UniqueSlug(context.Background(), "x", func(context.Context, string) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, ErrSlugExhausted)
}
