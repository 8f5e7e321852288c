package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhereBuilder(t *testing.T) {
	var w Where
	assert.Equal(t, "", w.SQL())

	w.Add("b.is_active = TRUE")
	w.Eq("c.slug", "food")
	w.ContainsAny([]string{"b.name", "b.description"}, "pizza")

	assert.Equal(t,
		"WHERE b.is_active = TRUE AND c.slug = $1 AND (b.name ILIKE $2 OR b.description ILIKE $2)",
		w.SQL())
	assert.Equal(t, []any{"food", "%pizza%"}, w.Args())
	assert.Equal(t, 3, w.Next())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%\_off\\`, EscapeLike(`100%_off\`))

	var w Where
	w.ContainsAny([]string{"b.city"}, "50%")
	assert.Equal(t, []any{`%50\%%`}, w.Args())
}
