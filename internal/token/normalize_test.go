package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDropsEmptyNonStickyText(t *testing.T) {
	in := []Token{
		{Kind: Text, Value: ""},
		{Kind: Text, Value: "hi"},
		{Kind: Text, Value: "", StickyText: true, Format: Bold},
	}
	out := Normalize(in)
	assert.Len(t, out, 2)
	assert.Equal(t, "hi", out[0].Value)
	assert.True(t, out[1].StickyText)
}

func TestNormalizeFusesAdjacent(t *testing.T) {
	in := []Token{
		{Kind: Text, Value: "foo", Format: Bold},
		{Kind: Text, Value: "bar", Format: Bold},
		{Kind: Text, Value: "baz", Format: Italic},
	}
	out := Normalize(in)
	assert.Len(t, out, 2)
	assert.Equal(t, "foobar", out[0].Value)
	assert.Equal(t, "baz", out[1].Value)
}

func TestNormalizeIdempotent(t *testing.T) {
	in := []Token{
		{Kind: Text, Value: "a", Format: Bold},
		{Kind: Text, Value: "b", Format: Bold},
	}
	once := Normalize(in)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}
