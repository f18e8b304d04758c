package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCanonicalEight(t *testing.T) {
	want := map[string]RGB{
		"black":   {0x00, 0x00, 0x00},
		"white":   {0xFF, 0xFF, 0xFF},
		"red":     {0xFF, 0x00, 0x00},
		"green":   {0x00, 0xFF, 0x00},
		"blue":    {0x00, 0x00, 0xFF},
		"yellow":  {0xFF, 0xFF, 0x00},
		"magenta": {0xFF, 0x00, 0xFF},
		"cyan":    {0x00, 0xFF, 0xFF},
	}
	for name, c := range want {
		got, ok := Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, c, got, name)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	upper, ok1 := Resolve("RED")
	lower, ok2 := Resolve("red")
	mixed, ok3 := Resolve("Red")
	require.True(t, ok1 && ok2 && ok3)
	assert.Equal(t, RGB{0xFF, 0, 0}, upper)
	assert.Equal(t, upper, lower)
	assert.Equal(t, upper, mixed)
}

func TestResolveIndexed(t *testing.T) {
	c, ok := Resolve("color 3")
	require.True(t, ok)
	assert.Equal(t, RGB{0xFF, 0, 0}, c)

	c, ok = Resolve("Color 56")
	require.True(t, ok)
	assert.Equal(t, RGB{0x33, 0x33, 0x33}, c)

	// Extra spaces and missing space are tolerated.
	c, ok = Resolve("color  17")
	require.True(t, ok)
	assert.Equal(t, RGB{0x99, 0x99, 0xFF}, c)

	_, ok = Resolve("color 0")
	assert.False(t, ok)
	_, ok = Resolve("color 57")
	assert.False(t, ok)
}

func TestResolveSpellingVariants(t *testing.T) {
	base, ok := Resolve("grey_25_percent")
	require.True(t, ok)

	for _, alias := range []string{"grey 25%", "grey 25 percent", "GREY_25_PERCENT"} {
		c, ok := Resolve(alias)
		require.True(t, ok, alias)
		assert.Equal(t, base, c, alias)
	}

	spaced, ok := Resolve("sea green")
	require.True(t, ok)
	assert.Equal(t, RGB{0x33, 0x99, 0x66}, spaced)
}

func TestResolveUnknown(t *testing.T) {
	_, ok := Resolve("vermilion")
	assert.False(t, ok)
	// Idempotent: the second lookup behaves the same (the warning is
	// emitted only once, but the result never changes).
	_, ok = Resolve("vermilion")
	assert.False(t, ok)
}

func TestHex(t *testing.T) {
	assert.Equal(t, "ff0000", RGB{0xFF, 0, 0}.Hex())
	assert.Equal(t, "003366", RGB{0x00, 0x33, 0x66}.Hex())
	assert.Equal(t, "000000", RGB{}.Hex())
}
