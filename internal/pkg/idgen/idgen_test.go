package idgen_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KirkDiggler/rpg-builder/internal/pkg/idgen"
)

func TestSequential(t *testing.T) {
	gen := idgen.NewSequential("roll")
	assert.Equal(t, "roll_1", gen.Generate())
	assert.Equal(t, "roll_2", gen.Generate())

	bare := idgen.NewSequential("")
	assert.Equal(t, "1", bare.Generate())
}

func TestUUID(t *testing.T) {
	gen := idgen.NewUUID("char")
	first := gen.Generate()
	second := gen.Generate()

	assert.True(t, strings.HasPrefix(first, "char_"))
	assert.NotEqual(t, first, second)
}

func TestJoinCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{3}-[A-Z0-9]{3}$`)
	gen := idgen.NewJoinCode()

	for i := 0; i < 50; i++ {
		code := gen.Generate()
		assert.Regexp(t, pattern, code)
	}
}
