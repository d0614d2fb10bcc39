package shortcode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{7}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := New()
		assert.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}

	// collisions across 100 draws from a 36^7 space would mean broken randomness
	assert.Len(t, seen, 100)
}
