package idgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUID_NewID(t *testing.T) {
	gen := UUID{}
	pattern := regexp.MustCompile(`^task-[0-9a-f]{8}$`)

	seen := make(map[string]bool)
	for range 100 {
		id := gen.NewID()
		assert.Regexp(t, pattern, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 95)
}
