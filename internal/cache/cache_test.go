package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKeyGenerators(t *testing.T) {
	assert.Equal(t, "standings:abc-123", StandingsCacheKey("abc-123"))
	assert.Equal(t, "search:progress:abc-123", SearchProgressCacheKey("abc-123"))
	assert.Equal(t, "tactics:table", TacticsTableCacheKey())
}
