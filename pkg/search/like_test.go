package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLikePrefix(t *testing.T) {
	assert.Equal(t, "AB%", LikePrefix("AB"))
	assert.Equal(t, `50\%\_x%`, LikePrefix("50%_x"))
	assert.Equal(t, `a\\b%`, LikePrefix(`a\b`))
	assert.Equal(t, "%", LikePrefix(""))
}
