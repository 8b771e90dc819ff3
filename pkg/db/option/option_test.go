package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithQuerySortBy(t *testing.T) {
	allowed := map[string]bool{"priority": true, "created_at": true}

	assert.Equal(t, "priority ASC", WithQuerySortBy("priority", "asc", allowed))
	assert.Equal(t, "created_at DESC", WithQuerySortBy("created_at", "DESC", allowed))
	assert.Equal(t, "priority ASC", WithQuerySortBy("priority", "bogus", allowed))
	assert.Equal(t, "", WithQuerySortBy("name", "ASC", allowed))
	assert.Equal(t, "", WithQuerySortBy("", "ASC", allowed))
}
