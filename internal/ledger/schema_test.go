package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tunelytics/internal/ledger"
)

func TestSchemas_Memoized(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ledger.Schemas(), ledger.Schemas())
}

func TestSchemas_DistinctIDs(t *testing.T) {
	t.Parallel()

	ids := ledger.Schemas()

	assert.Len(t, ids.Interaction, 64)
	assert.NotEqual(t, ids.Interaction, ids.Post)
	assert.NotEqual(t, ids.Post, ids.PlayEvent)
	assert.NotEqual(t, ids.Interaction, ids.PlayEvent)
}
