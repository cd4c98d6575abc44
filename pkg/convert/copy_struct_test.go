package convert

import (
	"testing"
	"time"

	"github.com/haierkeys/fast-note-pad/pkg/timex"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructAssign(t *testing.T) {
	type src struct {
		ID        string
		Title     string
		Pinned    bool
		CreatedAt time.Time
		Ignored   int
	}
	type dst struct {
		ID        string
		Title     string
		Pinned    bool
		CreatedAt timex.Time
	}

	now := time.Date(2026, 3, 1, 8, 30, 0, 123000000, time.UTC)
	var out dst
	require.NoError(t, StructAssign(&src{ID: "n1", Title: "T", Pinned: true, CreatedAt: now, Ignored: 7}, &out))

	assert.Equal(t, "n1", out.ID)
	assert.Equal(t, "T", out.Title)
	assert.True(t, out.Pinned)
	assert.True(t, now.Equal(out.CreatedAt.Time()))
}
