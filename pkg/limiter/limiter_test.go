package limiter

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	l := NewMethodLimiter().AddBuckets(
		BucketRule{Key: "/api", FillInterval: time.Hour, Capacity: 2, Quantum: 1},
		BucketRule{Key: "/api/note", FillInterval: time.Hour, Capacity: 1, Quantum: 1},
		BucketRule{Key: "", FillInterval: time.Hour, Capacity: 1, Quantum: 1},
	)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/note/pin", nil)
	assert.Equal(t, "/api/note", l.Key(c))

	c.Request = httptest.NewRequest("GET", "/metrics", nil)
	assert.Equal(t, "/metrics", l.Key(c))
	_, ok := l.GetBucket("/metrics")
	assert.False(t, ok)

	bucket, ok := l.GetBucket("/api/note")
	require.True(t, ok)
	assert.Equal(t, int64(1), bucket.TakeAvailable(1))
	assert.Equal(t, int64(0), bucket.TakeAvailable(1))
}
