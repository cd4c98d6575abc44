// Package limiter token bucket rate limiting keyed by request path
// Package limiter 基于请求路径的令牌桶限流
package limiter

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// BucketRule 令牌桶规则
type BucketRule struct {
	Key          string        // 路径前缀
	FillInterval time.Duration // 放入令牌的间隔
	Capacity     int64         // 桶容量
	Quantum      int64         // 每次放入的令牌数
}

// MethodLimiter 按路径前缀匹配令牌桶
type MethodLimiter struct {
	mu      sync.RWMutex
	keys    []string
	buckets map[string]*ratelimit.Bucket
}

func NewMethodLimiter() Face {
	return &MethodLimiter{buckets: make(map[string]*ratelimit.Bucket)}
}

// Key 返回匹配到的最长规则前缀，未命中返回请求路径本身
func (l *MethodLimiter) Key(c *gin.Context) string {
	path := c.Request.URL.Path
	l.mu.RLock()
	defer l.mu.RUnlock()

	match := ""
	for _, k := range l.keys {
		if strings.HasPrefix(path, k) && len(k) > len(match) {
			match = k
		}
	}
	if match == "" {
		return path
	}
	return match
}

func (l *MethodLimiter) GetBucket(key string) (*ratelimit.Bucket, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	bucket, ok := l.buckets[key]
	return bucket, ok
}

func (l *MethodLimiter) AddBuckets(rules ...BucketRule) Face {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, rule := range rules {
		if rule.Key == "" || rule.FillInterval <= 0 || rule.Capacity <= 0 {
			continue
		}
		if _, ok := l.buckets[rule.Key]; !ok {
			l.keys = append(l.keys, rule.Key)
		}
		l.buckets[rule.Key] = ratelimit.NewBucketWithQuantum(rule.FillInterval, rule.Capacity, rule.Quantum)
	}
	return l
}
