// Package middlewares 存放系统中间件
package middlewares

import (
	"sync"
	"time"

	"tarotstore/pkg/app"
	"tarotstore/pkg/limiter"
	"tarotstore/pkg/logger"
	"tarotstore/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
	"golang.org/x/time/rate"
)

const (
	// DefaultBurst 默认突发请求数量
	DefaultBurst = 50
	// idleTTL 限流器闲置超过该时长后被清理
	idleTTL = 24 * time.Hour
)

// bucket 单个 key 的令牌桶与最近访问时间
type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	buckets     sync.Map
	bucketsMu   sync.Mutex
	janitorOnce sync.Once
)

// LimitIP 全局限流中间件，针对 IP 进行令牌桶限流
//
// 支持的限流格式:
// - 5 reqs/second:   "5-S"
// - 10 reqs/minute:  "10-M"
// - 1000 reqs/hour:  "1000-H"
// - 2000 reqs/day:   "2000-D"
func LimitIP(limit string) gin.HandlerFunc {
	// 测试环境使用较大限制
	if app.IsTesting() {
		limit = "1000000-H"
	}

	r, err := limiter.ParseLimit(limit)
	if err != nil {
		logger.ErrorString("限流器", "解析配置", err.Error())
		// 配置有误时不限流
		return func(c *gin.Context) { c.Next() }
	}
	janitorOnce.Do(func() { go cleanupBuckets() })

	return func(c *gin.Context) {
		lim := getBucket(limit+":"+limiter.GetKeyIP(c), r)
		if !lim.Allow() {
			response.Abort429(c)
			return
		}

		c.Header("X-RateLimit-Limit", cast.ToString(r.Limit))
		c.Header("X-RateLimit-Remaining", cast.ToString(int64(lim.Tokens())))
		c.Next()
	}
}

// LimitPerRoute 针对单个路由的限流中间件，基于 IP + 路由路径，计数存放于 ulule 内存存储
func LimitPerRoute(limit string) gin.HandlerFunc {
	if app.IsTesting() {
		limit = "1000000-H"
	}

	return func(c *gin.Context) {
		key := limiter.GetKeyRouteWithIP(c)
		result, err := limiter.CheckRate(c, key, limit)
		if err != nil {
			logger.LogIf(err)
			// 降级处理：允许请求通过
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", cast.ToString(result.Limit))
		c.Header("X-RateLimit-Remaining", cast.ToString(result.Remaining))
		c.Header("X-RateLimit-Reset", cast.ToString(result.Reset))

		if result.Reached {
			response.Abort429(c)
			return
		}
		c.Next()
	}
}

// getBucket 获取或创建令牌桶，并刷新访问时间
func getBucket(key string, r *limiter.Rate) *rate.Limiter {
	bucketsMu.Lock()
	defer bucketsMu.Unlock()

	if v, ok := buckets.Load(key); ok {
		b := v.(*bucket)
		b.lastSeen = time.Now()
		return b.limiter
	}

	burst := DefaultBurst
	if int(r.Limit) < burst {
		burst = int(r.Limit)
	}
	b := &bucket{
		limiter:  rate.NewLimiter(rate.Limit(r.Rate), burst),
		lastSeen: time.Now(),
	}
	buckets.Store(key, b)
	return b.limiter
}

// cleanupBuckets 定期清理闲置的令牌桶
func cleanupBuckets() {
	ticker := time.NewTicker(time.Hour)
	for range ticker.C {
		now := time.Now()
		bucketsMu.Lock()
		buckets.Range(func(key, value interface{}) bool {
			if now.Sub(value.(*bucket).lastSeen) > idleTTL {
				buckets.Delete(key)
			}
			return true
		})
		bucketsMu.Unlock()
	}
}
