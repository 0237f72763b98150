// Package limiter 处理限流逻辑
package limiter

import (
	"fmt"
	"strings"
	"sync"

	"tarotstore/pkg/config"
	"tarotstore/pkg/logger"

	"github.com/gin-gonic/gin"
	limiterlib "github.com/ulule/limiter/v3"
	smemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// Rate 定义限流速率
type Rate struct {
	Rate   float64 // 每秒请求数
	Limit  int64   // 周期内允许的请求数
	Period string
}

var (
	store     limiterlib.Store
	storeOnce sync.Once
)

// memoryStore 进程内共享的计数存储
func memoryStore() limiterlib.Store {
	storeOnce.Do(func() {
		store = smemory.NewStoreWithOptions(limiterlib.StoreOptions{
			// 为 limiter 设置前缀，区分不同应用的 key
			Prefix: config.GetString("app.name", "tarotstore") + ":limiter",
		})
	})
	return store
}

// ParseLimit 解析限流配置字符串
// 支持的格式: "5-S"、"10-M"、"1000-H"、"2000-D"
func ParseLimit(limit string) (*Rate, error) {
	rate, err := limiterlib.NewRateFromFormatted(limit)
	if err != nil {
		return nil, fmt.Errorf("invalid limit format %q: %w", limit, err)
	}
	if rate.Period <= 0 {
		return nil, fmt.Errorf("invalid limit period: %s", limit)
	}

	return &Rate{
		Rate:   float64(rate.Limit) / rate.Period.Seconds(),
		Limit:  rate.Limit,
		Period: rate.Period.String(),
	}, nil
}

// GetKeyIP 获取 Limitor 的 Key，IP
func GetKeyIP(c *gin.Context) string {
	return c.ClientIP()
}

// GetKeyRouteWithIP Limitor 的 Key，路由+IP，针对单个路由做限流
func GetKeyRouteWithIP(c *gin.Context) string {
	return routeToKeyString(c.FullPath()) + c.ClientIP()
}

// CheckRate 检测请求是否超额
func CheckRate(c *gin.Context, key string, formatted string) (limiterlib.Context, error) {
	// 实例化依赖的 limiter 包的 limiter.Rate 对象
	var context limiterlib.Context
	rate, err := limiterlib.NewRateFromFormatted(formatted)
	if err != nil {
		logger.LogIf(err)
		return context, err
	}

	limiterObj := limiterlib.New(memoryStore(), rate)

	// 同一个请求多次经过限流中间件时，只计一次
	if c.GetBool("limiter-once:" + key) {
		// Peek() 取结果，不增加访问次数
		return limiterObj.Peek(c, key)
	}
	c.Set("limiter-once:"+key, true)

	// Get() 取结果且增加访问次数
	return limiterObj.Get(c, key)
}

// routeToKeyString 辅助方法，将 URL 中的 / 格式为 -
func routeToKeyString(routeName string) string {
	routeName = strings.ReplaceAll(routeName, "/", "-")
	routeName = strings.ReplaceAll(routeName, ":", "_")
	return routeName
}
