package bootstrap

import (
	"net/http"
	"strings"

	"tarotstore/app/http/middlewares"
	"tarotstore/pkg/database"
	"tarotstore/pkg/seeder"
	"tarotstore/routes"

	"github.com/gin-gonic/gin"
)

// SetupRoute 路由初始化：全局中间件、API 路由、404 处理
func SetupRoute(router *gin.Engine, db *database.Manager, engine *seeder.Engine) {
	// 注册全局中间件
	registerGlobalMiddleWare(router)

	// 注册 API 路由
	routes.RegisterAPIRoutes(router, db, engine)

	// 配置 404 路由处理器
	setup404Handler(router)
}

// registerGlobalMiddleWare 注册全局中间件
func registerGlobalMiddleWare(router *gin.Engine) {
	router.Use(
		middlewares.Logger(),   // 记录请求日志
		middlewares.Recovery(), // 在发生 panic 时恢复
	)
}

// setup404Handler 根据 Accept 头返回文本或 JSON 格式的 404
func setup404Handler(router *gin.Engine) {
	router.NoRoute(func(c *gin.Context) {
		acceptString := c.Request.Header.Get("Accept")

		if strings.Contains(acceptString, "text/html") {
			c.String(http.StatusNotFound, "页面返回 404")
		} else {
			c.JSON(http.StatusNotFound, gin.H{
				"error_code":    404,
				"error_message": "路由未定义，请确认 url 和请求方法是否正确。",
			})
		}
	})
}
