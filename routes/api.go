// Package routes 注册路由
package routes

import (
	"tarotstore/app/http/controllers/api/v1/history"
	"tarotstore/app/http/controllers/api/v1/store"
	"tarotstore/app/http/controllers/api/v1/tarot"
	"tarotstore/app/http/middlewares"
	"tarotstore/app/repositories"
	"tarotstore/pkg/config"
	"tarotstore/pkg/database"
	"tarotstore/pkg/seeder"

	"github.com/gin-gonic/gin"
)

// 路由限流配置
const (
	// 写历史记录：每分钟每 IP 60 次
	WriteHistoryLimit = "60-M"
)

// RegisterAPIRoutes 注册所有 API 路由
func RegisterAPIRoutes(r *gin.Engine, db *database.Manager, engine *seeder.Engine) {
	v1 := r.Group("/v1")

	v1.Use(
		middlewares.SecurityHeaders(),
		middlewares.LimitIP(config.GetString("app.api_rate_limit", "600-M")),
		middlewares.Cors(),
	)

	// 存储诊断
	sc := store.NewStoreController(db, engine)
	v1.GET("/store/status", sc.Status)
	v1.GET("/store/import", sc.Import)

	// 参考数据，只读
	cards := repositories.NewCardRepository(db)
	spreads := repositories.NewSpreadRepository(db)
	{
		cc := tarot.NewCardsController(cards)
		v1.GET("/cards", cc.Index)
		v1.GET("/cards/:id", cc.Show)

		rc := tarot.NewReferenceController(repositories.NewDimensionRepository(db), spreads)
		v1.GET("/dimensions", rc.Dimensions)
		v1.GET("/spreads", rc.Spreads)
		v1.GET("/spreads/:id", rc.Spread)
	}

	// 用户历史，可写库
	historyRoutes := v1.Group("/users/:user_id/history")
	{
		hc := history.NewHistoryController(repositories.NewHistoryRepository(db), cards, spreads)

		historyRoutes.GET("", hc.Index)
		historyRoutes.POST("", middlewares.LimitPerRoute(WriteHistoryLimit), hc.Store)
		historyRoutes.GET("/:id", hc.Show)
		historyRoutes.PUT("/:id", middlewares.LimitPerRoute(WriteHistoryLimit), hc.Update)
		historyRoutes.DELETE("/:id", hc.Destroy)
	}
}
