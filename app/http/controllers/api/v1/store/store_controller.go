// Package store 存储诊断接口
package store

import (
	"tarotstore/pkg/database"
	"tarotstore/pkg/response"
	"tarotstore/pkg/seeder"

	"github.com/gin-gonic/gin"
)

// StoreController 启动诊断：存储状态与最近一次导入
type StoreController struct {
	store  *database.Manager
	engine *seeder.Engine
}

// NewStoreController engine 可以为 nil（未启用导入）
func NewStoreController(store *database.Manager, engine *seeder.Engine) *StoreController {
	return &StoreController{store: store, engine: engine}
}

// Status 存储状态
func (sc *StoreController) Status(c *gin.Context) {
	data := gin.H{"store": sc.store.Status()}
	if sc.engine != nil {
		if session := sc.engine.LastSession(); session != nil {
			data["import_completed"] = session.IsCompleted
			data["import_progress"] = session.TotalProgress
		}
	}
	response.Data(c, data)
}

// Import 最近一次导入的完整记录
func (sc *StoreController) Import(c *gin.Context) {
	if sc.engine == nil || sc.engine.LastSession() == nil {
		response.Abort404(c, "尚未执行导入")
		return
	}
	response.Data(c, sc.engine.LastSession())
}
