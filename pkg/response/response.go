// Package response 提供统一的 HTTP 响应处理
package response

import (
	"errors"
	"net/http"

	"tarotstore/pkg/app"
	"tarotstore/pkg/database"
	"tarotstore/pkg/logger"

	"github.com/gin-gonic/gin"
)

// 预定义响应状态
const (
	Success = "success" // 成功状态
	Error   = "error"   // 错误状态
)

/* 标准响应结构
{
    "status": "success",
    "data": {},     // 成功时返回的数据
    "error": "",    // 错误时返回的信息
    "message": "",  // 提示信息
}
*/

// Response 统一响应结构体
type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// Paging 分页信息
type Paging struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

// ------------------ 成功响应 ------------------

// Data 响应 200 和数据
func Data(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Status: Success,
		Data:   data,
	})
}

// Paginated 响应 200 和分页数据
func Paginated(c *gin.Context, data interface{}, paging Paging) {
	c.JSON(http.StatusOK, gin.H{
		"status": Success,
		"data":   data,
		"paging": paging,
	})
}

// Created 成功创建的响应
func Created(c *gin.Context, data interface{}, msg ...string) {
	c.JSON(http.StatusCreated, Response{
		Status:  Success,
		Message: getMsg("创建成功", msg...),
		Data:    data,
	})
}

// Successful 操作成功，无数据
func Successful(c *gin.Context, msg ...string) {
	c.JSON(http.StatusOK, Response{
		Status:  Success,
		Message: getMsg("操作成功", msg...),
	})
}

// ------------------ 错误响应 ------------------

// Abort400 响应 400 错误
func Abort400(c *gin.Context, msg ...string) {
	abort(c, http.StatusBadRequest, getMsg("请求参数错误", msg...))
}

// Abort404 响应 404 错误
func Abort404(c *gin.Context, msg ...string) {
	abort(c, http.StatusNotFound, getMsg("资源不存在", msg...))
}

// Abort409 资源冲突
func Abort409(c *gin.Context, msg ...string) {
	abort(c, http.StatusConflict, getMsg("资源已存在", msg...))
}

// Abort429 响应 429 错误
func Abort429(c *gin.Context, msg ...string) {
	abort(c, http.StatusTooManyRequests, getMsg("请求太频繁，请稍后再试", msg...))
}

// Abort500 响应 500 错误
func Abort500(c *gin.Context, msg ...string) {
	abort(c, http.StatusInternalServerError, getMsg("服务器内部错误", msg...))
}

// Abort503 存储尚未就绪
func Abort503(c *gin.Context, msg ...string) {
	abort(c, http.StatusServiceUnavailable, getMsg("存储尚未初始化", msg...))
}

// BadRequest 响应 400 错误（带错误信息）
func BadRequest(c *gin.Context, err error, msg ...string) {
	logger.LogWarnIf(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, Response{
		Status:  Error,
		Message: getMsg("请求格式错误", msg...),
		Error:   err.Error(),
	})
}

// ServerError 存储层错误：未初始化返回 503，其余 500
func ServerError(c *gin.Context, err error, msg ...string) {
	if errors.Is(err, database.ErrNotInitialized) {
		Abort503(c)
		return
	}
	logger.LogIf(err)
	resp := Response{
		Status:  Error,
		Message: getMsg("服务器内部错误", msg...),
	}
	// 生产环境不向客户端暴露存储层错误
	if !app.IsProduction() {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}

// ValidationError 响应 422 表单验证错误
func ValidationError(c *gin.Context, errors map[string][]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, Response{
		Status:  Error,
		Message: "表单验证失败",
		Data:    errors,
	})
}

func abort(c *gin.Context, code int, msg string) {
	c.AbortWithStatusJSON(code, Response{
		Status:  Error,
		Message: msg,
	})
}

// getMsg 获取消息内容
func getMsg(defaultMsg string, msg ...string) string {
	if len(msg) > 0 {
		return msg[0]
	}
	return defaultMsg
}
