// Package history 用户占卜历史接口
package history

import (
	"context"
	"errors"
	"fmt"

	"tarotstore/app/models/history"
	"tarotstore/app/repositories"
	"tarotstore/app/requests"
	"tarotstore/pkg/app"
	"tarotstore/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// HistoryController 历史记录的增删改查，数据只落在可写库。
// 记录里的 spread_id 与 card_ids 只是普通值，参考库换版后旧记录照常可读可改
type HistoryController struct {
	records *repositories.HistoryRepository
	cards   *repositories.CardRepository
	spreads *repositories.SpreadRepository
}

// NewHistoryController 创建控制器
func NewHistoryController(records *repositories.HistoryRepository, cards *repositories.CardRepository, spreads *repositories.SpreadRepository) *HistoryController {
	return &HistoryController{records: records, cards: cards, spreads: spreads}
}

// invalidReading 新记录与当前参考库不符
type invalidReading struct {
	reason string
}

func (e *invalidReading) Error() string { return e.reason }

// Index 用户历史，按占卜时间倒序分页
func (hc *HistoryController) Index(c *gin.Context) {
	page := cast.ToInt(c.DefaultQuery("page", "1"))
	pageSize := cast.ToInt(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := hc.records.GetByUserID(c.Request.Context(), c.Param("user_id"), page, pageSize)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.Paginated(c, records, response.Paging{Page: page, PageSize: pageSize, Total: total})
}

// Store 保存一次占卜
func (hc *HistoryController) Store(c *gin.Context) {
	// 1. 请求验证
	request, ok := validate(c)
	if !ok {
		return
	}

	// 2. 按当前参考库校验卡牌与牌阵容量
	if err := hc.checkReading(c.Request.Context(), request); err != nil {
		var invalid *invalidReading
		if errors.As(err, &invalid) {
			response.BadRequest(c, err, "卡牌或牌阵校验失败")
			return
		}
		response.ServerError(c, err)
		return
	}

	record := &history.Record{
		ID:                 request.ID,
		UserID:             c.Param("user_id"),
		Timestamp:          request.Timestamp,
		SpreadID:           request.SpreadID,
		CardIDs:            history.CardIDs(request.CardIDs),
		InterpretationMode: history.Mode(request.InterpretationMode).Normalize(),
		Result:             request.Result,
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp == 0 {
		record.Timestamp = app.TimenowInTimezone().UnixMilli()
	}

	// 3. 写入可写库
	if err := hc.records.Create(c.Request.Context(), record); err != nil {
		if errors.Is(err, repositories.ErrHistoryExists) {
			response.Abort409(c, fmt.Sprintf("历史记录 %s 已存在", record.ID))
			return
		}
		response.ServerError(c, err, "保存历史记录失败")
		return
	}
	response.Created(c, record)
}

// Show 单条历史
func (hc *HistoryController) Show(c *gin.Context) {
	record, ok := hc.find(c)
	if !ok {
		return
	}
	response.Data(c, record)
}

// Update 更新历史，通常用于补写 AI 解读结果
func (hc *HistoryController) Update(c *gin.Context) {
	record, ok := hc.find(c)
	if !ok {
		return
	}

	request, ok := validate(c)
	if !ok {
		return
	}

	record.SpreadID = request.SpreadID
	record.CardIDs = history.CardIDs(request.CardIDs)
	record.InterpretationMode = history.Mode(request.InterpretationMode).Normalize()
	if request.Timestamp != 0 {
		record.Timestamp = request.Timestamp
	}
	if request.Result != nil {
		record.Result = request.Result
	}

	if err := hc.records.Update(c.Request.Context(), record); err != nil {
		response.ServerError(c, err, "更新历史记录失败")
		return
	}
	response.Data(c, record)
}

// Destroy 删除单条历史
func (hc *HistoryController) Destroy(c *gin.Context) {
	err := hc.records.Delete(c.Request.Context(), c.Param("user_id"), c.Param("id"))
	if errors.Is(err, repositories.ErrHistoryNotFound) {
		response.Abort404(c, "历史记录不存在")
		return
	}
	if err != nil {
		response.ServerError(c, err, "删除历史记录失败")
		return
	}
	response.Successful(c, "删除成功")
}

// find 按路由参数取记录，失败时已写好响应
func (hc *HistoryController) find(c *gin.Context) (*history.Record, bool) {
	record, err := hc.records.GetByID(c.Request.Context(), c.Param("user_id"), c.Param("id"))
	if errors.Is(err, repositories.ErrHistoryNotFound) {
		response.Abort404(c, "历史记录不存在")
		return nil, false
	}
	if err != nil {
		response.ServerError(c, err)
		return nil, false
	}
	return record, true
}

// validate 解析并验证请求体，失败时已写好响应
func validate(c *gin.Context) (*requests.HistoryRequest, bool) {
	request, err := requests.ValidateHistory(c)
	if err == nil {
		return request, true
	}
	var verr requests.ValidationError
	if errors.As(err, &verr) {
		response.ValidationError(c, verr.Errors)
		return nil, false
	}
	response.BadRequest(c, err, "请求参数验证失败")
	return nil, false
}

// checkReading 卡牌必须在当前参考库中存在；牌阵存在时牌数不能超过其容量
func (hc *HistoryController) checkReading(ctx context.Context, request *requests.HistoryRequest) error {
	missing, err := hc.cards.MissingIDs(ctx, request.CardIDs)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return &invalidReading{reason: fmt.Sprintf("卡牌不存在: %v", missing)}
	}

	spread, err := hc.spreads.GetByID(ctx, request.SpreadID)
	if err != nil {
		return err
	}
	if spread != nil && len(request.CardIDs) > spread.CardCount {
		return &invalidReading{reason: fmt.Sprintf("牌阵 %s 最多 %d 张牌，收到 %d 张",
			spread.Name, spread.CardCount, len(request.CardIDs))}
	}
	return nil
}
