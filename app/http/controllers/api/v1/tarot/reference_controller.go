package tarot

import (
	"tarotstore/app/repositories"
	"tarotstore/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// ReferenceController 维度与牌阵
type ReferenceController struct {
	dimensions *repositories.DimensionRepository
	spreads    *repositories.SpreadRepository
}

// NewReferenceController 创建控制器
func NewReferenceController(dimensions *repositories.DimensionRepository, spreads *repositories.SpreadRepository) *ReferenceController {
	return &ReferenceController{dimensions: dimensions, spreads: spreads}
}

// Dimensions 传 ?category= 时返回该主题下的维度，否则返回全部主题
func (rc *ReferenceController) Dimensions(c *gin.Context) {
	ctx := c.Request.Context()
	if category := c.Query("category"); category != "" {
		dims, err := rc.dimensions.ListByCategory(ctx, category)
		if err != nil {
			response.ServerError(c, err)
			return
		}
		response.Data(c, dims)
		return
	}

	categories, err := rc.dimensions.Categories(ctx)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.Data(c, gin.H{"categories": categories})
}

// Spreads 牌阵列表
func (rc *ReferenceController) Spreads(c *gin.Context) {
	spreads, err := rc.spreads.List(c.Request.Context())
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.Data(c, spreads)
}

// Spread 单个牌阵
func (rc *ReferenceController) Spread(c *gin.Context) {
	id := cast.ToUint64(c.Param("id"))
	item, err := rc.spreads.GetByID(c.Request.Context(), id)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if item == nil {
		response.Abort404(c, "牌阵不存在")
		return
	}
	response.Data(c, item)
}
