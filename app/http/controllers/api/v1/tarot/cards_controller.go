// Package tarot 参考数据接口：牌、维度、牌阵
package tarot

import (
	"tarotstore/app/models/card"
	"tarotstore/app/models/interpretation"
	"tarotstore/app/repositories"
	"tarotstore/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"
)

// CardsController 牌与牌义
type CardsController struct {
	cards *repositories.CardRepository
}

// NewCardsController 创建控制器
func NewCardsController(cards *repositories.CardRepository) *CardsController {
	return &CardsController{cards: cards}
}

// interpretationDetail 牌义及其维度解读
type interpretationDetail struct {
	interpretation.Interpretation
	Dimensions []interpretation.InterpretationDimension `json:"dimensions"`
}

// Index 牌列表，可按 ?arcana=Major|Minor 过滤
func (cc *CardsController) Index(c *gin.Context) {
	arcana := card.Arcana(c.Query("arcana"))
	if arcana != "" && !arcana.Valid() {
		response.Abort400(c, "arcana 必须是 Major 或 Minor")
		return
	}

	var (
		cards []card.Card
		err   error
	)
	if arcana == "" {
		cards, err = cc.cards.List(c.Request.Context())
	} else {
		cards, err = cc.cards.ListByArcana(c.Request.Context(), arcana)
	}
	if err != nil {
		response.ServerError(c, err)
		return
	}
	response.Data(c, cards)
}

// Show 单张牌，附带正逆位牌义及维度解读
func (cc *CardsController) Show(c *gin.Context) {
	id, err := cast.ToUint64E(c.Param("id"))
	if err != nil || id == 0 {
		response.Abort400(c, "无效的卡牌编号")
		return
	}

	ctx := c.Request.Context()
	item, err := cc.cards.GetByID(ctx, id)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	if item == nil {
		response.Abort404(c, "卡牌不存在")
		return
	}

	interpretations, err := cc.cards.Interpretations(ctx, id)
	if err != nil {
		response.ServerError(c, err)
		return
	}
	details := make([]interpretationDetail, 0, len(interpretations))
	for _, in := range interpretations {
		dims, err := cc.cards.InterpretationDimensions(ctx, in.ID)
		if err != nil {
			response.ServerError(c, err)
			return
		}
		details = append(details, interpretationDetail{Interpretation: in, Dimensions: dims})
	}

	response.Data(c, gin.H{
		"card":            item,
		"interpretations": details,
	})
}
