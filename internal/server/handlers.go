package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"postMint/internal/aggregate"
	"postMint/internal/coins"
	"postMint/internal/model"
)

type manualCoinRequest struct {
	Address string `json:"address" binding:"required"`
}

func (s *Server) getCreatorCoins(c *gin.Context) {
	creator := c.Param("address")
	all, mine := s.aggregator.Aggregate(c.Request.Context(), creator)
	c.JSON(http.StatusOK, model.NewDashboard(creator, all, mine))
}

func (s *Server) addManualCoin(c *gin.Context) {
	var req manualCoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	record, err := s.aggregator.AddManualRecord(c.Request.Context(), c.Param("address"), req.Address)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, record)
	case errors.Is(err, aggregate.ErrInvalidAddressFormat), errors.Is(err, aggregate.ErrCreatorRequired):
		errorJSON(c, http.StatusBadRequest, err)
	case errors.Is(err, aggregate.ErrDuplicateAddress):
		errorJSON(c, http.StatusConflict, err)
	default:
		s.logger.Error("add manual coin failed", zap.Error(err))
		errorJSON(c, http.StatusInternalServerError, err)
	}
}

func (s *Server) explore(c *gin.Context) {
	kind, err := coins.ParseListKind(c.Param("source"))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	page, err := s.api.Explore(c.Request.Context(), kind, parseCount(c, s.cfg.ExploreCount), c.Query("after"))
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	views := make([]model.CoinView, 0, len(page.Coins))
	for _, coin := range page.Coins {
		views = append(views, model.NewCoinView(coin))
	}
	c.JSON(http.StatusOK, gin.H{
		"source":   kind.Name(),
		"coins":    views,
		"pageInfo": page.PageInfo,
	})
}

func (s *Server) getCoin(c *gin.Context) {
	address := c.Param("address")
	if !aggregate.ValidAddress(address) {
		errorJSON(c, http.StatusBadRequest, aggregate.ErrInvalidAddressFormat)
		return
	}

	chainID := s.cfg.ChainID
	if raw := c.Query("chain"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err)
			return
		}
		chainID = id
	}

	onChain := c.Query("onchain") == "1" || c.Query("onchain") == "true"
	if onChain && s.chain == nil {
		errorJSON(c, http.StatusBadRequest, errors.New("on-chain lookups are not configured"))
		return
	}

	coin, err := s.api.Coin(c.Request.Context(), address, chainID)
	if err != nil {
		s.upstreamError(c, err)
		return
	}

	detail := model.CoinDetail{CoinView: model.NewCoinView(coin)}
	if onChain {
		meta, err := s.tokens.TokenMeta(c.Request.Context(), s.chain, common.HexToAddress(address), s.logger)
		if err != nil {
			s.logger.Warn("on-chain metadata unavailable", zap.String("address", address), zap.Error(err))
		} else {
			detail.OnChain = &meta
		}
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) upstreamError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, coins.ErrNotFound):
		errorJSON(c, http.StatusNotFound, coins.ErrNotFound)
	case errors.Is(err, coins.ErrUnauthorized):
		errorJSON(c, http.StatusBadGateway, coins.ErrUnauthorized)
	default:
		s.logger.Warn("coins api request failed", zap.Error(err))
		errorJSON(c, http.StatusBadGateway, err)
	}
}
