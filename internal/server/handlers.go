package server

import (
	"errors"
	"net/http"
	"strconv"

	"cardmarket-revenue-go/internal/models"
	"cardmarket-revenue-go/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type recordSaleRequest struct {
	SellerId            string `json:"seller_id" binding:"required"`
	BuyerId             string `json:"buyer_id" binding:"required"`
	AssetId             string `json:"asset_id" binding:"required"`
	Source              string `json:"source" binding:"required"`
	PurchaseAmountCents int64  `json:"purchase_amount_cents" binding:"required"`
}

type spendCreditsRequest struct {
	Amount int64  `json:"amount" binding:"required"`
	Reason string `json:"reason"`
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/v1")
	if s.cfg.APIKey != "" {
		v1.Use(APIKeyAuth(s.cfg.APIKey))
	}
	{
		sellers := v1.Group("/sellers/:seller_id")
		{
			sellers.GET("/revenue", s.handleGetRevenue)
			sellers.POST("/convert", s.handleConvert)
			sellers.POST("/payout", s.handlePayout)
			sellers.GET("/requests", s.handleGetRequests)
			sellers.GET("/credits", s.handleGetCredits)
			sellers.GET("/credits/history", s.handleGetCreditHistory)
			sellers.POST("/credits/spend", s.handleSpendCredits)
		}

		v1.POST("/sales", s.handleRecordSale)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.revenueSvc.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetRevenue(c *gin.Context) {
	sellerId := c.Param("seller_id")

	summary, err := s.revenueSvc.GetSummary(c.Request.Context(), sellerId)
	if err != nil {
		s.respondError(c, sellerId, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (s *Server) handleConvert(c *gin.Context) {
	sellerId := c.Param("seller_id")

	result, err := s.revenueSvc.ConvertRevenue(c.Request.Context(), sellerId)
	if err != nil {
		s.respondError(c, sellerId, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handlePayout(c *gin.Context) {
	sellerId := c.Param("seller_id")

	var contact models.PayoutContact
	if err := c.ShouldBindJSON(&contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	result, err := s.revenueSvc.RequestPayout(c.Request.Context(), sellerId, contact)
	if err != nil {
		s.respondError(c, sellerId, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetRequests(c *gin.Context) {
	sellerId := c.Param("seller_id")

	requests, err := s.revenueSvc.GetRequests(c.Request.Context(), sellerId)
	if err != nil {
		s.respondError(c, sellerId, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seller_id": sellerId, "requests": requests})
}

func (s *Server) handleGetCredits(c *gin.Context) {
	sellerId := c.Param("seller_id")

	balance, err := s.revenueSvc.GetCreditBalance(c.Request.Context(), sellerId)
	if err != nil {
		s.respondError(c, sellerId, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seller_id": sellerId, "balance": balance})
}

func (s *Server) handleGetCreditHistory(c *gin.Context) {
	sellerId := c.Param("seller_id")
	limit := parseIntQuery(c, "limit", 50)
	offset := parseIntQuery(c, "offset", 0)

	entries, err := s.revenueSvc.GetCreditHistory(c.Request.Context(), sellerId, limit, offset)
	if err != nil {
		s.respondError(c, sellerId, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seller_id": sellerId, "entries": entries})
}

func (s *Server) handleSpendCredits(c *gin.Context) {
	sellerId := c.Param("seller_id")

	var req spendCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	result, err := s.revenueSvc.SpendCredits(c.Request.Context(), sellerId, req.Amount, req.Reason)
	if err != nil {
		s.respondError(c, sellerId, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleRecordSale(c *gin.Context) {
	var req recordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	sale, err := s.revenueSvc.RecordSale(c.Request.Context(), store.RecordSaleParams{
		SellerId:            req.SellerId,
		BuyerId:             req.BuyerId,
		AssetId:             req.AssetId,
		Source:              req.Source,
		PurchaseAmountCents: req.PurchaseAmountCents,
	})
	if err != nil {
		s.respondError(c, req.SellerId, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

func (s *Server) respondError(c *gin.Context, sellerId string, err error) {
	if errors.Is(err, store.ErrSellerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": err.Error(),
		})
		return
	}

	zap.L().Error("Request failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("seller_id", sellerId),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"message": err.Error(),
	})
}

func parseIntQuery(c *gin.Context, key string, defaultValue int) int {
	if raw := c.Query(key); raw != "" {
		if value, err := strconv.Atoi(raw); err == nil && value >= 0 {
			return value
		}
	}
	return defaultValue
}
