package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/application/chargeservice"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain"
	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/internal/domain/models"
)

type ChargeHandler struct {
	chargeService chargeservice.IChargeService
	logger        zerolog.Logger
}

func NewChargeHandler(chargeService chargeservice.IChargeService, logger zerolog.Logger) *ChargeHandler {
	return &ChargeHandler{
		chargeService: chargeService,
		logger:        logger.With().Str("component", "charge_handler").Logger(),
	}
}

func (h *ChargeHandler) CreateCharge(c *gin.Context) {
	var req models.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": err.Error(),
		})
		return
	}

	result, err := h.chargeService.CreateCharge(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "Unprocessable Entity",
				"message": err.Error(),
			})
			return
		}

		h.logger.Error().Err(err).Msg("Charge creation failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Bad Gateway",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *ChargeHandler) GetCharge(c *gin.Context) {
	txid := c.Param("txid")
	if txid == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Bad Request",
			"message": "txid is required",
		})
		return
	}

	result, err := h.chargeService.GetCharge(c.Request.Context(), txid)
	if err != nil {
		h.logger.Error().Err(err).Str("txid", txid).Msg("Charge lookup failed")
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Bad Gateway",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetChargeStatus is the polling endpoint. Its response shape and its 500
// on failure are part of the contract consumers poll against.
func (h *ChargeHandler) GetChargeStatus(c *gin.Context) {
	txid := c.Param("txid")

	result, err := h.chargeService.GetChargeStatus(c.Request.Context(), txid)
	if err != nil {
		h.logger.Error().Err(err).Str("txid", txid).Msg("Charge status check failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  result.Status,
		"data":    result.Charge,
	})
}
