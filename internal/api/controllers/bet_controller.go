package controllers

import (
	"net/http"
	"strconv"

	"bettrack/internal/models/request_models"
	"bettrack/internal/services"
	"bettrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BetController struct {
	betService services.BetServiceInterface
}

func NewBetController(betService services.BetServiceInterface) *BetController {
	return &BetController{
		betService: betService,
	}
}

// ProcessBet godoc
// @Summary Extract a bet slip from a screenshot
// @Description Runs the vision extraction pipeline and stores the result
// @Tags Bets
// @Accept json
// @Produce json
// @Param request body request_models.ProcessBetRequest true "Slip image payload"
// @Success 200 {object} utils.APIResponse
// @Failure 402 {object} utils.APIResponse
// @Security BearerAuth
// @Router /process-bet [post]
func (b *BetController) ProcessBet(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.ProcessBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Image data required")
		return
	}

	result, err := b.betService.ProcessBet(c.Request.Context(), userID, req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Bet slip processed successfully")
}

func (b *BetController) History(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	// Oversized limits are clamped, not rejected.
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size")
		return
	}
	if limit > 100 {
		limit = 100
	}

	history, err := b.betService.History(c.Request.Context(), userID, page, limit)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, history, "History fetched successfully")
}
