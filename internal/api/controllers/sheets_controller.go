package controllers

import (
	"net/http"

	"bettrack/internal/models/request_models"
	"bettrack/internal/services"
	"bettrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

type SheetsController struct {
	sheetsService services.SheetsServiceInterface
}

func NewSheetsController(sheetsService services.SheetsServiceInterface) *SheetsController {
	return &SheetsController{
		sheetsService: sheetsService,
	}
}

func (s *SheetsController) Status(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	status, err := s.sheetsService.Status(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Sheets status fetched successfully")
}

// CreateTemplate links the user to a spreadsheet, creating the tracking
// template on first call. Calling it again returns the existing link.
func (s *SheetsController) CreateTemplate(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	link, err := s.sheetsService.EnsureLinked(c.Request.Context(), userID)
	if err != nil {
		s.handleSheetsError(c, err)
		return
	}

	utils.RespondSuccess(c, link, "Bet tracking template ready")
}

func (s *SheetsController) SyncBet(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req request_models.SyncBetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Bet data required")
		return
	}

	if err := s.sheetsService.SyncBet(c.Request.Context(), userID, req.BetData); err != nil {
		s.handleSheetsError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Bet synced to Google Sheets successfully")
}

func (s *SheetsController) Disconnect(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := s.sheetsService.Unlink(c.Request.Context(), userID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Disconnected from Google Sheets")
}

// handleSheetsError adds the reconnect/permission hints the generic
// mapper does not know about.
func (s *SheetsController) handleSheetsError(c *gin.Context, err error) {
	switch err {
	case utils.ErrSheetsAuthExpired:
		utils.RespondError(c, http.StatusUnauthorized, "Google authorization expired. Please reconnect your account.")
	case utils.ErrSheetsPermissionDenied:
		utils.RespondError(c, http.StatusForbidden, "Spreadsheet permission denied. Check the sheet's sharing settings.")
	default:
		utils.HandleServiceError(c, err)
	}
}
