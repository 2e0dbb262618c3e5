package controllers

import (
	"net/http"

	"bettrack/internal/services"
	"bettrack/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// callerID reads the caller identity placed in the context by the JWT
// middleware.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString("user_id"))
	if err != nil {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
		return uuid.Nil, false
	}
	return id, true
}

type UserController struct {
	accountService services.AccountServiceInterface
}

func NewUserController(accountService services.AccountServiceInterface) *UserController {
	return &UserController{
		accountService: accountService,
	}
}

// Info godoc
// @Summary Current user profile and usage
// @Tags User
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Security BearerAuth
// @Router /user/info [get]
func (u *UserController) Info(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	info, err := u.accountService.UserInfo(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, info, "User info fetched successfully")
}
