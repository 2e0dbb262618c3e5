package controllers

import (
	"net/http"

	"bettrack/internal/infra"
	"bettrack/internal/models/request_models"
	"bettrack/internal/services"
	"bettrack/pkg/utils"

	"github.com/gin-gonic/gin"
)

const oauthState = "bet-tracker-pro"

type AuthController struct {
	accountService services.AccountServiceInterface
	extensionURL   string
}

func NewAuthController(accountService services.AccountServiceInterface, cfg *infra.Config) *AuthController {
	return &AuthController{
		accountService: accountService,
		extensionURL:   cfg.ExtensionURL,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new email/password account on the free plan
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Registration payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /auth/register [post]
func (a *AuthController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email and password required")
		return
	}

	user, err := a.accountService.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, user, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate with email/password and return a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /auth/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email and password required")
		return
	}

	result, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, result, "Login successful")
}

// GoogleLogin sends the browser to the Google consent screen.
func (a *AuthController) GoogleLogin(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, a.accountService.GoogleAuthURL(oauthState))
}

// GoogleCallback finishes the OAuth dance. On success the browser is
// sent back to the extension with the session token in the query;
// without a configured extension URL the token is returned as JSON.
func (a *AuthController) GoogleCallback(c *gin.Context) {
	if errParam := c.Query("error"); errParam != "" {
		a.redirectOrError(c, "access_denied")
		return
	}

	if c.Query("state") != oauthState {
		a.redirectOrError(c, "invalid_state")
		return
	}

	code := c.Query("code")
	if code == "" {
		utils.RespondError(c, http.StatusBadRequest, "Authorization code not provided")
		return
	}

	result, err := a.accountService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		a.redirectOrError(c, "server_error")
		return
	}

	if a.extensionURL != "" {
		c.Redirect(http.StatusFound, a.extensionURL+"/auth-success.html?token="+result.Token)
		return
	}
	utils.RespondSuccess(c, result, "Authentication successful")
}

func (a *AuthController) redirectOrError(c *gin.Context, reason string) {
	if a.extensionURL != "" {
		c.Redirect(http.StatusFound, a.extensionURL+"/auth-success.html?error="+reason)
		return
	}
	utils.RespondError(c, http.StatusUnauthorized, "Authentication failed")
}
