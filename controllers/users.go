package controllers

import (
	"net/http"

	"github.com/BerniceZTT/crm_api/middleware"
	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/service"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

const refreshCookie = "refreshToken"

// UserController serves registration, sessions and account management.
type UserController struct {
	users        *service.UserService
	tokens       *utils.TokenService
	secureCookie bool
}

func NewUserController(users *service.UserService, tokens *utils.TokenService, secureCookie bool) *UserController {
	return &UserController{users: users, tokens: tokens, secureCookie: secureCookie}
}

func (uc *UserController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := uc.users.Register(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, result, "User registered successfully", http.StatusCreated)
}

// Create lets an admin add a user with any role.
func (uc *UserController) Create(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := uc.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, result, "User created successfully", http.StatusCreated)
}

// Login returns both tokens and also sets them as http-only cookies.
func (uc *UserController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := uc.users.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	uc.setCookie(c, middleware.TokenCookie, resp.AccessToken, int(uc.tokens.AccessTTL().Seconds()))
	uc.setCookie(c, refreshCookie, resp.RefreshToken, int(uc.tokens.RefreshTTL().Seconds()))
	utils.SuccessResponse(c, resp, "Login successful")
}

// RefreshToken reads the refresh token from the body, falling back to the cookie.
func (uc *UserController) RefreshToken(c *gin.Context) {
	var req models.RefreshTokenRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	if req.RefreshToken == "" {
		req.RefreshToken, _ = c.Cookie(refreshCookie)
	}

	resp, err := uc.users.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	uc.setCookie(c, middleware.TokenCookie, resp.AccessToken, int(uc.tokens.AccessTTL().Seconds()))
	utils.SuccessResponse(c, resp, "Token refreshed")
}

func (uc *UserController) Logout(c *gin.Context) {
	uc.setCookie(c, middleware.TokenCookie, "", -1)
	uc.setCookie(c, refreshCookie, "", -1)
	utils.SuccessResponse(c, nil, "Logged out")
}

func (uc *UserController) Profile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, err := uc.users.Profile(c.Request.Context(), user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, profile, "")
}

func (uc *UserController) ProfileByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	profile, err := uc.users.Profile(c.Request.Context(), id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, profile, "")
}

type userQuery struct {
	Role models.UserRole `form:"role" binding:"omitempty,oneof=ADMIN SALES_MANAGER SALES_REP SUPPORT MARKETING"`
}

func (uc *UserController) List(c *gin.Context) {
	page, ok := pageParams(c)
	if !ok {
		return
	}
	var q userQuery
	if !bindQuery(c, &q) {
		return
	}

	result, err := uc.users.List(c.Request.Context(), models.UserFilter{Role: q.Role}, page)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.PaginatedResponse(c, result)
}

// Remove deletes the caller's own account.
func (uc *UserController) Remove(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := uc.users.Remove(c.Request.Context(), user, id); err != nil {
		utils.HandleError(c, err)
		return
	}
	uc.setCookie(c, middleware.TokenCookie, "", -1)
	uc.setCookie(c, refreshCookie, "", -1)
	utils.SuccessResponse(c, gin.H{"id": id}, "User removed")
}

func (uc *UserController) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetRequest
	if !bindJSON(c, &req) {
		return
	}

	notification, err := uc.users.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	message := "Password reset email sent"
	if notification.Status != service.DeliverySent {
		message = "Password reset token created but the email could not be sent"
	}
	utils.SuccessResponse(c, gin.H{"notification": notification}, message)
}

func (uc *UserController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	notification, err := uc.users.ResetPassword(c.Request.Context(), req)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"notification": notification}, "Password has been reset")
}

func (uc *UserController) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", uc.secureCookie, true)
}
