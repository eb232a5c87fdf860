package api

import (
	"bitwise74/drive-api/model"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type loginBody struct {
	UserName string `json:"userName"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthLogin checks the credentials and hands out a token pair. An unknown
// username and a wrong password produce the exact same response so the
// endpoint can't be used to probe which usernames exist
func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if data.UserName == "" || data.Password == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Username and password fields can't be empty",
			"requestID": requestID,
		})
		return
	}

	var user model.User

	if err := a.DB.Where("user_name = ?", data.UserName).First(&user).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		zap.L().Debug("Login failed, unknown username", zap.String("requestID", requestID))

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid username or password",
			"requestID": requestID,
		})
		return
	}

	if !a.Argon.VerifyPassword(data.Password, user.PasswordHash) {
		zap.L().Debug("Login failed, wrong password", zap.Uint("userID", user.ID), zap.String("requestID", requestID))

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":     "Invalid username or password",
			"requestID": requestID,
		})
		return
	}

	accessToken, err := a.Tokens.IssueAccessToken(user.ID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to sign access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	refreshToken := a.Tokens.IssueRefreshToken()

	if err := a.Sessions.Create(user.ID, refreshToken); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to persist refresh session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("User logged in", zap.Uint("userID", user.ID), zap.String("requestID", requestID))

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    a.Tokens.AccessTTLSeconds(),
	})
}
