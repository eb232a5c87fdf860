package api

import (
	"bitwise74/drive-api/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

// AuthRefresh rotates a refresh token: the presented one is consumed and a
// brand new pair is returned. Replaying the consumed token afterwards fails
func (a *API) AuthRefresh(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data refreshBody
	if err := c.ShouldBind(&data); err != nil || data.RefreshToken == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No refresh token provided",
			"requestID": requestID,
		})
		return
	}

	newRefreshToken := a.Tokens.IssueRefreshToken()

	userID, err := a.Sessions.Rotate(data.RefreshToken, newRefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrSessionInvalid) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Invalid or expired refresh token",
				"requestID": requestID,
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to rotate refresh session", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	accessToken, err := a.Tokens.IssueAccessToken(userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to sign access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Debug("Tokens refreshed", zap.Uint("userID", userID), zap.String("requestID", requestID))

	c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		TokenType:    "bearer",
		ExpiresIn:    a.Tokens.AccessTTLSeconds(),
	})
}
