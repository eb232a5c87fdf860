package api

import (
	"bitwise74/drive-api/model"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fetchOwnedFile resolves the :id route param and enforces the ownership
// rules shared by download and delete: unknown file is a 404, a file owned
// by someone else is a 403. A valid token proves identity, not permission
// over the resource, which is why the wrong-owner case isn't a 401.
// Returns false after writing the error response
func (a *API) fetchOwnedFile(c *gin.Context, userID uint) (*model.File, bool) {
	requestID := c.MustGet("requestID").(string)

	fileID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "File ID must be a number",
			"requestID": requestID,
		})
		return nil, false
	}

	var file model.File

	err = a.DB.
		Where("id = ?", fileID).
		First(&file).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
				"error":     "File not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if file exists", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	var owned bool

	err = a.DB.
		Model(model.FileOwnership{}).
		Select("count(*) > 0").
		Where("user_id = ? AND file_id = ?", userID, file.ID).
		Find(&owned).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check file ownership", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	if !owned {
		zap.L().Warn("Blocked access to foreign file",
			zap.Uint("fileID", file.ID),
			zap.Uint("userID", userID),
			zap.String("requestID", requestID))

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "You don't have permission to access this file",
			"requestID": requestID,
		})
		return nil, false
	}

	return &file, true
}
