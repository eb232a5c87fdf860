package api

import (
	"bitwise74/drive-api/model"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileList returns the files owned by the authenticated user, newest first,
// with pagination
func (a *API) FileList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Page must be a positive integer",
			"requestID": requestID,
		})
		return
	}

	pageSizeStr := c.DefaultQuery("page_size", "10")
	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Page size must be a positive integer",
			"requestID": requestID,
		})
		return
	}

	if pageSize > 100 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Page size can't be bigger than 100",
			"requestID": requestID,
		})
		return
	}

	var total int64

	err = a.DB.
		Model(model.FileOwnership{}).
		Where("user_id = ?", userID).
		Count(&total).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to count user files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	var entries []model.File

	err = a.DB.
		Joins("JOIN file_ownerships ON file_ownerships.file_id = files.id").
		Where("file_ownerships.user_id = ?", userID).
		Order("files.created_at desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).
		Error
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to lookup user files", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"files":     entries,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
