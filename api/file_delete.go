package api

import (
	"bitwise74/drive-api/model"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileDelete removes a file owned by the authenticated user. The ownership
// row and the file row go away in one transaction so a failure can't leave
// an orphaned association behind
func (a *API) FileDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	file, ok := a.fetchOwnedFile(c, userID)
	if !ok {
		return
	}

	if err := a.Storage.Delete(c.Request.Context(), file.StorageKey); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file from storage", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("file_id = ?", file.ID).
			Delete(&model.FileOwnership{}).
			Error; err != nil {
			return err
		}

		return tx.Delete(&model.File{}, file.ID).Error
	})
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete file records", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("File deleted",
		zap.Uint("fileID", file.ID),
		zap.Uint("userID", userID),
		zap.String("requestID", requestID))

	c.JSON(http.StatusOK, gin.H{
		"message": "File deleted successfully",
	})
}
