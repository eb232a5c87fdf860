package api

import (
	"bitwise74/drive-api/model"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FileUpload stores the uploaded bytes through the storage backend and
// records the file and its ownership in one transaction. If the transaction
// fails the stored object is removed again so no orphaned bytes pile up
func (a *API) FileUpload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	if !strings.HasPrefix(c.Request.Header.Get("Content-Type"), "multipart/form-data") {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request",
			"requestID": requestID,
		})
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     "No file provided",
			"requestID": requestID,
		})
		return
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	f, err := fh.Open()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to open uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}
	defer f.Close()

	// Different users may upload files with the same name, so the object
	// lives under a generated key scoped to the owner
	storageKey := fmt.Sprintf("%d/%s%s", userID, uuid.NewString(), path.Ext(fh.Filename))

	if err := a.Storage.Save(c.Request.Context(), storageKey, f, fh.Size, contentType); err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to store uploaded file", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	file := model.File{
		Name:        fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		StorageKey:  storageKey,
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&file).Error; err != nil {
			return err
		}

		return tx.Create(&model.FileOwnership{
			UserID: userID,
			FileID: file.ID,
		}).Error
	})
	if err != nil {
		if delErr := a.Storage.Delete(c.Request.Context(), storageKey); delErr != nil {
			zap.L().Error("Failed to cleanup after failed upload", zap.Error(delErr), zap.String("requestID", requestID))
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to save file record to db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("File uploaded",
		zap.Uint("fileID", file.ID),
		zap.Uint("userID", userID),
		zap.Int64("size", fh.Size),
		zap.String("requestID", requestID))

	c.JSON(http.StatusCreated, file)
}
