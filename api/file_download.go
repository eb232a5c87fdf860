package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileDownload streams a file owned by the authenticated user with its
// original name and content type
func (a *API) FileDownload(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(uint)

	file, ok := a.fetchOwnedFile(c, userID)
	if !ok {
		return
	}

	r, err := a.Storage.Open(c.Request.Context(), file.StorageKey)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{
			"error":     "File not found in storage",
			"requestID": requestID,
		})

		zap.L().Error("File record exists but bytes are missing",
			zap.Uint("fileID", file.ID),
			zap.Error(err),
			zap.String("requestID", requestID))
		return
	}
	defer r.Close()

	c.DataFromReader(http.StatusOK, file.Size, file.ContentType, r, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", file.Name),
	})
}
