package upload

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler provides the image upload endpoint. Stored files are served
// statically under /uploads/.
type Handler struct {
	Dir         string
	MaxUploadMB int64
}

func (h *Handler) Upload(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file required"})
		return
	}

	name, err := Save(h.Dir, fh, h.MaxUploadMB*1024*1024)
	switch {
	case errors.Is(err, ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file exceeds %d MB limit", h.MaxUploadMB)})
		return
	case errors.Is(err, ErrBadType):
		c.JSON(http.StatusBadRequest, gin.H{"error": "only png, jpeg and webp images are accepted"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "url": "/uploads/" + name})
}
