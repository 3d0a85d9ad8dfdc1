package monster

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monstermaker/internal/auth"
	"monstermaker/internal/like"
	"monstermaker/pkg/models"
)

// Handler provides the monster CRUD endpoints.
type Handler struct {
	DB *sql.DB
	// UploadDir is where image URLs under /uploads/ resolve; monster
	// deletion removes the files it referenced.
	UploadDir string
}

func (h *Handler) Create(c *gin.Context) {
	var m models.Monster
	if err := c.ShouldBindJSON(&m); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if m.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	m.ID = uuid.NewString()
	m.OwnerID = auth.ViewerID(c)

	if err := Create(h.DB, m); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": m.ID})
}

func (h *Handler) Get(c *gin.Context) {
	m, err := GetByID(h.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	}
	if !CanView(m, auth.ViewerID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	likes, _ := like.Count(h.DB, m.ID)
	c.JSON(http.StatusOK, gin.H{"monster": m, "likes": likes})
}

func (h *Handler) Search(c *gin.Context) {
	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	res, err := SearchPublic(h.DB, c.Query("q"), c.Query("size"), c.Query("type"), limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": res, "limit": limit, "offset": offset})
}

func (h *Handler) ListMine(c *gin.Context) {
	res, err := ListByOwner(h.DB, auth.ViewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": res})
}

func (h *Handler) Update(c *gin.Context) {
	var m models.Monster
	if err := c.ShouldBindJSON(&m); err != nil || m.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	err := Update(h.DB, c.Param("id"), auth.ViewerID(c), m)
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *Handler) Delete(c *gin.Context) {
	m, err := Delete(h.DB, c.Param("id"), auth.ViewerID(c))
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	h.removeImage(m.PortraitImage)
	h.removeImage(m.FullImage)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) removeImage(url string) {
	if h.UploadDir == "" || !strings.HasPrefix(url, "/uploads/") {
		return
	}
	name := filepath.Base(strings.TrimPrefix(url, "/uploads/"))
	os.Remove(filepath.Join(h.UploadDir, name))
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}
