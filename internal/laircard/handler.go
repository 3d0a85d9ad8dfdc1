package laircard

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monstermaker/internal/auth"
	"monstermaker/pkg/models"
)

// Handler provides the lair card CRUD endpoints. Lair cards are always
// owner-private; there is no public listing.
type Handler struct {
	DB        *sql.DB
	UploadDir string
}

func (h *Handler) Create(c *gin.Context) {
	var lc models.LairCard
	if err := c.ShouldBindJSON(&lc); err != nil || lc.MonsterName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monster_name required"})
		return
	}
	lc.ID = uuid.NewString()
	lc.OwnerID = auth.ViewerID(c)
	if err := Create(h.DB, lc); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": lc.ID})
}

func (h *Handler) Get(c *gin.Context) {
	lc, err := GetByID(h.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lair card not found"})
		return
	}
	if lc.OwnerID != auth.ViewerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	c.JSON(http.StatusOK, lc)
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
	var lc models.LairCard
	if err := c.ShouldBindJSON(&lc); err != nil || lc.MonsterName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monster_name required"})
		return
	}
	h.respondMutation(c, Update(h.DB, c.Param("id"), auth.ViewerID(c), lc))
}

func (h *Handler) Delete(c *gin.Context) {
	lc, err := Delete(h.DB, c.Param("id"), auth.ViewerID(c))
	if err != nil {
		h.respondMutation(c, err)
		return
	}
	if h.UploadDir != "" && strings.HasPrefix(lc.BackImage, "/uploads/") {
		name := filepath.Base(strings.TrimPrefix(lc.BackImage, "/uploads/"))
		os.Remove(filepath.Join(h.UploadDir, name))
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) respondMutation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "lair card not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
