package like

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"monstermaker/internal/auth"
)

// Handler provides the like-toggle endpoint consumed by the browser AJAX
// layer.
type Handler struct {
	DB *sql.DB
}

func (h *Handler) Toggle(c *gin.Context) {
	status, count, err := Toggle(h.DB, auth.ViewerID(c), c.Param("id"))
	if errors.Is(err, ErrMonsterNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status, "likes": count})
}
