package pdf

import (
	"database/sql"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"monstermaker/internal/auth"
	"monstermaker/internal/monster"
)

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeFilename replaces every character outside [A-Za-z0-9_-] with an
// underscore, one for one. Sanitizing twice is a no-op.
func SanitizeFilename(name string) string {
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}

// Handler orchestrates the PDF download: authorize, build the internal
// print URL, call the bridge, stream the bytes. Every request is stateless;
// nothing is retried.
type Handler struct {
	DB     *sql.DB
	Bridge *Client
	// InternalBaseURL addresses this service as seen from the rendering
	// microservice, not from the public internet.
	InternalBaseURL string
	Logger          *zap.Logger
}

func (h *Handler) Download(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monster id required"})
		return
	}

	m, err := monster.GetByID(h.DB, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
		return
	}
	if !monster.CanView(m, auth.ViewerID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}

	printURL := strings.TrimRight(h.InternalBaseURL, "/") + "/print/monsters/" + id
	data, err := h.Bridge.Render(c.Request.Context(), printURL, DefaultOptions())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Error("pdf render failed", zap.String("monster_id", id), zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := "MonsterMaker_" + SanitizeFilename(m.Name) + ".pdf"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Data(http.StatusOK, "application/pdf", data)
}
