package collection

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"monstermaker/internal/auth"
	"monstermaker/internal/monster"
	"monstermaker/pkg/models"
)

// Handler provides the collection and membership endpoints.
type Handler struct {
	DB *sql.DB
}

func (h *Handler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	id := uuid.NewString()
	err := Create(h.DB, id, auth.ViewerID(c), req.Name, req.Description)
	if errors.Is(err, ErrNameTaken) {
		c.JSON(http.StatusConflict, gin.H{"error": "collection name already in use"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

func (h *Handler) List(c *gin.Context) {
	res, err := ListByOwner(h.DB, auth.ViewerID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": res})
}

func (h *Handler) Get(c *gin.Context) {
	col, err := GetByID(h.DB, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
		return
	}
	if col.OwnerID != auth.ViewerID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return
	}
	monsters, err := h.memberMonsters(col.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"collection": col, "monsters": monsters})
}

func (h *Handler) Update(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
		return
	}
	err := Rename(h.DB, c.Param("id"), auth.ViewerID(c), req.Name, req.Description)
	h.respondMutation(c, err)
}

func (h *Handler) Delete(c *gin.Context) {
	err := Delete(h.DB, c.Param("id"), auth.ViewerID(c))
	if errors.Is(err, ErrDefaultCollection) {
		c.JSON(http.StatusForbidden, gin.H{"error": "default collection cannot be deleted"})
		return
	}
	h.respondMutation(c, err)
}

func (h *Handler) AddMonster(c *gin.Context) {
	var req struct {
		MonsterID string `json:"monster_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.MonsterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "monster_id required"})
		return
	}
	err := AddMonster(h.DB, c.Param("id"), req.MonsterID, auth.ViewerID(c))
	switch {
	case errors.Is(err, ErrAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "monster already in collection"})
	case errors.Is(err, ErrMonsterNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Monster not found"})
	case errors.Is(err, ErrMonsterNotVisible):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	default:
		h.respondMutation(c, err)
	}
}

func (h *Handler) RemoveMonster(c *gin.Context) {
	err := RemoveMonster(h.DB, c.Param("id"), c.Param("monsterID"), auth.ViewerID(c))
	if errors.Is(err, ErrMonsterNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "monster not in collection"})
		return
	}
	h.respondMutation(c, err)
}

func (h *Handler) GenerateShare(c *gin.Context) {
	token, err := GenerateShareToken(h.DB, c.Param("id"), auth.ViewerID(c))
	if err != nil {
		h.respondMutation(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "share_token": token})
}

func (h *Handler) RevokeShare(c *gin.Context) {
	h.respondMutation(c, RevokeShareToken(h.DB, c.Param("id"), auth.ViewerID(c)))
}

// Shared is the unauthenticated share-token view. The token grants read
// access to the collection and all of its monsters, private ones included.
func (h *Handler) Shared(c *gin.Context) {
	col, err := GetByShareToken(h.DB, c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
		return
	}
	monsters, err := h.memberMonsters(col.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
		return
	}
	col.ShareToken = "" // the token itself is not echoed back
	c.JSON(http.StatusOK, gin.H{"collection": col, "monsters": monsters})
}

func (h *Handler) memberMonsters(collectionID string) ([]models.Monster, error) {
	ids, err := MemberIDs(h.DB, collectionID)
	if err != nil {
		return nil, err
	}
	monsters := make([]models.Monster, 0, len(ids))
	for _, id := range ids {
		m, err := monster.GetByID(h.DB, id)
		if errors.Is(err, monster.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		monsters = append(monsters, m)
	}
	return monsters, nil
}

func (h *Handler) respondMutation(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "collection not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case errors.Is(err, ErrNameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "collection name already in use"})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
