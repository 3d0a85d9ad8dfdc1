package printview

import (
	"bytes"
	"database/sql"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"monstermaker/internal/auth"
	"monstermaker/internal/monster"
	"monstermaker/internal/statblock"
	"monstermaker/pkg/models"
)

// Handler serves the print-only card page. The route is fetched
// service-to-service by the PDF renderer and is also reachable by a logged-in
// browser for manual inspection, so errors here are HTML pages, not JSON.
type Handler struct {
	DB *sql.DB
}

// cardData is the template context for both card layouts.
type cardData struct {
	Monster   models.Monster
	Abilities []statblock.Ability
	Skills    []string
	Senses    []string
	Languages []string
	XP        int
	HasXP     bool
}

// derive builds the template context from a stored monster.
func derive(m models.Monster) cardData {
	xp, ok := statblock.XPForCR(m.ChallengeRating)
	return cardData{
		Monster: m,
		Abilities: []statblock.Ability{
			statblock.DeriveAbility("STR", m.Strength, m.ProficiencyBonus, m.SavingThrows),
			statblock.DeriveAbility("DEX", m.Dexterity, m.ProficiencyBonus, m.SavingThrows),
			statblock.DeriveAbility("CON", m.Constitution, m.ProficiencyBonus, m.SavingThrows),
			statblock.DeriveAbility("INT", m.Intelligence, m.ProficiencyBonus, m.SavingThrows),
			statblock.DeriveAbility("WIS", m.Wisdom, m.ProficiencyBonus, m.SavingThrows),
			statblock.DeriveAbility("CHA", m.Charisma, m.ProficiencyBonus, m.SavingThrows),
		},
		Skills:    statblock.SplitList(m.Skills),
		Senses:    statblock.SplitList(m.Senses),
		Languages: statblock.SplitList(m.Languages),
		XP:        xp,
		HasXP:     ok,
	}
}

func (h *Handler) Show(c *gin.Context) {
	m, err := monster.GetByID(h.DB, c.Param("id"))
	if err != nil {
		errorPage(c, http.StatusNotFound, "Monster not found")
		return
	}
	if !monster.CanView(m, auth.ViewerID(c)) {
		errorPage(c, http.StatusForbidden, "Access denied")
		return
	}

	name := statblock.Layout(m.CardSize, m.IsLegendary) + ".html"
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, derive(m)); err != nil {
		errorPage(c, http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func errorPage(c *gin.Context, status int, msg string) {
	body := fmt.Sprintf(
		`<!doctype html><html><head><title>%d</title></head><body><h1>%s</h1></body></html>`,
		status, template.HTMLEscapeString(msg),
	)
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}
