package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Royal-Thai-Navy-RTC/back-end-sub000/internal/domain"
)

// DomainInfo describes an import pipeline to clients.
type DomainInfo struct {
	Name         string            `json:"name"`
	Title        string            `json:"title"`
	SheetName    string            `json:"sheetName"`
	SheetAliases []string          `json:"sheetAliases"`
	Required     []string          `json:"required"`
	Scores       map[string]string `json:"scores"` // role -> column
	Table        string            `json:"table"`
}

func describe(d domain.Domain) DomainInfo {
	scores := make(map[string]string, len(d.Scores))
	for _, s := range d.Scores {
		scores[s.Role.String()] = s.Column
	}
	return DomainInfo{
		Name:         d.Name,
		Title:        d.Title,
		SheetName:    d.SheetName,
		SheetAliases: d.SheetAliases,
		Required:     domain.RoleNames(d.Required),
		Scores:       scores,
		Table:        d.Table,
	}
}

// ListDomains GET /api/domains
func (h *Handler) ListDomains(c *gin.Context) {
	out := make([]DomainInfo, 0)
	for _, name := range h.domains.Names() {
		d, _ := h.domains.Lookup(name)
		out = append(out, describe(d))
	}
	c.JSON(http.StatusOK, out)
}

// GetDomain GET /api/domains/:domain
func (h *Handler) GetDomain(c *gin.Context) {
	d, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, describe(d))
}

func (h *Handler) lookup(c *gin.Context) (domain.Domain, bool) {
	d, ok := h.domains.Lookup(c.Param("domain"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown domain " + c.Param("domain")})
	}
	return d, ok
}
