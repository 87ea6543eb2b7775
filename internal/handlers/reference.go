package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/zoinkies/pkg/catalog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ReferenceView is a reference item as served to clients.
type ReferenceView struct {
	catalog.ReferenceItem
	DisplayName string `json:"display_name"`
}

type ReferencesResponse struct {
	References []ReferenceView `json:"references"`
}

// CatalogProvider yields the loaded reference catalog.
type CatalogProvider interface {
	Catalog() (*catalog.Catalog, error)
}

type ReferenceHandler struct {
	refs   CatalogProvider
	logger *slog.Logger
}

func NewReferenceHandler(refs CatalogProvider, logger *slog.Logger) *ReferenceHandler {
	return &ReferenceHandler{refs: refs, logger: logger}
}

// ServeHTTP handles GET /v1/references
func (h *ReferenceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, h.logger, http.StatusMethodNotAllowed, ErrorResponse{Error: "Method not allowed"})
		return
	}
	c, err := h.refs.Catalog()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	// Casers keep state and are not safe for concurrent use.
	caser := cases.Title(language.English)
	items := c.Items()
	resp := ReferencesResponse{References: make([]ReferenceView, 0, len(items))}
	for _, ri := range items {
		resp.References = append(resp.References, ReferenceView{
			ReferenceItem: ri,
			DisplayName:   displayName(caser, ri),
		})
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// displayName prefers the catalog name and falls back to a title-cased id.
func displayName(caser cases.Caser, ri catalog.ReferenceItem) string {
	if ri.Name != "" {
		return ri.Name
	}
	return caser.String(strings.ReplaceAll(ri.ID, "_", " "))
}
