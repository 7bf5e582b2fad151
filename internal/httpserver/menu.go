package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kitchen-orders/internal/domain"
	menusvc "kitchen-orders/internal/service/menu"
)

type menuTreeResponse struct {
	ID          int64                  `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Active      bool                   `json:"active"`
	Categories  []categoryTreeResponse `json:"categories"`
}

type categoryTreeResponse struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	DisplayOrder int               `json:"displayOrder"`
	Active       bool              `json:"active"`
	Items        []domain.MenuItem `json:"items"`
}

func listMenusHandler(svc *menusvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		menus, err := svc.Menus(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		if menus == nil {
			menus = []domain.Menu{}
		}
		c.JSON(http.StatusOK, menus)
	}
}

func menuTreeHandler(svc *menusvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		menuID, ok := pathID(c, "menuID")
		if !ok {
			return
		}
		tree, err := svc.MenuTree(c.Request.Context(), menuID)
		if err != nil {
			respondError(c, err)
			return
		}

		resp := menuTreeResponse{
			ID:          tree.Menu.ID,
			Name:        tree.Menu.Name,
			Description: tree.Menu.Description,
			Active:      tree.Menu.Active,
			Categories:  []categoryTreeResponse{},
		}
		for _, ct := range tree.Categories {
			items := ct.Items
			if items == nil {
				items = []domain.MenuItem{}
			}
			resp.Categories = append(resp.Categories, categoryTreeResponse{
				ID:           ct.Category.ID,
				Name:         ct.Category.Name,
				Description:  ct.Category.Description,
				DisplayOrder: ct.Category.DisplayOrder,
				Active:       ct.Category.Active,
				Items:        items,
			})
		}
		c.JSON(http.StatusOK, resp)
	}
}

func itemsByCategoryHandler(svc *menusvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID, ok := pathID(c, "categoryID")
		if !ok {
			return
		}
		items, err := svc.ItemsByCategory(c.Request.Context(), categoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		if items == nil {
			items = []domain.MenuItem{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func itemHandler(svc *menusvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := pathID(c, "itemID")
		if !ok {
			return
		}
		item, err := svc.Item(c.Request.Context(), itemID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func itemAddonsHandler(svc *menusvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID, ok := pathID(c, "itemID")
		if !ok {
			return
		}
		addons, err := svc.AddonsForItem(c.Request.Context(), itemID)
		if err != nil {
			respondError(c, err)
			return
		}
		if addons == nil {
			addons = []domain.Addon{}
		}
		c.JSON(http.StatusOK, addons)
	}
}

// pathID parses a positive int64 path parameter, replying 400 on garbage.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
