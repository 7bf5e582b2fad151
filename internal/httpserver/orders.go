package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"kitchen-orders/internal/domain"
	ordersvc "kitchen-orders/internal/service/order"
	pickupsvc "kitchen-orders/internal/service/pickup"
	pricingsvc "kitchen-orders/internal/service/pricing"
)

type cartAddonRequest struct {
	AddonID int64 `json:"addonId"`
}

type cartItemRequest struct {
	ItemID     int64              `json:"itemId"`
	MenuItemID int64              `json:"menuItemId"`
	Quantity   int                `json:"quantity"`
	Addons     []cartAddonRequest `json:"addons"`
}

type createOrderRequest struct {
	CustomerName  string             `json:"customerName"`
	CustomerEmail string             `json:"customerEmail"`
	CustomerPhone string             `json:"customerPhone"`
	Notes         string             `json:"notes"`
	PickupDay     *int               `json:"pickupDay"`
	PickupSlotID  *int64             `json:"pickupSlotId"`
	PickupAt      *time.Time         `json:"pickupAt"`
	Items         []cartItemRequest  `json:"items"`
}

func (r createOrderRequest) cartLines() []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(r.Items))
	for _, it := range r.Items {
		// older clients send menuItemId instead of itemId
		itemID := it.ItemID
		if itemID == 0 {
			itemID = it.MenuItemID
		}
		line := domain.CartLine{ItemID: itemID, Quantity: it.Quantity}
		for _, a := range it.Addons {
			line.AddonIDs = append(line.AddonIDs, a.AddonID)
		}
		lines = append(lines, line)
	}
	return lines
}

// quoteHandler validates pickup and prices the cart without persisting
// anything.
func quoteHandler(pickup *pickupsvc.Service, pricing *pricingsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		ctx := c.Request.Context()
		if err := pickup.Validate(ctx, req.PickupDay, req.PickupSlotID, req.PickupAt); err != nil {
			respondError(c, err)
			return
		}
		quote, err := pricing.Cart(ctx, req.cartLines())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, quote)
	}
}

func createOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.CustomerPhone) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "customerName and customerPhone are required"})
			return
		}
		if len(req.Items) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "at least one cart item is required"})
			return
		}

		order, err := svc.Create(c.Request.Context(), ordersvc.CreateInput{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			Notes:         req.Notes,
			PickupDay:     req.PickupDay,
			PickupSlotID:  req.PickupSlotID,
			PickupAt:      req.PickupAt,
			Lines:         req.cartLines(),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// lookupOrderHandler serves customer self-serve lookup by order code + phone.
func lookupOrderHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("orderCode")
		phone := c.Query("phone")
		if strings.TrimSpace(phone) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "phone query parameter is required"})
			return
		}
		order, err := svc.FindByCodeAndPhone(c.Request.Context(), code, phone)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
