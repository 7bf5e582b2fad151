package httpserver

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	menusvc "kitchen-orders/internal/service/menu"
	ordersvc "kitchen-orders/internal/service/order"
	pickupsvc "kitchen-orders/internal/service/pickup"
	pricingsvc "kitchen-orders/internal/service/pricing"
)

// Deps carries the services the router depends on.
type Deps struct {
	MenuSvc     *menusvc.Service
	PickupSvc   *pickupsvc.Service
	PricingSvc  *pricingsvc.Service
	OrderSvc    *ordersvc.Service
	AdminAPIKey string
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Admin-Key")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	menu := api.Group("/menu")
	menu.GET("/menus", listMenusHandler(deps.MenuSvc))
	menu.GET("/:menuID/tree", menuTreeHandler(deps.MenuSvc))
	menu.GET("/categories/:categoryID/items", itemsByCategoryHandler(deps.MenuSvc))
	menu.GET("/items/:itemID", itemHandler(deps.MenuSvc))
	menu.GET("/items/:itemID/addons", itemAddonsHandler(deps.MenuSvc))

	api.GET("/pickup/slots", pickupSlotsHandler(deps.PickupSvc))

	orders := api.Group("/orders")
	orders.POST("/quote", quoteHandler(deps.PickupSvc, deps.PricingSvc))
	orders.POST("", createOrderHandler(deps.OrderSvc))
	orders.GET("/:orderCode", lookupOrderHandler(deps.OrderSvc))

	admin := api.Group("/admin", adminKeyMiddleware(deps.AdminAPIKey))
	admin.GET("/orders", adminListOrdersHandler(deps.OrderSvc))
	admin.GET("/orders/:id", adminOrderDetailsHandler(deps.OrderSvc))
	admin.PUT("/orders/:id/status/:status", adminUpdateStatusHandler(deps.OrderSvc))
	admin.PUT("/orders/:id/payment/:status", adminUpdatePaymentHandler(deps.OrderSvc))

	return router
}

// adminKeyMiddleware guards admin routes with a static X-Admin-Key header.
// With no key configured the admin surface is disabled outright.
func adminKeyMiddleware(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "admin api disabled"})
			return
		}
		provided := c.GetHeader("X-Admin-Key")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			return
		}
		c.Next()
	}
}
