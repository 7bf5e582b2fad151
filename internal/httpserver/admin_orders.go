package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kitchen-orders/internal/domain"
	orderrepo "kitchen-orders/internal/repository/order"
	ordersvc "kitchen-orders/internal/service/order"
)

// adminListOrdersHandler lists orders newest first with optional
// status/paymentStatus filters and limit/offset paging.
func adminListOrdersHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

		orders, err := svc.List(c.Request.Context(), orderrepo.ListFilter{
			Status:        c.Query("status"),
			PaymentStatus: c.Query("paymentStatus"),
			Limit:         limit,
			Offset:        offset,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func adminOrderDetailsHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		order, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func adminUpdateStatusHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		order, err := svc.UpdateStatus(c.Request.Context(), id, c.Param("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func adminUpdatePaymentHandler(svc *ordersvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if !ok {
			return
		}
		order, err := svc.UpdatePaymentStatus(c.Request.Context(), id, c.Param("status"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}
