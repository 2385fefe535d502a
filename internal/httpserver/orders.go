package httpserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type createOrderRequest struct {
	PaymentMethod string `json:"metodoPago" binding:"required"`
}

func createOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		order, err := svc.Create(c.Request.Context(), currentUser(c).ID, req.PaymentMethod)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusCreated, gin.H{"message": "order created", "order": order})
	}
}

func myOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListMine(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"count": len(orders), "orders": orders})
	}
}

func vendorSalesHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		from, err := parseDateParam(c.Query("from"))
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid from date, expected YYYY-MM-DD")
			return
		}
		to, err := parseDateParam(c.Query("to"))
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid to date, expected YYYY-MM-DD")
			return
		}

		report, err := svc.VendorSales(c.Request.Context(), currentUser(c).ID, from, to)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"report": report})
	}
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
