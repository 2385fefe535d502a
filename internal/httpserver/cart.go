package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type cartItemRequest struct {
	GameID   string `json:"gameId" binding:"required"`
	Quantity int    `json:"quantity"`
}

func getCartHandler(svc cartService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Get(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"cart": render.cart(cart)})
	}
}

func addToCartHandler(svc cartService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if uuid.Validate(req.GameID) != nil {
			fail(c, http.StatusBadRequest, "invalid game id")
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		cart, err := svc.Add(c.Request.Context(), currentUser(c).ID, req.GameID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "item added to cart", "cart": render.cart(cart)})
	}
}

func updateCartHandler(svc cartService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if uuid.Validate(req.GameID) != nil {
			fail(c, http.StatusBadRequest, "invalid game id")
			return
		}

		cart, err := svc.UpdateItem(c.Request.Context(), currentUser(c).ID, req.GameID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "cart updated", "cart": render.cart(cart)})
	}
}

func removeFromCartHandler(svc cartService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			GameID string `json:"gameId" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if uuid.Validate(req.GameID) != nil {
			fail(c, http.StatusBadRequest, "invalid game id")
			return
		}

		cart, err := svc.Remove(c.Request.Context(), currentUser(c).ID, req.GameID)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "item removed from cart", "cart": render.cart(cart)})
	}
}

func clearCartHandler(svc cartService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart, err := svc.Clear(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "cart cleared", "cart": render.cart(cart)})
	}
}
