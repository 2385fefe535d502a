package httpserver

import (
	"net/http"

	"gamestore-api/internal/service/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createGameRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"priceCents"`
	Quantity    int      `json:"quantity"`
	PlatformID  string   `json:"platformId"`
	CategoryID  string   `json:"categoryId"`
	CompanyID   string   `json:"companyId"`
	Images      []string `json:"images"`
}

func listGamesHandler(svc catalogService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		games, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"count": len(games), "games": render.games(games)})
	}
}

func getGameHandler(svc catalogService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			fail(c, http.StatusBadRequest, "invalid game id")
			return
		}
		game, err := svc.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"game": render.game(*game)})
	}
}

func createGameHandler(svc catalogService, render renderer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGameRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		for _, ref := range []string{req.PlatformID, req.CategoryID, req.CompanyID} {
			if ref != "" && uuid.Validate(ref) != nil {
				fail(c, http.StatusBadRequest, "invalid reference id")
				return
			}
		}

		game, err := svc.Create(c.Request.Context(), currentUser(c), catalog.CreateInput{
			Name:        req.Name,
			Description: req.Description,
			PriceCents:  req.PriceCents,
			Quantity:    req.Quantity,
			PlatformID:  req.PlatformID,
			CategoryID:  req.CategoryID,
			CompanyID:   req.CompanyID,
			Images:      req.Images,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusCreated, gin.H{"message": "game created", "game": render.game(*game)})
	}
}

func deleteGameHandler(svc catalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			fail(c, http.StatusBadRequest, "invalid game id")
			return
		}
		if err := svc.Deactivate(c.Request.Context(), currentUser(c), id); err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "game removed"})
	}
}
