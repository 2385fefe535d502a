package httpserver

import (
	"errors"
	"net/http"

	"gamestore-api/internal/domain"
	reviewsvc "gamestore-api/internal/service/review"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type createReviewRequest struct {
	GameID  string `json:"gameId" binding:"required"`
	OrderID string `json:"orderId" binding:"required"`
	Rating  int    `json:"calificacion"`
	Comment string `json:"comentario"`
}

type updateReviewRequest struct {
	Rating  int    `json:"calificacion"`
	Comment string `json:"comentario"`
}

func createReviewHandler(svc reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		if uuid.Validate(req.GameID) != nil || uuid.Validate(req.OrderID) != nil {
			fail(c, http.StatusBadRequest, "invalid game or order id")
			return
		}

		review, err := svc.Create(c.Request.Context(), currentUser(c).ID, reviewsvc.CreateInput{
			GameID:  req.GameID,
			OrderID: req.OrderID,
			Rating:  req.Rating,
			Comment: req.Comment,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusCreated, gin.H{"message": "review created", "review": review})
	}
}

func gameReviewsHandler(svc reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("gameId")
		if uuid.Validate(gameID) != nil {
			fail(c, http.StatusBadRequest, "invalid game id")
			return
		}

		reviews, summary, err := svc.GameReviews(c.Request.Context(), gameID)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{
			"count":   len(reviews),
			"reviews": reviews,
			"summary": summary,
		})
	}
}

func myReviewsHandler(svc reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews, err := svc.ListMine(c.Request.Context(), currentUser(c).ID)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"count": len(reviews), "reviews": reviews})
	}
}

// userGameReviewHandler tells the caller whether they already reviewed a
// game. A missing review is a normal answer, not a 404.
func userGameReviewHandler(svc reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		gameID := c.Param("gameId")
		if uuid.Validate(gameID) != nil {
			fail(c, http.StatusBadRequest, "invalid game id")
			return
		}

		review, err := svc.UserGameReview(c.Request.Context(), currentUser(c).ID, gameID)
		if errors.Is(err, domain.ErrNotFound) {
			ok(c, http.StatusOK, gin.H{"hasReview": false, "review": nil})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"hasReview": true, "review": review})
	}
}

func updateReviewHandler(svc reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			fail(c, http.StatusBadRequest, "invalid review id")
			return
		}
		var req updateReviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}

		review, err := svc.Update(c.Request.Context(), currentUser(c).ID, id, req.Rating, req.Comment)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "review updated", "review": review})
	}
}

func deleteReviewHandler(svc reviewService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			fail(c, http.StatusBadRequest, "invalid review id")
			return
		}

		if err := svc.Delete(c.Request.Context(), currentUser(c).ID, id); err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "review deleted"})
	}
}
