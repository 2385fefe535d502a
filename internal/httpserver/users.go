package httpserver

import (
	"net/http"

	userrepo "gamestore-api/internal/repository/user"
	"gamestore-api/internal/service/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Gender   *string `json:"gender"`
	Phone    *string `json:"phone"`
}

func registerHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req auth.RegisterInput
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		user, err := svc.Register(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusCreated, gin.H{"message": "user registered", "user": user})
	}
}

func loginHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "email and password required")
			return
		}
		user, token, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "login successful", "user": user, "token": token})
	}
}

func listUsersHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"count": len(users), "users": users})
	}
}

func getUserHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			fail(c, http.StatusBadRequest, "invalid user id")
			return
		}
		user, err := svc.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"user": user})
	}
}

func updateUserHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			fail(c, http.StatusBadRequest, "invalid user id")
			return
		}
		if currentUser(c).ID != id {
			fail(c, http.StatusUnauthorized, "cannot update another user")
			return
		}

		var req updateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, "invalid request body")
			return
		}
		user, err := svc.Update(c.Request.Context(), id, userrepo.UpdateInput{
			Username: req.Username,
			Email:    req.Email,
			Gender:   req.Gender,
			Phone:    req.Phone,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "user updated", "user": user})
	}
}

func deleteUserHandler(svc authService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if uuid.Validate(id) != nil {
			fail(c, http.StatusBadRequest, "invalid user id")
			return
		}
		if currentUser(c).ID != id {
			fail(c, http.StatusUnauthorized, "cannot delete another user")
			return
		}

		if err := svc.Delete(c.Request.Context(), id); err != nil {
			respondError(c, err)
			return
		}
		ok(c, http.StatusOK, gin.H{"message": "user deleted"})
	}
}
