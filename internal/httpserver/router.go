package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"gamestore-api/internal/domain"
	"gamestore-api/internal/service/auth"
	"gamestore-api/internal/service/catalog"
	ordersvc "gamestore-api/internal/service/order"
	reviewsvc "gamestore-api/internal/service/review"
	userrepo "gamestore-api/internal/repository/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type authService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	LookupByToken(ctx context.Context, token string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in userrepo.UpdateInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Delete(ctx context.Context, id string) error
}

type catalogService interface {
	List(ctx context.Context) ([]domain.Game, error)
	Get(ctx context.Context, id string) (*domain.Game, error)
	Create(ctx context.Context, seller domain.User, in catalog.CreateInput) (*domain.Game, error)
	Deactivate(ctx context.Context, seller domain.User, id string) error
}

type cartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Add(ctx context.Context, userID, gameID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, userID, gameID string, quantity int) (*domain.Cart, error)
	Remove(ctx context.Context, userID, gameID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) (*domain.Cart, error)
}

type orderService interface {
	Create(ctx context.Context, userID, paymentMethod string) (*domain.Order, error)
	ListMine(ctx context.Context, userID string) ([]domain.Order, error)
	VendorSales(ctx context.Context, sellerID string, from, to *time.Time) (*ordersvc.SalesReport, error)
}

type reviewService interface {
	Create(ctx context.Context, userID string, in reviewsvc.CreateInput) (*domain.Review, error)
	GameReviews(ctx context.Context, gameID string) ([]domain.Review, *domain.ReviewSummary, error)
	UserGameReview(ctx context.Context, userID, gameID string) (*domain.Review, error)
	ListMine(ctx context.Context, userID string) ([]domain.Review, error)
	Update(ctx context.Context, userID, reviewID string, rating int, comment string) (*domain.Review, error)
	Delete(ctx context.Context, userID, reviewID string) error
}

// Deps groups the services the router is wired with.
type Deps struct {
	AuthSvc    authService
	CatalogSvc catalogService
	CartSvc    cartService
	OrderSvc   orderService
	ReviewSvc  reviewService
}

func (d Deps) validate() error {
	if d.AuthSvc == nil || d.CatalogSvc == nil || d.CartSvc == nil || d.OrderSvc == nil || d.ReviewSvc == nil {
		return errors.New("httpserver: all services must be configured")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, fileURLHost string) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	render := newRenderer(fileURLHost)
	authed := authMiddleware(deps.AuthSvc)

	api := router.Group("/api")

	users := api.Group("/users")
	users.POST("/register", registerHandler(deps.AuthSvc))
	users.POST("/login", loginHandler(deps.AuthSvc))
	users.GET("", listUsersHandler(deps.AuthSvc))
	users.GET("/:id", getUserHandler(deps.AuthSvc))
	users.PUT("/:id", authed, updateUserHandler(deps.AuthSvc))
	users.DELETE("/:id", authed, deleteUserHandler(deps.AuthSvc))

	games := api.Group("/games")
	games.GET("", listGamesHandler(deps.CatalogSvc, render))
	games.GET("/:id", getGameHandler(deps.CatalogSvc, render))
	games.POST("", authed, createGameHandler(deps.CatalogSvc, render))
	games.DELETE("/:id", authed, deleteGameHandler(deps.CatalogSvc))

	cart := api.Group("/cart", authed)
	cart.GET("", getCartHandler(deps.CartSvc, render))
	cart.POST("/add", addToCartHandler(deps.CartSvc, render))
	cart.PUT("/update", updateCartHandler(deps.CartSvc, render))
	cart.DELETE("/remove", removeFromCartHandler(deps.CartSvc, render))
	cart.DELETE("/clear", clearCartHandler(deps.CartSvc, render))

	orders := api.Group("/orders", authed)
	orders.POST("", createOrderHandler(deps.OrderSvc))
	orders.GET("/my-orders", myOrdersHandler(deps.OrderSvc))
	orders.GET("/vendor-sales", vendorSalesHandler(deps.OrderSvc))

	reviews := api.Group("/reviews")
	reviews.POST("", authed, createReviewHandler(deps.ReviewSvc))
	reviews.GET("/game/:gameId", gameReviewsHandler(deps.ReviewSvc))
	reviews.GET("/my-reviews", authed, myReviewsHandler(deps.ReviewSvc))
	reviews.GET("/user-game/:gameId", authed, userGameReviewHandler(deps.ReviewSvc))
	reviews.PUT("/:id", authed, updateReviewHandler(deps.ReviewSvc))
	reviews.DELETE("/:id", authed, deleteReviewHandler(deps.ReviewSvc))

	return router, nil
}
