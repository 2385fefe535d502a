package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"gamestore-api/internal/domain"
	"gamestore-api/internal/service/auth"
	"github.com/gin-gonic/gin"
)

// ok writes the success envelope with extra payload fields merged in.
func ok(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// fail writes the failure envelope.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "error": msg})
}

// respondError maps a service error onto the wire contract: 404 for
// missing entities, 400 for rejected input or business-rule failures,
// 401 for credential problems, 500 otherwise.
func respondError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ve.Msg)
	case errors.Is(err, domain.ErrNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrNotEligible),
		errors.Is(err, domain.ErrAlreadyReviewed),
		errors.Is(err, domain.ErrAlreadyExists):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		fail(c, http.StatusUnauthorized, err.Error())
	default:
		fail(c, http.StatusInternalServerError, "internal error")
	}
}

// renderer resolves stored image filenames into absolute URLs.
type renderer struct {
	fileURLHost string
}

func newRenderer(fileURLHost string) renderer {
	return renderer{fileURLHost: strings.TrimSuffix(fileURLHost, "/")}
}

func (r renderer) imageURLs(filenames []string) []string {
	if len(filenames) == 0 {
		return []string{}
	}
	urls := make([]string, 0, len(filenames))
	for _, f := range filenames {
		if r.fileURLHost == "" {
			urls = append(urls, f)
			continue
		}
		urls = append(urls, r.fileURLHost+"/files/"+f)
	}
	return urls
}

func (r renderer) game(g domain.Game) domain.Game {
	g.Images = r.imageURLs(g.Images)
	return g
}

func (r renderer) games(games []domain.Game) []domain.Game {
	out := make([]domain.Game, 0, len(games))
	for _, g := range games {
		out = append(out, r.game(g))
	}
	return out
}

func (r renderer) cart(cart *domain.Cart) *domain.Cart {
	if cart == nil {
		return nil
	}
	for i := range cart.Items {
		cart.Items[i].Images = r.imageURLs(cart.Items[i].Images)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return cart
}
