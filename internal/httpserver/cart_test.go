package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamestore-api/internal/domain"
)

const testGameID = "0b1f8c1e-4b2a-4f6d-9c3e-2a7d5e8f1a2b"

func authedRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer valid-token")
	return req
}

func TestGetCartHandler(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.CartSvc = &stubCartSvc{cart: &domain.Cart{ID: "c1", UserID: "u1", TotalCents: 3998}}
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/cart", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		Success bool        `json:"success"`
		Cart    domain.Cart `json:"cart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Cart.TotalCents != 3998 {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAddToCartHandler(t *testing.T) {
	cartSvc := &stubCartSvc{cart: &domain.Cart{ID: "c1"}}
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.CartSvc = cartSvc
	router := newTestRouter(t, deps)

	body := `{"gameId":"` + testGameID + `","quantity":2}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if cartSvc.lastGame != testGameID || cartSvc.lastQty != 2 {
		t.Fatalf("unexpected service call: game=%q qty=%d", cartSvc.lastGame, cartSvc.lastQty)
	}
}

func TestAddToCartDefaultsQuantity(t *testing.T) {
	cartSvc := &stubCartSvc{cart: &domain.Cart{ID: "c1"}}
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.CartSvc = cartSvc
	router := newTestRouter(t, deps)

	body := `{"gameId":"` + testGameID + `"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if cartSvc.lastQty != 1 {
		t.Fatalf("expected default quantity 1, got %d", cartSvc.lastQty)
	}
}

func TestAddToCartRejectsBadGameID(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", `{"gameId":"nope","quantity":1}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestAddToCartInsufficientStock(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.CartSvc = &stubCartSvc{err: &domain.InsufficientStockError{GameName: "Ashen Ring", Available: 1}}
	router := newTestRouter(t, deps)

	body := `{"gameId":"` + testGameID + `","quantity":5}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/cart/add", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Ashen Ring") {
		t.Fatalf("expected stock error detail, got %s", rec.Body.String())
	}
}

func TestClearCartHandler(t *testing.T) {
	cartSvc := &stubCartSvc{cart: &domain.Cart{ID: "c1"}}
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.CartSvc = cartSvc
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/cart/clear", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if cartSvc.lastCall != "clear" {
		t.Fatalf("expected clear call, got %q", cartSvc.lastCall)
	}
}
