package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gamestore-api/internal/domain"
	ordersvc "gamestore-api/internal/service/order"
)

func TestCreateOrderHandler(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.OrderSvc = &stubOrderSvc{order: &domain.Order{ID: "o1", TotalCents: 5998}}
	router := newTestRouter(t, deps)

	body := `{"metodoPago":"tarjeta"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/orders", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.OrderSvc = &stubOrderSvc{err: domain.ErrEmptyCart}
	router := newTestRouter(t, deps)

	body := `{"metodoPago":"tarjeta"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/orders", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateOrderMissingPaymentMethod(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/orders", `{}`))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestVendorSalesHandlerParsesDates(t *testing.T) {
	orderSvc := &stubOrderSvc{report: &ordersvc.SalesReport{}}
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "s1", Role: domain.RoleSeller}}
	deps.OrderSvc = orderSvc
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/orders/vendor-sales?from=2024-06-01&to=2024-06-30", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if orderSvc.lastFrom == nil || orderSvc.lastTo == nil {
		t.Fatal("expected both date filters forwarded")
	}
	wantFrom := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if !orderSvc.lastFrom.Equal(wantFrom) {
		t.Fatalf("expected from %s, got %s", wantFrom, orderSvc.lastFrom)
	}
}

func TestVendorSalesHandlerRejectsBadDate(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "s1"}}
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/orders/vendor-sales?from=junio", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}
