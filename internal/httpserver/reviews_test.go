package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gamestore-api/internal/domain"
)

const testOrderID = "7c9a2d4e-1f3b-4a5c-8d6e-9b0a1c2d3e4f"

func TestCreateReviewHandler(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.ReviewSvc = &stubReviewSvc{review: &domain.Review{ID: "r1", Rating: 5}}
	router := newTestRouter(t, deps)

	body := `{"gameId":"` + testGameID + `","orderId":"` + testOrderID + `","calificacion":5,"comentario":"excelente"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/reviews", body))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestCreateReviewNotEligible(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.ReviewSvc = &stubReviewSvc{err: domain.ErrNotEligible}
	router := newTestRouter(t, deps)

	body := `{"gameId":"` + testGameID + `","orderId":"` + testOrderID + `","calificacion":4,"comentario":"bien"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/reviews", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestGameReviewsIsPublic(t *testing.T) {
	deps := testDeps()
	deps.ReviewSvc = &stubReviewSvc{
		reviews: []domain.Review{{ID: "r1", Rating: 4}},
		summary: &domain.ReviewSummary{AverageRating: 4, TotalReviews: 1},
	}
	router := newTestRouter(t, deps)

	req := httptest.NewRequest(http.MethodGet, "/api/reviews/game/"+testGameID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"calificacion":4`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUserGameReviewHandlesMissingReview(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	deps.ReviewSvc = &stubReviewSvc{err: domain.ErrNotFound}
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/reviews/user-game/"+testGameID, ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"hasReview":false`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestDeleteReviewRejectsBadID(t *testing.T) {
	deps := testDeps()
	deps.AuthSvc = &stubAuthSvc{user: &domain.User{ID: "u1"}}
	router := newTestRouter(t, deps)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodDelete, "/api/reviews/not-a-uuid", ""))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}
