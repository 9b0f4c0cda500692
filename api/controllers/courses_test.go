package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/angelmondragon/ssbcompass-backend/internal/catalog"
	"github.com/angelmondragon/ssbcompass-backend/internal/ledger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/types"
)

func TestListCoursesInInsertionOrder(t *testing.T) {
	f := newFixture(t)
	rec := httptest.NewRecorder()
	ListCourses(f.catalog, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var list types.List[catalog.CourseDTO]
	decodeData(t, rec, &list)
	if list.Count != 2 || list.Items[0].ID != "VR" || list.Items[1].ID != "TAT" {
		t.Fatalf("unexpected list %+v", list)
	}
	if list.Items[1].Category != catalog.DefaultCategory {
		t.Fatalf("expected default category, got %q", list.Items[1].Category)
	}
}

func TestGetCourse(t *testing.T) {
	f := newFixture(t)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/courses/TAT", nil), "courseId", "TAT")
	rec := httptest.NewRecorder()
	GetCourse(f.catalog, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var course catalog.CourseDTO
	decodeData(t, rec, &course)
	if course.Price != 1499 {
		t.Fatalf("unexpected course %+v", course)
	}

	missing := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/courses/NOPE", nil), "courseId", "NOPE")
	rec = httptest.NewRecorder()
	GetCourse(f.catalog, nil).ServeHTTP(rec, missing)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestCourseAccessFollowsLedger(t *testing.T) {
	f := newFixture(t)
	if _, err := f.ledger.RecordPurchase(context.Background(), ledger.RecordPurchaseInput{
		LearnerID:      "learner-1",
		CourseID:       "TAT",
		Amount:         1499,
		TransactionRef: "UPI123",
	}); err != nil {
		t.Fatalf("record purchase: %v", err)
	}

	check := func(learner, course string) bool {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "courseId", course)
		req = withPrincipal(req, learner, enums.PrincipalKindLearner)
		rec := httptest.NewRecorder()
		CourseAccess(f.ledger, nil).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 got %d", rec.Code)
		}
		var resp courseAccess
		decodeData(t, rec, &resp)
		return resp.HasAccess
	}

	if !check("learner-1", "TAT") {
		t.Fatal("expected access to purchased course")
	}
	if check("learner-1", "VR") {
		t.Fatal("expected no access to unpurchased course")
	}
	if check("learner-2", "TAT") {
		t.Fatal("expected no access for another learner")
	}
}

func TestCourseAccessRequiresPrincipal(t *testing.T) {
	f := newFixture(t)
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/", nil), "courseId", "TAT")
	rec := httptest.NewRecorder()
	CourseAccess(f.ledger, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAdminCourseLifecycle(t *testing.T) {
	f := newFixture(t)

	create := httptest.NewRequest(http.MethodPost, "/api/admin/v1/courses", strings.NewReader(`{"id":"SRT","name":"SRT Mastery","price":799}`))
	rec := httptest.NewRecorder()
	AdminCreateCourse(f.catalog, nil).ServeHTTP(rec, create)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}

	dup := httptest.NewRequest(http.MethodPost, "/api/admin/v1/courses", strings.NewReader(`{"id":"SRT","name":"Again","price":1}`))
	rec = httptest.NewRecorder()
	AdminCreateCourse(f.catalog, nil).ServeHTTP(rec, dup)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}

	update := withURLParam(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"price":899}`)), "courseId", "SRT")
	rec = httptest.NewRecorder()
	AdminUpdateCourse(f.catalog, nil).ServeHTTP(rec, update)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	var updated catalog.CourseDTO
	decodeData(t, rec, &updated)
	if updated.Price != 899 || updated.Name != "SRT Mastery" {
		t.Fatalf("unexpected update %+v", updated)
	}

	del := withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "courseId", "SRT")
	rec = httptest.NewRecorder()
	AdminDeleteCourse(f.catalog, nil).ServeHTTP(rec, del)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	again := withURLParam(httptest.NewRequest(http.MethodDelete, "/", nil), "courseId", "SRT")
	rec = httptest.NewRecorder()
	AdminDeleteCourse(f.catalog, nil).ServeHTTP(rec, again)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestAdminCreateCourseValidation(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"No id","price":0}`))
	rec := httptest.NewRecorder()
	AdminCreateCourse(f.catalog, nil).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
	apiErr := decodeError(t, rec)
	if apiErr.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("unexpected code %s", apiErr.Code)
	}
	for _, field := range []string{"id", "price"} {
		if _, ok := apiErr.Details[field]; !ok {
			t.Fatalf("expected %s in details %v", field, apiErr.Details)
		}
	}
}

func TestAdminUpdateCourseRejectsUnknownFields(t *testing.T) {
	f := newFixture(t)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"owner":"someone"}`)), "courseId", "TAT")
	rec := httptest.NewRecorder()
	AdminUpdateCourse(f.catalog, nil).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
