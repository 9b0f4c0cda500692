package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/ssbcompass-backend/api/responses"
	"github.com/angelmondragon/ssbcompass-backend/api/validators"
	"github.com/angelmondragon/ssbcompass-backend/internal/catalog"
	pkgerrors "github.com/angelmondragon/ssbcompass-backend/pkg/errors"
	"github.com/angelmondragon/ssbcompass-backend/pkg/logger"
	"github.com/angelmondragon/ssbcompass-backend/pkg/types"
)

type accessChecker interface {
	HasAccess(ctx context.Context, learnerID, courseID string) (bool, error)
}

type courseAccess struct {
	CourseID  string `json:"course_id"`
	HasAccess bool   `json:"has_access"`
}

func ListCourses(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		rows, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, types.NewList(catalog.FromModels(rows)))
	}
}

func GetCourse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		courseID, err := courseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		course, err := svc.Get(r.Context(), courseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalog.FromModel(*course))
	}
}

// CourseAccess reports whether the calling learner is entitled to the course.
func CourseAccess(svc accessChecker, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ledger service unavailable"))
			return
		}

		learnerID, ok := learnerFromRequest(w, r, logg)
		if !ok {
			return
		}

		courseID, err := courseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		granted, err := svc.HasAccess(r.Context(), learnerID, courseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, courseAccess{CourseID: courseID, HasAccess: granted})
	}
}

func AdminCreateCourse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body catalog.CreateCourseInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		course, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, catalog.FromModel(*course))
	}
}

func AdminUpdateCourse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		courseID, err := courseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body catalog.UpdateCourseInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		course, err := svc.Update(r.Context(), courseID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, catalog.FromModel(*course))
	}
}

func AdminDeleteCourse(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		courseID, err := courseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), courseID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": courseID})
	}
}

func courseIDParam(r *http.Request) (string, error) {
	courseID := strings.TrimSpace(chi.URLParam(r, "courseId"))
	if courseID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "course id is required")
	}
	return courseID, nil
}
