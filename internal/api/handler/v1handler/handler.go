// Package v1handler implements the version 1 HTTP API: account sign-up and
// sign-in plus the owner-scoped task endpoints.
package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"taskmanager/internal/accounts"
	"taskmanager/internal/tasks"
	"taskmanager/pkg/domain"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// maxBodyBytes caps request bodies accepted by the v1 endpoints.
const maxBodyBytes = 1 << 20

// Deps holds the use cases served by the v1 API.
type Deps struct {
	Tasks    tasks.Service
	Accounts accounts.Service
}

type Handler struct {
	deps     Deps
	validate *validator.Validate
}

func New(deps Deps) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return &Handler{
		deps:     deps,
		validate: v,
	}
}

// Routes registers the v1 endpoints on r. Task endpoints require a bearer
// token checked by sec.
func (h *Handler) Routes(r chi.Router, sec *SecHandler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", h.SignUp)
		r.Post("/signin", h.SignIn)
	})

	r.Group(func(r chi.Router) {
		r.Use(sec.RequireBearer)

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", h.ListTasks)
			r.Post("/", h.CreateTask)
			r.Get("/{id}", h.GetTask)
			r.Patch("/{id}", h.UpdateTask)
			r.Delete("/{id}", h.DeleteTask)
		})
	})
}

// ErrorBody is the JSON body of every error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse pairs an ErrorBody with its HTTP status code.
type ErrorResponse struct {
	StatusCode int
	Response   ErrorBody
}

var defaultMessages = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrForbidden:    "forbidden",
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrConflict:     "conflict",
}

func statusCode(k serrors.Kind) int {
	switch k {
	case serrors.ErrNotFound:
		return http.StatusNotFound
	case serrors.ErrUnauthorized:
		return http.StatusUnauthorized
	case serrors.ErrForbidden:
		return http.StatusForbidden
	case serrors.ErrBadRequest:
		return http.StatusBadRequest
	case serrors.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewError maps err onto an ErrorResponse. Errors without a semantic kind are
// logged and rendered as an opaque internal error.
func (h *Handler) NewError(ctx context.Context, err error) *ErrorResponse {
	kind := serrors.KindOf(err)
	res := &ErrorResponse{
		StatusCode: statusCode(kind),
		Response:   ErrorBody{Code: kind.Error()},
	}

	if res.StatusCode == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		res.Response.Code = serrors.ErrInternal.Error()
		res.Response.Message = "internal error"

		return res
	}

	var (
		derr *domain.Error
		serr *serrors.Error
	)
	switch {
	case errors.As(err, &derr):
		res.Response.Message = derr.Error()
	case errors.As(err, &serr) && serr.Message() != "":
		res.Response.Message = serr.Message()
	default:
		res.Response.Message = defaultMessages[kind]
	}

	return res
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

// decode reads a JSON body into dst and validates it.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	if err := h.validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]

			return serrors.Wrap(serrors.ErrBadRequest, err,
				"invalid field %s: failed on %s", fe.Field(), fe.Tag())
		}

		return serrors.Wrap(serrors.ErrBadRequest, err, "invalid request body")
	}

	return nil
}
