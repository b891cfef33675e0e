package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lms/learning/internal/access"
	"lms/learning/internal/auth"
	"lms/learning/internal/config"
	"lms/learning/internal/crypto"
	"lms/learning/internal/model"
)

// Store is the data surface the server consumes: principal resolution,
// course lookup for the validators, credential checks for login, and
// the thin course reads the handlers delegate to.
type Store interface {
	access.PrincipalDirectory
	access.CourseLookup
	CredentialsByEmail(ctx context.Context, email string) (model.Principal, string, error)
	ListCourses(ctx context.Context, limit int) ([]model.Course, error)
	UpdateCourseStatus(ctx context.Context, courseID string, status model.CourseStatus) error
}

type Server struct {
	cfg         config.Config
	store       Store
	revocations auth.RevocationStore
	authorities *access.AuthorityTable
	ownership   *access.OwnershipValidator
	enrollment  *access.EnrollmentValidator
	property    *access.PropertyValidator
}

func NewServer(cfg config.Config, store Store, revocations auth.RevocationStore) *Server {
	return &Server{
		cfg:         cfg,
		store:       store,
		revocations: revocations,
		authorities: access.DefaultAuthorityTable(),
		ownership:   access.NewOwnershipValidator(store),
		enrollment:  access.NewEnrollmentValidator(store),
		property:    access.NewPropertyValidator(store),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Logout sits outside the gate: it acknowledges even tokens the
	// gate would reject as already revoked or expired.
	r.Post("/public/auth/logout", s.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Use(s.requireAuthority)

		r.Get("/public/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Handle("/public/metrics", promhttp.Handler())
		r.Post("/public/auth/login", s.handleLogin)

		r.Get("/auth/me", s.handleGetMe)

		r.Get("/admin/courses", s.handleListCourses)

		r.Get("/instructor/course/{courseId}", s.handleInstructorGetCourse)
		r.Patch("/instructor/course/{courseId}", s.handleInstructorPatchCourse)
		r.Get("/instructor/course/{courseId}/{propertyKind}/{propertyId}", s.handleInstructorGetProperty)

		r.Get("/employee/course/{courseId}", s.handleEmployeeGetCourse)
		r.Get("/employee/course/{courseId}/{propertyKind}/{propertyId}", s.handleEmployeeGetProperty)
	})

	return r
}

// Auth

type principalKey struct{}

func withPrincipal(ctx context.Context, principal model.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, &principal)
}

func principalFromContext(ctx context.Context) *model.Principal {
	principal, _ := ctx.Value(principalKey{}).(*model.Principal)
	return principal
}

// authMiddleware resolves the caller identity for the request. A
// missing header or a token without a readable subject passes through
// as anonymous; a revoked token or an unknown subject is rejected. A
// token whose signature or subject does not survive full validation
// also passes through as anonymous rather than failing hard, which is
// long-standing behavior that public routes rely on.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		subject, ok := auth.ExtractSubject(token)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		revoked, err := s.revocations.IsRevoked(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}
		if revoked {
			writeError(w, http.StatusUnauthorized, "token_revoked")
			return
		}

		if principalFromContext(r.Context()) != nil {
			next.ServeHTTP(w, r)
			return
		}

		principal, err := s.store.PrincipalByEmail(r.Context(), subject)
		if errors.Is(err, access.ErrPrincipalNotFound) {
			writeError(w, http.StatusUnauthorized, "unknown_principal")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "server_error")
			return
		}

		if !auth.ValidateToken(s.cfg.JWTSecret, token, principal.Email) {
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// requireAuthority applies the route-level role table. It runs after
// identity is attached and before any handler or resource validator.
func (s *Server) requireAuthority(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		required := s.authorities.RequiredFor(r.URL.Path)
		principal := principalFromContext(r.Context())
		if required.Permits(principal) {
			next.ServeHTTP(w, r)
			return
		}
		if principal == nil {
			writeError(w, http.StatusUnauthorized, "authentication_required")
			return
		}
		writeError(w, http.StatusForbidden, "insufficient_authority")
	})
}

// Models

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

type authResponse struct {
	AccessToken string      `json:"accessToken"`
	User        userSummary `json:"user"`
}

type courseResponse struct {
	ID              string   `json:"id"`
	Instructor      string   `json:"instructor"`
	Status          string   `json:"status"`
	Enrollments     []string `json:"enrollments,omitempty"`
	Assignments     []string `json:"assignments,omitempty"`
	CourseMaterials []string `json:"courseMaterials,omitempty"`
}

type propertyResponse struct {
	ID     string `json:"id"`
	Course string `json:"course"`
	Kind   string `json:"kind"`
}

type patchCourseRequest struct {
	Status *string `json:"status"`
}

// Handlers

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "missing_credentials")
		return
	}

	principal, passwordHash, err := s.store.CredentialsByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, access.ErrPrincipalNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	if err := crypto.CheckPassword(passwordHash, req.Password); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid_credentials")
		return
	}

	if principal.Status != model.StatusActive {
		writeError(w, http.StatusUnauthorized, "account_not_active")
		return
	}

	token, err := auth.NewAccessToken(s.cfg.JWTSecret, s.cfg.JWTIssuer, s.cfg.AccessTokenTTL, auth.Claims{
		Email:     principal.Email,
		FirstName: principal.FirstName,
		LastName:  principal.LastName,
		Role:      principal.Role,
		Status:    principal.Status,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "token_error")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		AccessToken: token,
		User:        mapUserSummary(principal),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r.Header.Get("Authorization"))
	if token == "" {
		writeError(w, http.StatusBadRequest, "missing_token")
		return
	}

	if err := s.revocations.Revoke(r.Context(), token); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "authentication_required")
		return
	}
	writeJSON(w, http.StatusOK, mapUserSummary(*principal))
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	limit := 200
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	courses, err := s.store.ListCourses(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}

	resp := make([]courseResponse, 0, len(courses))
	for _, course := range courses {
		resp = append(resp, mapCourse(course))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleInstructorGetCourse(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	courseID := chi.URLParam(r, "courseId")

	if !s.validateOwnership(w, r, courseID, principal) {
		return
	}

	course, err := s.store.CourseByID(r.Context(), courseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, mapCourse(course))
}

func (s *Server) handleInstructorPatchCourse(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	courseID := chi.URLParam(r, "courseId")

	if !s.validateOwnership(w, r, courseID, principal) {
		return
	}

	var req patchCourseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}
	if req.Status == nil {
		writeError(w, http.StatusBadRequest, "missing_status")
		return
	}
	status := model.CourseStatus(strings.ToUpper(*req.Status))
	if status != model.CourseActive && status != model.CourseInactive {
		writeError(w, http.StatusBadRequest, "invalid_status")
		return
	}

	if err := s.store.UpdateCourseStatus(r.Context(), courseID, status); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (s *Server) handleInstructorGetProperty(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	courseID := chi.URLParam(r, "courseId")

	if !s.validateOwnership(w, r, courseID, principal) {
		return
	}
	s.serveCourseProperty(w, r, courseID)
}

func (s *Server) handleEmployeeGetCourse(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	courseID := chi.URLParam(r, "courseId")

	if !s.validateEnrollment(w, r, courseID, principal) {
		return
	}

	course, err := s.store.CourseByID(r.Context(), courseID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	resp := mapCourse(course)
	// Employees see the course, not its roster.
	resp.Enrollments = nil
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEmployeeGetProperty(w http.ResponseWriter, r *http.Request) {
	principal := principalFromContext(r.Context())
	courseID := chi.URLParam(r, "courseId")

	if !s.validateEnrollment(w, r, courseID, principal) {
		return
	}
	s.serveCourseProperty(w, r, courseID)
}

func (s *Server) validateOwnership(w http.ResponseWriter, r *http.Request, courseID string, principal *model.Principal) bool {
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "authentication_required")
		return false
	}
	outcome, err := s.ownership.Validate(r.Context(), courseID, *principal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return false
	}
	if !outcome.OK {
		writeOutcome(w, outcome)
		return false
	}
	return true
}

func (s *Server) validateEnrollment(w http.ResponseWriter, r *http.Request, courseID string, principal *model.Principal) bool {
	if principal == nil {
		writeError(w, http.StatusUnauthorized, "authentication_required")
		return false
	}
	outcome, err := s.enrollment.Validate(r.Context(), courseID, *principal)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return false
	}
	if !outcome.OK {
		writeOutcome(w, outcome)
		return false
	}
	return true
}

// serveCourseProperty resolves the {propertyKind}/{propertyId} tail of
// a course-scoped URL. The kind set is closed; anything else is an
// unknown route, and a sub-resource not belonging to the course is
// refused even when it exists elsewhere.
func (s *Server) serveCourseProperty(w http.ResponseWriter, r *http.Request, courseID string) {
	kind, ok := model.ParsePropertyKind(chi.URLParam(r, "propertyKind"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	propertyID := chi.URLParam(r, "propertyId")

	member, err := s.property.IsMember(r.Context(), courseID, kind, propertyID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error")
		return
	}
	if !member {
		writeError(w, http.StatusForbidden, "property_not_in_course")
		return
	}

	writeJSON(w, http.StatusOK, propertyResponse{
		ID:     propertyID,
		Course: courseID,
		Kind:   string(kind),
	})
}

// Helpers

func mapUserSummary(principal model.Principal) userSummary {
	return userSummary{
		ID:        principal.ID,
		Email:     principal.Email,
		FirstName: principal.FirstName,
		LastName:  principal.LastName,
		Role:      string(principal.Role),
		Status:    string(principal.Status),
	}
}

func mapCourse(course model.Course) courseResponse {
	return courseResponse{
		ID:              course.ID,
		Instructor:      course.InstructorID,
		Status:          string(course.Status),
		Enrollments:     course.Enrollments,
		Assignments:     course.Assignments,
		CourseMaterials: course.CourseMaterials,
	}
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeOutcome(w http.ResponseWriter, outcome access.Outcome) {
	writeJSON(w, outcome.HTTPStatus(), map[string]string{"error": outcome.Message})
}
