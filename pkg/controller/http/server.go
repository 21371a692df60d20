package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/briareus/pkg/usecase"
	"github.com/secmon-lab/briareus/pkg/utils/errutil"
	"github.com/secmon-lab/briareus/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

func New(uc *usecase.UseCases) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/risks", func(r chi.Router) {
			r.Get("/", s.listRisks)
			r.Post("/", s.createRisk)
			r.Post("/bulk-assess", s.bulkAssessRisks)
			r.Route("/{riskID}", func(r chi.Router) {
				r.Get("/", s.getRisk)
				r.Put("/", s.updateRisk)
				r.Delete("/", s.deleteRisk)
				r.Post("/assess", s.assessRisk)
				r.Post("/assess-residual", s.assessResidualRisk)
				r.Get("/scores", s.getScoreHistory)
				r.Put("/judgment", s.setExpertJudgment)
			})
		})

		r.Route("/frameworks", func(r chi.Router) {
			r.Get("/", s.listFrameworks)
			r.Post("/", s.createFramework)
			r.Route("/{frameworkID}", func(r chi.Router) {
				r.Get("/", s.getFramework)
				r.Put("/", s.updateFramework)
				r.Delete("/", s.deleteFramework)
				r.Get("/controls", s.listControls)
				r.Get("/assessments", s.listAssessments)
				r.Post("/assessments", s.conductAssessment)
				r.Get("/gap-analysis", s.conductGapAnalysis)
			})
		})

		r.Route("/controls", func(r chi.Router) {
			r.Post("/", s.createControl)
			r.Route("/{controlID}", func(r chi.Router) {
				r.Get("/", s.getControl)
				r.Put("/", s.updateControl)
				r.Delete("/", s.deleteControl)
				r.Get("/evidence", s.listEvidence)
				r.Post("/evidence", s.addEvidence)
			})
		})

		r.Get("/assessments/{assessmentID}", s.getAssessment)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// handleError maps use case errors to HTTP status codes.
func handleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrRiskNotFound),
		errors.Is(err, usecase.ErrFrameworkNotFound),
		errors.Is(err, usecase.ErrControlNotFound),
		errors.Is(err, usecase.ErrAssessmentNotFound):
		errutil.HandleHTTP(ctx, w, err, http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvalidInput):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

// idParam extracts a numeric URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}
