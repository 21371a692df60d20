package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/utils/errutil"
)

type conductAssessmentRequest struct {
	Name        string   `json:"name"`
	ConductedBy string   `json:"conducted_by"`
	Scope       []string `json:"scope,omitempty"`
}

func (s *Server) listFrameworks(w http.ResponseWriter, r *http.Request) {
	frameworks, err := s.uc.Compliance.ListFrameworks(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, frameworks)
}

func (s *Server) createFramework(w http.ResponseWriter, r *http.Request) {
	var framework model.Framework
	if err := json.NewDecoder(r.Body).Decode(&framework); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.Compliance.CreateFramework(r.Context(), &framework)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getFramework(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "frameworkID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid framework ID"), http.StatusBadRequest)
		return
	}

	framework, err := s.uc.Compliance.GetFramework(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, framework)
}

func (s *Server) updateFramework(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "frameworkID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid framework ID"), http.StatusBadRequest)
		return
	}

	var framework model.Framework
	if err := json.NewDecoder(r.Body).Decode(&framework); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	framework.ID = id

	updated, err := s.uc.Compliance.UpdateFramework(r.Context(), &framework)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteFramework(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "frameworkID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid framework ID"), http.StatusBadRequest)
		return
	}

	if err := s.uc.Compliance.DeleteFramework(r.Context(), id); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listControls(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "frameworkID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid framework ID"), http.StatusBadRequest)
		return
	}

	controls, err := s.uc.Compliance.ListControls(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, controls)
}

func (s *Server) createControl(w http.ResponseWriter, r *http.Request) {
	var control model.Control
	if err := json.NewDecoder(r.Body).Decode(&control); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.Compliance.CreateControl(r.Context(), &control)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getControl(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "controlID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid control ID"), http.StatusBadRequest)
		return
	}

	control, err := s.uc.Compliance.GetControl(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, control)
}

func (s *Server) updateControl(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "controlID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid control ID"), http.StatusBadRequest)
		return
	}

	var control model.Control
	if err := json.NewDecoder(r.Body).Decode(&control); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	control.ID = id

	updated, err := s.uc.Compliance.UpdateControl(r.Context(), &control)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteControl(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "controlID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid control ID"), http.StatusBadRequest)
		return
	}

	if err := s.uc.Compliance.DeleteControl(r.Context(), id); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEvidence(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "controlID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid control ID"), http.StatusBadRequest)
		return
	}

	evidence, err := s.uc.Compliance.ListEvidence(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, evidence)
}

func (s *Server) addEvidence(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "controlID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid control ID"), http.StatusBadRequest)
		return
	}

	var evidence model.Evidence
	if err := json.NewDecoder(r.Body).Decode(&evidence); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	evidence.ControlID = id

	created, err := s.uc.Compliance.AddEvidence(r.Context(), &evidence)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) listAssessments(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "frameworkID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid framework ID"), http.StatusBadRequest)
		return
	}

	assessments, err := s.uc.Compliance.ListAssessments(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, assessments)
}

func (s *Server) conductAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "frameworkID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid framework ID"), http.StatusBadRequest)
		return
	}

	var req conductAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.Compliance.ConductAssessment(r.Context(), id, req.Name, req.ConductedBy, req.Scope)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, assessment)
}

func (s *Server) getAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "assessmentID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid assessment ID"), http.StatusBadRequest)
		return
	}

	assessment, err := s.uc.Compliance.GetAssessment(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, assessment)
}

func (s *Server) conductGapAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "frameworkID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid framework ID"), http.StatusBadRequest)
		return
	}

	analysis, err := s.uc.Compliance.ConductGapAnalysis(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, analysis)
}
