package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/model"
	"github.com/secmon-lab/briareus/pkg/domain/types"
	"github.com/secmon-lab/briareus/pkg/utils/errutil"
)

type assessRequest struct {
	Methodology string             `json:"methodology"`
	Context     *model.RiskContext `json:"context,omitempty"`
}

type bulkAssessRequest struct {
	RiskIDs     []int64            `json:"risk_ids"`
	Methodology string             `json:"methodology"`
	Context     *model.RiskContext `json:"context,omitempty"`
}

// methodology resolves the requested methodology, defaulting to simple
// multiplication when the request leaves it empty.
func methodology(s string) (types.Methodology, error) {
	if s == "" {
		return types.MethodologySimpleMultiplication, nil
	}
	return types.ParseMethodology(s)
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	risks, err := s.uc.Risk.ListRisks(r.Context())
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, risks)
}

func (s *Server) createRisk(w http.ResponseWriter, r *http.Request) {
	var risk model.Risk
	if err := json.NewDecoder(r.Body).Decode(&risk); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.Risk.CreateRisk(r.Context(), &risk)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, created)
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "riskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid risk ID"), http.StatusBadRequest)
		return
	}

	risk, err := s.uc.Risk.GetRisk(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, risk)
}

func (s *Server) updateRisk(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "riskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid risk ID"), http.StatusBadRequest)
		return
	}

	var risk model.Risk
	if err := json.NewDecoder(r.Body).Decode(&risk); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	risk.ID = id

	updated, err := s.uc.Risk.UpdateRisk(r.Context(), &risk)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, updated)
}

func (s *Server) deleteRisk(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "riskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid risk ID"), http.StatusBadRequest)
		return
	}

	if err := s.uc.Risk.DeleteRisk(r.Context(), id); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) assessRisk(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "riskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid risk ID"), http.StatusBadRequest)
		return
	}

	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	method, err := methodology(req.Methodology)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	score, err := s.uc.Risk.AssessRisk(r.Context(), id, method, req.Context)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, score)
}

func (s *Server) assessResidualRisk(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "riskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid risk ID"), http.StatusBadRequest)
		return
	}

	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	method, err := methodology(req.Methodology)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	score, err := s.uc.Risk.AssessResidualRisk(r.Context(), id, method, req.Context)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, score)
}

func (s *Server) bulkAssessRisks(w http.ResponseWriter, r *http.Request) {
	var req bulkAssessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	if len(req.RiskIDs) == 0 {
		errutil.HandleHTTP(r.Context(), w, goerr.New("risk_ids is required"), http.StatusBadRequest)
		return
	}

	method, err := methodology(req.Methodology)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	results, err := s.uc.Risk.BulkAssessRisks(r.Context(), req.RiskIDs, method, req.Context)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, results)
}

func (s *Server) getScoreHistory(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "riskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid risk ID"), http.StatusBadRequest)
		return
	}

	scores, err := s.uc.Risk.GetScoreHistory(r.Context(), id)
	if err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, scores)
}

func (s *Server) setExpertJudgment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "riskID")
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid risk ID"), http.StatusBadRequest)
		return
	}

	var judgment model.ExpertJudgment
	if err := json.NewDecoder(r.Body).Decode(&judgment); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}
	judgment.RiskID = id

	if err := s.uc.Risk.SetExpertJudgment(r.Context(), &judgment); err != nil {
		handleError(r.Context(), w, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, judgment)
}
