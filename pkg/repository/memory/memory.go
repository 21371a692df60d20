package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/briareus/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = goerr.New("not found")

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	risk       *riskRepository
	score      *scoreRepository
	framework  *frameworkRepository
	control    *controlRepository
	assessment *assessmentRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		risk:       newRiskRepository(),
		score:      newScoreRepository(),
		framework:  newFrameworkRepository(),
		control:    newControlRepository(),
		assessment: newAssessmentRepository(),
	}
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Score() interfaces.ScoreRepository {
	return m.score
}

func (m *Memory) Framework() interfaces.FrameworkRepository {
	return m.framework
}

func (m *Memory) Control() interfaces.ControlRepository {
	return m.control
}

func (m *Memory) Assessment() interfaces.AssessmentRepository {
	return m.assessment
}

func (m *Memory) Close() error {
	return nil
}
