package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Risk() RiskRepository
	Score() ScoreRepository
	Framework() FrameworkRepository
	Control() ControlRepository
	Assessment() AssessmentRepository
	Close() error
}
