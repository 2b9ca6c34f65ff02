package service

// Scorer defines the interface for dropout scoring strategies.
type Scorer interface {
	Score(signals PatientSignals) ScoreOutput
}
