package stt

import "context"

// Segment is one timed span of recognized speech.
type Segment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptionRequest holds the parameters for audio transcription.
type TranscriptionRequest struct {
	FilePath string `json:"file_path"`
	Language string `json:"language,omitempty"`
}

// TranscriptionResponse holds the transcription result.
type TranscriptionResponse struct {
	Text     string    `json:"text"`
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments,omitempty"`
}

// Transcriber is the interface for speech-to-text backends.
type Transcriber interface {
	Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error)
	Name() string
}

// HealthChecker is implemented by backends that can report whether they are
// able to serve requests, for readiness probes.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// AudioTranscriber transcribes raw audio bytes into a single transcript
// string. It is the boundary HTTP handlers depend on.
type AudioTranscriber interface {
	TranscribeBytes(ctx context.Context, audio []byte) (string, error)
}
