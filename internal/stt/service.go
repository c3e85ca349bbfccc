package stt

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Service turns raw audio bytes into a transcript by staging them in a
// temporary file and handing the path to a Transcriber backend.
type Service struct {
	provider Transcriber
}

func NewService(provider Transcriber) *Service {
	return &Service{provider: provider}
}

// TranscribeBytes writes audio to a fresh temporary file, transcribes it,
// and joins the resulting segments into one transcript. The temporary file
// is removed on every exit path.
func (s *Service) TranscribeBytes(ctx context.Context, audio []byte) (string, error) {
	f, err := os.CreateTemp("", "aurelia-upload-*.wav")
	if err != nil {
		return "", fmt.Errorf("transcription failed: create temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(audio); err != nil {
		f.Close()
		return "", fmt.Errorf("transcription failed: write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("transcription failed: close temp file: %w", err)
	}

	resp, err := s.provider.Transcribe(ctx, TranscriptionRequest{FilePath: path})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	return JoinSegments(resp), nil
}

// JoinSegments concatenates the trimmed text of every segment, separated by
// single spaces. A response with no segments falls back to its Text field.
func JoinSegments(resp *TranscriptionResponse) string {
	if len(resp.Segments) == 0 {
		return strings.TrimSpace(resp.Text)
	}
	parts := make([]string, 0, len(resp.Segments))
	for _, seg := range resp.Segments {
		if t := strings.TrimSpace(seg.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
