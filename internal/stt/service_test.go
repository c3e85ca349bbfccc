package stt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// stubTranscriber records what it was called with and can read the staged
// file to verify its contents.
type stubTranscriber struct {
	calls     int
	gotPath   string
	gotAudio  []byte
	pathStat  error
	resp      *TranscriptionResponse
	err       error
	onDiskErr error
}

func (s *stubTranscriber) Name() string { return "stub" }

func (s *stubTranscriber) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	s.calls++
	s.gotPath = req.FilePath
	s.gotAudio, s.onDiskErr = os.ReadFile(req.FilePath)
	_, s.pathStat = os.Stat(req.FilePath)
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestTranscribeBytesStagesTempFile(t *testing.T) {
	audio := []byte{0x52, 0x49, 0x46, 0x46, 0x00, 0xff, 0x0d, 0x0a}
	stub := &stubTranscriber{resp: &TranscriptionResponse{Text: " hello "}}
	svc := NewService(stub)

	got, err := svc.TranscribeBytes(context.Background(), audio)
	if err != nil {
		t.Fatalf("TranscribeBytes returned error: %v", err)
	}
	if got != "hello" {
		t.Errorf("transcript = %q, want %q", got, "hello")
	}

	if stub.calls != 1 {
		t.Fatalf("provider called %d times, want exactly 1", stub.calls)
	}
	if stub.pathStat != nil {
		t.Errorf("temp file was not on disk during the call: %v", stub.pathStat)
	}
	if stub.onDiskErr != nil {
		t.Fatalf("reading staged file failed: %v", stub.onDiskErr)
	}
	if !bytes.Equal(stub.gotAudio, audio) {
		t.Errorf("staged file content = %v, want %v", stub.gotAudio, audio)
	}
}

func TestTranscribeBytesRemovesTempFileOnSuccess(t *testing.T) {
	stub := &stubTranscriber{resp: &TranscriptionResponse{Text: "ok"}}
	svc := NewService(stub)

	if _, err := svc.TranscribeBytes(context.Background(), []byte("audio")); err != nil {
		t.Fatalf("TranscribeBytes returned error: %v", err)
	}

	if _, err := os.Stat(stub.gotPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file %s still exists after the call", stub.gotPath)
	}
}

func TestTranscribeBytesRemovesTempFileOnFailure(t *testing.T) {
	stub := &stubTranscriber{err: errors.New("decode blew up")}
	svc := NewService(stub)

	_, err := svc.TranscribeBytes(context.Background(), []byte("audio"))
	if err == nil {
		t.Fatal("expected error from failing provider")
	}
	if got := err.Error(); !strings.Contains(got, "transcription failed") {
		t.Errorf("error %q should identify the transcription stage", got)
	}

	if _, statErr := os.Stat(stub.gotPath); !errors.Is(statErr, os.ErrNotExist) {
		t.Errorf("temp file %s still exists after a failed call", stub.gotPath)
	}
}

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		name string
		resp *TranscriptionResponse
		want string
	}{
		{
			"trims and joins with single spaces",
			&TranscriptionResponse{Segments: []Segment{
				{Text: " Hello there. "},
				{Text: " General Kenobi. "},
			}},
			"Hello there. General Kenobi.",
		},
		{
			"skips empty segments",
			&TranscriptionResponse{Segments: []Segment{
				{Text: "one"}, {Text: "   "}, {Text: "two"},
			}},
			"one two",
		},
		{
			"falls back to text when no segments",
			&TranscriptionResponse{Text: "  plain text  "},
			"plain text",
		},
		{
			"silence",
			&TranscriptionResponse{},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinSegments(tt.resp); got != tt.want {
				t.Errorf("JoinSegments = %q, want %q", got, tt.want)
			}
		})
	}
}
