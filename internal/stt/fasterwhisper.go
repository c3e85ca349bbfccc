package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// FasterWhisperConfig holds configuration for the local faster-whisper
// backend.
type FasterWhisperConfig struct {
	BinPath     string // default: "whisper-ctranslate2"
	Model       string // default: "small"
	Device      string // default: "cpu"
	ComputeType string // default: "int8"
	BeamSize    int    // default: 5
}

// FasterWhisper transcribes audio by shelling out to a faster-whisper CLI
// (whisper-ctranslate2 or compatible). Each call spawns a fresh process, so
// model weights are loaded from disk on every request; nothing is shared
// across requests.
type FasterWhisper struct {
	cfg FasterWhisperConfig
}

// NewFasterWhisper creates a FasterWhisper with defaults applied.
func NewFasterWhisper(cfg FasterWhisperConfig) *FasterWhisper {
	if cfg.BinPath == "" {
		cfg.BinPath = "whisper-ctranslate2"
	}
	if cfg.Model == "" {
		cfg.Model = "small"
	}
	if cfg.Device == "" {
		cfg.Device = "cpu"
	}
	if cfg.ComputeType == "" {
		cfg.ComputeType = "int8"
	}
	if cfg.BeamSize <= 0 {
		cfg.BeamSize = 5
	}
	return &FasterWhisper{cfg: cfg}
}

func (fw *FasterWhisper) Name() string { return "faster-whisper" }

// CheckHealth reports whether the CLI binary is resolvable.
func (fw *FasterWhisper) CheckHealth(ctx context.Context) error {
	if _, err := exec.LookPath(fw.cfg.BinPath); err != nil {
		return fmt.Errorf("faster-whisper binary not found: %w", err)
	}
	return nil
}

// Transcribe runs the CLI against the audio file and parses its JSON output.
func (fw *FasterWhisper) Transcribe(ctx context.Context, req TranscriptionRequest) (*TranscriptionResponse, error) {
	outDir := filepath.Join(os.TempDir(), "aurelia-whisper-"+uuid.NewString())
	if err := os.MkdirAll(outDir, 0o700); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	cmd := exec.CommandContext(ctx, fw.cfg.BinPath, fw.args(req, outDir)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", fw.cfg.BinPath, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", fw.cfg.BinPath, err)
	}

	base := filepath.Base(req.FilePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	data, err := os.ReadFile(filepath.Join(outDir, base+".json"))
	if err != nil {
		return nil, fmt.Errorf("read transcription output: %w", err)
	}

	return parseOutput(data)
}

func (fw *FasterWhisper) args(req TranscriptionRequest, outDir string) []string {
	args := []string{
		req.FilePath,
		"--model", fw.cfg.Model,
		"--device", fw.cfg.Device,
		"--compute_type", fw.cfg.ComputeType,
		"--beam_size", strconv.Itoa(fw.cfg.BeamSize),
		"--output_format", "json",
		"--output_dir", outDir,
	}
	if req.Language != "" {
		args = append(args, "--language", req.Language)
	}
	return args
}

// parseOutput decodes the CLI's JSON result file. The format matches the
// openai-whisper CLI: a top-level text plus ordered timed segments.
func parseOutput(data []byte) (*TranscriptionResponse, error) {
	var out struct {
		Text     string    `json:"text"`
		Language string    `json:"language"`
		Segments []Segment `json:"segments"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse transcription output: %w", err)
	}

	resp := &TranscriptionResponse{
		Text:     out.Text,
		Language: out.Language,
		Segments: out.Segments,
	}
	if n := len(out.Segments); n > 0 {
		resp.Duration = out.Segments[n-1].End
	}
	return resp, nil
}
