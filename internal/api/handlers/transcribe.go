package handlers

import (
	"io"
	"net/http"

	"github.com/yashxcode/aurelia-studio/internal/form"
	"github.com/yashxcode/aurelia-studio/internal/stt"
)

// TranscribeHandler accepts multipart audio uploads and returns transcripts.
type TranscribeHandler struct {
	stt      stt.AudioTranscriber
	maxBytes int64
}

func NewTranscribeHandler(transcriber stt.AudioTranscriber, maxBytes int64) *TranscribeHandler {
	return &TranscribeHandler{stt: transcriber, maxBytes: maxBytes}
}

// Transcribe extracts the "file" part from the multipart body and runs it
// through the speech-to-text backend. Every failure, whether the request was
// malformed or the model fell over, maps to a 500 with a flat {"error"} body;
// the endpoint's callers do not distinguish failure classes.
func (h *TranscribeHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBytes))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "read request body: " + err.Error()})
		return
	}

	boundary, err := form.Boundary(r.Header.Get("Content-Type"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	fileData, err := form.ExtractFile(body, boundary)
	if err == nil && len(fileData) == 0 {
		// An empty "file" part is indistinguishable from a missing one to
		// the caller.
		err = form.ErrNoFilePart
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	transcript, err := h.stt.TranscribeBytes(r.Context(), fileData)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"transcript": transcript})
}
