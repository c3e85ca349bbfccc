// Package form extracts file payloads from raw multipart/form-data bodies.
//
// Browsers are not the only clients of the transcribe endpoint, and some of
// them produce bodies that Go's mime/multipart reader rejects (unquoted
// boundaries with reserved characters, missing trailing terminators). The
// extractor here splits on the raw boundary bytes instead, which keeps the
// payload byte-for-byte intact for arbitrary binary audio.
package form

import (
	"bytes"
	"errors"
	"fmt"
	"mime"
	"strings"
)

// ErrNoFilePart is returned when the body parses cleanly but contains no
// part named "file". Callers distinguish it from malformed-body errors.
var ErrNoFilePart = errors.New("no file found in request")

// ErrNoBoundary is returned when the Content-Type header carries no
// boundary parameter.
var ErrNoBoundary = errors.New("no boundary found in Content-Type")

var (
	fileDisposition = []byte(`Content-Disposition: form-data; name="file"`)
	crlf            = []byte("\r\n")
	headerEnd       = []byte("\r\n\r\n")
)

// Boundary extracts the multipart boundary from a Content-Type header value
// and returns it with the leading two-dash marker prepended, ready to split
// a body on.
func Boundary(contentType string) (string, error) {
	if contentType == "" {
		return "", ErrNoBoundary
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		// Fall back to a raw scan; some clients send parameters that
		// ParseMediaType considers malformed.
		if i := strings.Index(contentType, "boundary="); i >= 0 {
			b := contentType[i+len("boundary="):]
			if j := strings.IndexByte(b, ';'); j >= 0 {
				b = b[:j]
			}
			b = strings.Trim(strings.TrimSpace(b), `"`)
			if b != "" {
				return "--" + b, nil
			}
		}
		return "", fmt.Errorf("%w: %v", ErrNoBoundary, err)
	}
	b, ok := params["boundary"]
	if !ok || b == "" {
		return "", ErrNoBoundary
	}
	return "--" + b, nil
}

// ExtractFile returns the payload of the first part named "file" in body.
// The boundary must include the leading "--" marker, as returned by Boundary.
//
// The payload runs from just after the part's blank-line header separator up
// to the trailing CRLF that precedes the next boundary. A part with no
// trailing CRLF after its headers yields everything to the end of the chunk.
// When several parts are named "file" the first one wins.
func ExtractFile(body []byte, boundary string) ([]byte, error) {
	delim := []byte(boundary)
	if !bytes.Contains(body, delim) {
		return nil, fmt.Errorf("failed to parse multipart data: boundary %q not present in body", boundary)
	}

	for _, part := range bytes.Split(body, delim) {
		if !bytes.Contains(part, fileDisposition) {
			continue
		}
		start := bytes.Index(part, headerEnd)
		if start == -1 {
			return nil, errors.New("failed to parse multipart data: part has no header terminator")
		}
		start += len(headerEnd)

		end := bytes.LastIndex(part, crlf)
		if end < start {
			end = len(part)
		}
		return part[start:end], nil
	}

	return nil, ErrNoFilePart
}
