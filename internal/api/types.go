package api

import (
	"github.com/matzehuels/cargoassist/pkg/completion"
	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/manifest"
)

// CompleteRequest asks for suggestions at a cursor position in Text.
// URI is optional and only names the document in logs; it must still end
// in Cargo.toml. Requests are stateless.
type CompleteRequest struct {
	URI       string `json:"uri,omitempty"`
	Text      string `json:"text"`
	Line      int    `json:"line"`
	Character int    `json:"character"`
}

// Validate rejects negative positions and non-manifest URIs.
func (r *CompleteRequest) Validate() error {
	if r.Line < 0 || r.Character < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "position must not be negative (line %d, character %d)", r.Line, r.Character)
	}
	if r.URI != "" {
		return errors.ValidateManifestFilename(r.URI)
	}
	return nil
}

// CompleteResponse is the answer to a CompleteRequest.
type CompleteResponse struct {
	RequestID  string            `json:"request_id"`
	Context    ContextJSON       `json:"context"`
	Items      []completion.Item `json:"items"`
	Incomplete bool              `json:"incomplete"`
}

// ContextJSON is a resolved completion context with its kind spelled out.
type ContextJSON struct {
	Kind   string             `json:"kind"`
	Detail completion.Context `json:"detail"`
}

// ScanRequest asks for the dependency structure of Text.
type ScanRequest struct {
	Text string `json:"text"`
}

// ScanResponse carries the scanned structure.
type ScanResponse struct {
	RequestID string              `json:"request_id"`
	Structure *manifest.Structure `json:"structure"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
}
