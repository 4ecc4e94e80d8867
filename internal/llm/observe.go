package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// CallRecord captures one provider invocation for persistence.
type CallRecord struct {
	Model        string
	Purpose      string
	LatencyMs    int64
	Success      bool
	InputTokens  int
	OutputTokens int
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// CallRecorder receives a record per provider call. Implemented by the
// store layer; a failing recorder never fails the call itself.
type CallRecorder interface {
	RecordLLMCall(ctx context.Context, rec CallRecord) error
}

type recordingProvider struct {
	inner    Provider
	recorder CallRecorder
}

// WithRecording wraps p so every call is handed to the recorder.
func WithRecording(p Provider, recorder CallRecorder) Provider {
	return &recordingProvider{inner: p, recorder: recorder}
}

func (r *recordingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := r.inner.Generate(ctx, req)

	rec := CallRecord{
		Model:       r.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: renderRequest(req),
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
		rec.ResponseBody = string(resp.Content)
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	if recErr := r.recorder.RecordLLMCall(ctx, rec); recErr != nil {
		fmt.Fprintf(os.Stderr, "warning: recording LLM call failed: %v\n", recErr)
	}

	return resp, err
}

func (r *recordingProvider) ModelID() string {
	return r.inner.ModelID()
}

// renderRequest flattens the request into a readable transcript.
func renderRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}

	return b.String()
}
