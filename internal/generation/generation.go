package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"deckwright/internal/logging"
	"deckwright/internal/services"
	"deckwright/internal/services/llm"
)

var (
	// ErrTransport marks failures reaching the backend or receiving a reply.
	ErrTransport = errors.New("generation transport failure")
	// ErrParse marks replies that are not JSON.
	ErrParse = errors.New("generation reply is not json")
	// ErrSchema marks JSON replies that do not conform to the requested schema.
	ErrSchema = errors.New("generation reply does not match schema")
)

// Schema is a JSON schema document expressed as Go values.
type Schema = map[string]any

// Request describes one structured generation call.
type Request struct {
	System string
	Prompt string
	// Model overrides the backend default when set.
	Model string
	// ImageURL turns the call into a vision request.
	ImageURL string
	Schema   Schema
	// Normalize rewrites the decoded document before schema validation.
	Normalize func(doc any) any
}

// Generator produces a value conforming to req.Schema and decodes it into out.
type Generator interface {
	Generate(ctx context.Context, req Request, out any) error
}

// Prompt is the backend-neutral completion request.
type Prompt struct {
	System   string
	User     string
	Model    string
	ImageURL string
}

// Completer returns the raw text of a JSON-mode completion.
type Completer interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// CompleterFunc adapts a function to Completer.
type CompleterFunc func(ctx context.Context, prompt Prompt) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt Prompt) (string, error) {
	return f(ctx, prompt)
}

// Structured implements Generator over any Completer.
type Structured struct {
	completer Completer
	logger    *slog.Logger
}

// NewStructured wraps completer with decode, normalize, and validation steps.
func NewStructured(completer Completer, logger *slog.Logger) *Structured {
	return &Structured{
		completer: completer,
		logger:    logging.NewComponentLogger(logger, "generation"),
	}
}

// Generate runs one structured call.
func (s *Structured) Generate(ctx context.Context, req Request, out any) error {
	if s == nil || s.completer == nil {
		return fmt.Errorf("%w: %w: generator not configured", ErrTransport, services.ErrConfiguration)
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return fmt.Errorf("%w: prompt required", ErrTransport)
	}
	if _, ok := services.RequestIDFromContext(ctx); !ok {
		ctx = services.WithRequestID(ctx, uuid.NewString())
	}
	logger := logging.WithContext(ctx, s.logger)

	started := time.Now()
	raw, err := s.completer.Complete(ctx, Prompt{
		System:   systemWithSchema(req.System, req.Schema),
		User:     req.Prompt,
		Model:    req.Model,
		ImageURL: req.ImageURL,
	})
	elapsed := time.Since(started)
	if err != nil {
		logger.Debug("generation call failed",
			logging.String("model", req.Model),
			logging.Duration("elapsed", elapsed),
			logging.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	logger.Debug("generation call completed",
		logging.String("model", req.Model),
		logging.Bool("vision", req.ImageURL != ""),
		logging.Duration("elapsed", elapsed),
		logging.Int("reply_bytes", len(raw)),
	)
	return Decode(raw, req, out)
}

// Decode applies the parse, normalize, validate, and bind steps to a raw reply.
func Decode(raw string, req Request, out any) error {
	var doc any
	if err := llm.DecodeLLMJSON(raw, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrParse, err)
	}
	if req.Normalize != nil {
		doc = req.Normalize(doc)
	}
	if err := Validate(req.Schema, doc); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: re-encode: %w", ErrSchema, err)
	}
	if err := json.Unmarshal(encoded, out); err != nil {
		return fmt.Errorf("%w: bind: %w", ErrSchema, err)
	}
	return nil
}

func systemWithSchema(system string, schema Schema) string {
	system = strings.TrimSpace(system)
	if len(schema) == 0 {
		return system
	}
	encoded, err := json.Marshal(schema)
	if err != nil {
		return system
	}
	suffix := "Respond with a single JSON object that conforms to this JSON schema:\n" + string(encoded)
	if system == "" {
		return suffix
	}
	return system + "\n\n" + suffix
}
