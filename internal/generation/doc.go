// Package generation turns prompt/schema pairs into typed values.
//
// A Generator sends a Request to a text or vision backend, decodes the JSON
// reply, runs the request's Normalize hook, validates the result against the
// request's JSON schema, and finally decodes it into the caller's struct.
// Failures are classified with ErrTransport, ErrParse, and ErrSchema so stage
// code can choose between retry, degrade, and abort.
//
// NewFromConfig selects the backend from the [generation] config section:
// openai (openai-go), openrouter (OpenAI-compatible HTTP client with retry),
// or gemini (genai).
package generation
