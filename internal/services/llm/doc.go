// Package llm provides a chat client for OpenAI-compatible JSON completions,
// used as the OpenRouter generation backend.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send a system/user prompt pair, optionally with an image
// for vision models, and receive the raw JSON content.
// Client.HealthCheck: verify API key and model availability.
// DecodeLLMJSON: tolerant decoding of model output (code fences, prose).
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, empty completions, and
// network timeouts with exponential backoff (base 1s, max 10s, up to 3
// attempts by default). Context cancellation aborts retries immediately.
package llm
