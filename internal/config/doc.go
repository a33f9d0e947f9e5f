// Package config loads, normalizes, and validates deckwright configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENAI_API_KEY and UNSPLASH_ACCESS_KEY. Per-task model overrides follow the
// OPENAI_MODEL_* variables so a single .env file can drive every backend.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical theme names, and clear validation errors.
package config
