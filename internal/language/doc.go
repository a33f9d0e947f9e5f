// Package language resolves the presentation language a user names.
//
// Input may be a language name ("german"), an ISO 639-1 or 639-2 code
// ("de", "deu", "ger"), or a BCP 47 tag ("pt-BR"). DisplayName yields the
// English name used in generation prompts; Tag yields the proofing language
// written into the deck.
package language
