// Package textutil provides the text helpers shared by pipeline stages:
// term-frequency fingerprints with cosine similarity, used to spot speaker
// notes that merely restate slide bullets, and filename sanitization for
// generated artifacts.
//
// Tokenization case-folds text, splits on anything that is not a letter or
// digit in any script, and drops words shorter than three runes.
package textutil
