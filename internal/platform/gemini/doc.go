// Package gemini implements the generation.Generator interface on top of
// Google's Gemini API, including retry with exponential backoff and the
// mapping of provider errors onto the generation package's typed sentinels.
package gemini
