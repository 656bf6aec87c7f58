// Package generation defines the passage-generation boundary: the Generator
// interface, the typed errors implementations must return, and the prompt
// templating shared by all providers.
package generation
