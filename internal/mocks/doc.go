// Package mocks provides hand-written test doubles for the store interfaces
// and external providers. Each mock carries optional function overrides for
// per-test behavior plus a usable in-memory default, and tracks calls for
// verification.
package mocks
