// Package normalisers provides implementations of the Normaliser interface
// for document formats that can be imported as pages. Each normaliser
// parses a specific MIME type into a page draft of typed blocks.
//
// Normalisers are registered with the Registry at startup.
package normalisers
