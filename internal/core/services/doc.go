// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The text matching used by search and replace lives here as pure
// functions so it can be tested without any store.
package services
