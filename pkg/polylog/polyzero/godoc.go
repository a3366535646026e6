// Package polyzero implements polylog.Logger on top of github.com/rs/zerolog.
// It is the default backend and sets polylog.DefaultContextLogger on import.
package polyzero
