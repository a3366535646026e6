// Package polylog is a thin logging facade. Library code depends only on the
// Logger and Event interfaces declared here; a concrete backend (zerolog via
// polyzero, or zap via polyzap) is chosen by the binary at start-up.
package polylog
