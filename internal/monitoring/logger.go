// Package monitoring carries the package-level diagnostic logger shared by the
// model layer and the mesh database. Non-fatal conditions (a missing but
// inferable entity tag, a schema migration on open) are reported here rather
// than returned as errors.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests can redirect it to capture warnings.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}
