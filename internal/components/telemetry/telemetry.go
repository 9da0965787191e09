package telemetry

import "fmt"

// API is an abstraction over logging/metrics so that failure reporting can be
// asserted on in tests instead of disappearing into stderr.
//
// Report ids identify the *component* that broke, not the specific line that
// broke: `client.login`, not `client.login-csrf-parse`. All lowercase, dashes
// between words, dots between component and method. Extra detail goes into
// params or error wrapping.
type API interface {
	// ReportBroken reports a component that has broken in a way that should
	// be addressed.
	ReportBroken(id string, params ...any)

	// ReportWarning reports a scenario that is not necessarily brokenness but
	// may deserve investigation.
	ReportWarning(id string, params ...any)

	// ReportDebug reports debug information ignored in production.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of an event at the current time.
	ReportCount(id string, count int64)
}

// ScopedAPI prefixes every report with a namespace, like creating a sub
// logger with a fixed prefix.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}

// NopAPI discards everything. Useful in tests that exercise failure paths on
// purpose.
type NopAPI struct{}

func (NopAPI) ReportBroken(id string, params ...any)  {}
func (NopAPI) ReportWarning(id string, params ...any) {}
func (NopAPI) ReportDebug(msg string, params ...any)  {}
func (NopAPI) ReportCount(id string, count int64)     {}
