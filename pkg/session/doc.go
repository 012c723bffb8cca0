// Package session implements the staged comparison protocol: a caller loads
// version A and version B through separate calls and then queries any of the
// five precedence predicates against the staged pair.
//
// A Session is an explicit, caller-owned value with its own two slots; there
// is no shared or package-level staging state. Querying a predicate before
// both slots are set returns ErrNotStaged instead of a default answer, and
// identifier introspection outside the staged sequence returns
// ErrIndexOutOfRange.
//
// Store keeps one Session per ID for transports that cannot hold a Go value
// across calls, such as the HTTP API. Sessions expire after an idle TTL.
//
//	s := session.New()
//	s.SetA(version.NewCore(1, 0, 0), "rc.1")
//	s.SetB(version.NewCore(1, 0, 0), "")
//	lt, err := s.IsLesser() // true, nil
package session
