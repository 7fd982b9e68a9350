// Package eval runs expressions against loaded documents.
//
// Expressions use the expr language. The environment exposes the
// cursor's entries and sections as variables, plus a small set of
// document functions:
//
//	get("server.port")     // value or section at a path
//	has("server.tls")      // path exists
//	whereami()             // the cursor's own path
//	getenv("HOME")         // process environment
//
// Assert evaluates to a boolean for config validation; Expand
// interpolates ${...} expressions inside strings.
package eval
