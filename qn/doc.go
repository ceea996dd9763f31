// Package qn provides the common types and interfaces of quill. Handlers,
// API endpoints and commands interact with each other only through this
// package: data models, the access mask value type, handler interfaces and
// the qn.Quill global.
package qn
