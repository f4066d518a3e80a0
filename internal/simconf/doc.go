// Package simconf provides an in-memory conference engine.
//
// The engine implements the Conference and Panels collaborators of the
// control channel and reports every state change through a Notifier, so a
// host can drive a complete embedding session without real media. It backs
// the serve command and the end-to-end tests.
package simconf
