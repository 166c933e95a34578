// ============================================================================
// cstring - Terminated string buffers
// ============================================================================
//
// Package:     playground
// Description: Message types for async operations in the playground
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package playground

// savedMsg reports the outcome of storing a run in the history
type savedMsg struct {
	id  string
	err error
}

// clearStatusMsg resets the status line after a save notice
type clearStatusMsg struct {
	seq int
}
