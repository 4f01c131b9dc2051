package tui

import "github.com/runoshun/planner/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgSnapshot carries the store state after a commit or an explicit load.
type MsgSnapshot struct {
	Snapshot domain.Snapshot
}

func (MsgSnapshot) sealed() {}

// MsgActionDone is sent when a mutation finished.
type MsgActionDone struct {
	Status string
}

func (MsgActionDone) sealed() {}

// MsgError is sent when an error occurs.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgClearError is sent to clear the current error message.
type MsgClearError struct{}

func (MsgClearError) sealed() {}

// MsgStoreChanged is sent for every store commit observed by the subscription.
type MsgStoreChanged struct {
	Snapshot domain.Snapshot
}

func (MsgStoreChanged) sealed() {}
