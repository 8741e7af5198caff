package tui

import "time"

const (
	defaultToastTTL   = 5 * time.Second
	defaultMaxToasts  = 5
	toastTickInterval = 100 * time.Millisecond
	toastWidth        = 50
)

// ViewType identifies which top-level view is shown.
type ViewType int

const (
	ViewFoods ViewType = iota
	ViewDetail
	ViewOrders
	ViewHelp
)

// OrderScope selects which order listing the orders view shows.
type OrderScope int

const (
	ScopeAll OrderScope = iota
	ScopeMine
	ScopeAccepted
)

func (s OrderScope) String() string {
	switch s {
	case ScopeMine:
		return "mine"
	case ScopeAccepted:
		return "accepted"
	default:
		return "all"
	}
}

// Icons used by toast rendering.
const (
	IconNotifyInfo    = "i"
	IconNotifyWarning = "!"
	IconNotifyError   = "x"
)
