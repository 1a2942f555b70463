package explorer

// Action represents a viewer input action.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionZoomIn
	ActionZoomOut
	ActionOctavesUp
	ActionOctavesDown
	ActionPersistenceUp
	ActionPersistenceDown
	ActionLacunarityUp
	ActionLacunarityDown
	ActionFrequencyUp
	ActionFrequencyDown
	ActionSliceForward
	ActionSliceBack
	ActionToggleAnimation
	ActionCyclePalette
	ActionReset
	ActionQuit
)

// InputEvent carries a viewer action into the loop.
type InputEvent struct {
	ViewerID string
	Action   Action
}
