package player

// Key names accepted by HandleKey. They follow DOM KeyboardEvent.key values
// so any host can forward keys without translation tables of its own.
const (
	KeyArrowRight = "ArrowRight"
	KeyArrowLeft  = "ArrowLeft"
	KeySpace      = " "
	KeyEscape     = "Escape"
)

// HandleKey applies the keyboard contract and reports whether the key
// was bound: ArrowRight/Space advance, ArrowLeft retreats, p/P toggles
// playback, Escape collapses the expanded card.
func (c *Controller) HandleKey(key string) bool {
	switch key {
	case KeyArrowRight, KeySpace, "Space":
		c.Advance()
	case KeyArrowLeft:
		c.Retreat()
	case "p", "P":
		c.TogglePlay()
	case KeyEscape:
		c.CollapseCard()
	default:
		return false
	}
	return true
}
