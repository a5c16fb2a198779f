package pump

// ResolveDirection derives the commanded direction from the two switch levels of
// the current tick. Forward wins when both are pressed. No state is carried
// between ticks and no debouncing is done here.
func ResolveDirection(forwardPressed, reversePressed bool) Direction {
	switch {
	case forwardPressed:
		return Forward
	case reversePressed:
		return Reverse
	default:
		return Off
	}
}
