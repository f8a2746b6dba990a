package domain

// Switch is a two-state toggle that starts off.
type Switch struct {
	on bool
}

// Flip inverts the switch and returns the new state.
func (s *Switch) Flip() bool {
	s.on = !s.on
	return s.on
}

func (s Switch) On() bool {
	return s.on
}

func (s Switch) Label() string {
	if s.on {
		return "ON"
	}
	return "OFF"
}
