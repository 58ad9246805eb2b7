// ABOUTME: Playback state enumeration
// ABOUTME: Stopped -> Playing <-> Paused, mutated only by the Player
package player

// State represents the playback state.
type State int

const (
	StateStopped State = iota // No stream live, buffer position discarded or never loaded
	StatePlaying              // Stream live, hardware draining the buffer
	StatePaused               // Stream detached, buffer position preserved
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}
