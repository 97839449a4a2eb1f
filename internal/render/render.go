// Package render defines the presentation boundary the engine core talks to.
// The core creates handles, moves them, and destroys them; drawing and frame
// playback belong to the backend behind these interfaces.
package render

// Handle is one on-screen object.
type Handle interface {
	X() float64
	Y() float64
	SetPosition(x, y float64)
	// Attached reports whether the handle is still alive in the scene
	// graph, on stage or not. A handle destroyed from outside the core
	// reports false, which the core treats as an implicit destroy of the
	// owning entity.
	Attached() bool
	// Play starts frame playback from the first frame.
	Play()
	// SetAnimation swaps the frame sequence and restarts playback.
	SetAnimation(name string) error
	Destroy()
}

// Stage creates handles and controls their visibility.
type Stage interface {
	// NewHandle creates a detached handle positioned at (x, y).
	NewHandle(anim string, x, y float64) (Handle, error)
	// Add makes h visible. Adding a destroyed handle is a no-op.
	Add(h Handle)
	// Remove hides h. Removing a handle not on stage is a no-op.
	Remove(h Handle)
	// Bounds returns the playfield size.
	Bounds() (width, height float64)
}
