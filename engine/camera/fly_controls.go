package camera

// FlyControls classifies raw input events into look deltas, movement intents and gestures,
// and forwards them to a PoseCapture and a MotionController. Hosts publish events on the
// input.Source it subscribes to and call Update once per frame.
type FlyControls interface {
	// Update advances motion by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed seconds since the previous frame
	Update(dt float32)

	// PoseCapture returns the orientation component the controls drive.
	PoseCapture() PoseCapture

	// MotionController returns the motion component the controls drive.
	MotionController() MotionController

	// Reconfigure applies options to the running controls.
	//
	// Parameters:
	//   - options: functional options to apply
	Reconfigure(options ...FlyControlsOption)

	// Close unsubscribes from the input source and releases the motion controller.
	Close()
}
