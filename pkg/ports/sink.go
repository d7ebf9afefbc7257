package ports

// DebugSink abstracts debug output for intermediate pipeline results.
// It allows saving in-flight buffers for inspection without coupling the
// pipeline to an output format.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSessionJSON saves session metadata as JSON.
	SaveSessionJSON(data []byte) error

	// SaveLumaPlane saves the luma plane of a semi-planar frame.
	SaveLumaPlane(index, width, height int, nv21 []byte) error

	// SaveProcessedFrame saves a packed RGBA frame after processing.
	SaveProcessedFrame(index, width, height int, rgba []byte) error
}
