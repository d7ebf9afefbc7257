package mocks

// Sink is a mock implementation of ports.DebugSink.
type Sink struct {
	EnabledValue bool

	SaveSessionJSONFunc    func(data []byte) error
	SaveLumaPlaneFunc      func(index, width, height int, nv21 []byte) error
	SaveProcessedFrameFunc func(index, width, height int, rgba []byte) error

	SessionJSON     [][]byte
	LumaPlanes      []int
	ProcessedFrames []int
}

func (m *Sink) Enabled() bool {
	return m.EnabledValue
}

func (m *Sink) SaveSessionJSON(data []byte) error {
	m.SessionJSON = append(m.SessionJSON, data)
	if m.SaveSessionJSONFunc != nil {
		return m.SaveSessionJSONFunc(data)
	}
	return nil
}

func (m *Sink) SaveLumaPlane(index, width, height int, nv21 []byte) error {
	m.LumaPlanes = append(m.LumaPlanes, index)
	if m.SaveLumaPlaneFunc != nil {
		return m.SaveLumaPlaneFunc(index, width, height, nv21)
	}
	return nil
}

func (m *Sink) SaveProcessedFrame(index, width, height int, rgba []byte) error {
	m.ProcessedFrames = append(m.ProcessedFrames, index)
	if m.SaveProcessedFrameFunc != nil {
		return m.SaveProcessedFrameFunc(index, width, height, rgba)
	}
	return nil
}
