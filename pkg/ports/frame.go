package ports

// Plane describes one component plane of a raw capture buffer. Row stride
// may exceed the pixel width and pixel stride may exceed 1; element (r, c)
// lives at Data[r*RowStride + c*PixelStride].
type Plane struct {
	Data        []byte
	RowStride   int
	PixelStride int
}

// RawFrame is an immutable view of a captured planar YUV image (full
// resolution luma, half resolution chroma). It is only valid for the
// duration of the delivery that carries it: the receiver must copy or
// convert the planes before returning, because the source is free to reuse
// the underlying storage for the next frame.
type RawFrame struct {
	Width  int
	Height int
	Y      Plane
	U      Plane
	V      Plane
}
