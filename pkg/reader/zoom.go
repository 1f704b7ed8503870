package reader

const (
	MinZoom     = 50
	MaxZoom     = 200
	ZoomStep    = 10
	DefaultZoom = 100
)

// Zoom is a percentage in [MinZoom, MaxZoom].
type Zoom int

func (z Zoom) Step(delta int) Zoom {
	next := int(z) + delta
	if next < MinZoom {
		next = MinZoom
	}
	if next > MaxZoom {
		next = MaxZoom
	}
	return Zoom(next)
}

// Scale applies the zoom to a base dimension.
func (z Zoom) Scale(n int) int {
	return n * int(z) / 100
}

func clampZoom(z int) Zoom {
	return Zoom(DefaultZoom).Step(z - DefaultZoom)
}
