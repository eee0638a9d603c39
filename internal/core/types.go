package core

// Size describes the dimensions of a simulation view in pixels.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract shared by the frontends and the HUD.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
}
