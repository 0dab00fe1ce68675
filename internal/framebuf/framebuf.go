// Package framebuf defines the pixel buffer shape shared between the PPU
// collaborator contract and the rendering backends that consume it.
package framebuf

// Width and Height match the SNES's standard (non-interlaced, non-hires)
// NTSC output resolution.
const (
	Width  = 256
	Height = 224
)

// Buffer holds one rendered frame as packed 0xAARRGGBB pixels.
type Buffer [Width * Height]uint32
