package scenegraph

import (
	"image"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

var textureSeq atomic.Uint64

// Texture is a decoded image the renderer uploads once per ID. Textures are
// immutable after creation so materials may share them.
type Texture struct {
	ID     uint64
	Name   string
	Image  image.Image
	Repeat [2]float32
}

// NewTexture wraps img with a fresh ID and a 1x1 repeat.
func NewTexture(name string, img image.Image) *Texture {
	return &Texture{
		ID:     textureSeq.Add(1),
		Name:   name,
		Image:  img,
		Repeat: [2]float32{1, 1},
	}
}

// Material is a physically based surface description. Fields the renderer
// cannot express are carried so panels can show and edit them.
type Material struct {
	Color             mgl32.Vec4
	Roughness         float32
	Metalness         float32
	Emissive          mgl32.Vec3
	EmissiveIntensity float32
	ColorMap          *Texture
}

// NewMaterial returns an opaque material of the given 0xRRGGBB color.
func NewMaterial(hex uint32, roughness, metalness float32) *Material {
	return &Material{
		Color:     ColorHex(hex),
		Roughness: roughness,
		Metalness: metalness,
	}
}

// Clone returns a copy that can be mutated without affecting m. The color map
// is shared.
func (m *Material) Clone() *Material {
	if m == nil {
		return nil
	}
	c := *m
	return &c
}

// ColorHex converts 0xRRGGBB to an opaque RGBA vector in [0,1].
func ColorHex(hex uint32) mgl32.Vec4 {
	return mgl32.Vec4{
		float32((hex>>16)&0xff) / 255,
		float32((hex>>8)&0xff) / 255,
		float32(hex&0xff) / 255,
		1,
	}
}
