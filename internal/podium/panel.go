package podium

import (
	"context"
	"path/filepath"

	"car-showroom/internal/assets"
	"car-showroom/internal/scenegraph"

	"github.com/go-gl/mathgl/mgl32"
)

// Field is one car container transform control.
type Field int

const (
	PosX Field = iota
	PosY
	PosZ
	RotX
	RotY
	RotZ
	fieldCount
)

var fieldNames = [fieldCount]string{"posX", "posY", "posZ", "rotX", "rotY", "rotZ"}

func (f Field) String() string { return fieldNames[f] }

// Fields lists the transform controls in panel order.
func Fields() []Field {
	return []Field{PosX, PosY, PosZ, RotX, RotY, RotZ}
}

// Range bounds a control.
type Range struct {
	Min, Max, Step float32
}

// TextureMode selects the podium surface.
type TextureMode int

const (
	TextureDefault TextureMode = iota
	TextureCustom
)

func (m TextureMode) String() string {
	if m == TextureCustom {
		return "Custom Upload"
	}
	return "Default"
}

var fallbackDefaults = mgl32.Vec3{0, 5, -CarZOffset}

// ControlPanel edits the car container, auto-rotation and podium texture.
// Rotations are shown in degrees and stored in radians. Positions are shown
// relative to the reported defaults: the seated container reads as Defaults.
type ControlPanel struct {
	c *Composer

	defaults    mgl32.Vec3
	lift        mgl32.Vec3
	hasDefaults bool

	mode      TextureMode
	customMap *scenegraph.Texture

	uploadCancel context.CancelFunc
	upload       <-chan assets.ImageResult
}

func newControlPanel(c *Composer) *ControlPanel {
	return &ControlPanel{c: c, defaults: fallbackDefaults}
}

func (p *ControlPanel) reset() {
	p.cancelUpload()
	p.defaults = fallbackDefaults
	p.lift = mgl32.Vec3{}
	p.hasDefaults = false
	p.mode = TextureDefault
	p.customMap = nil
}

func (p *ControlPanel) setDefaults(reported, seated mgl32.Vec3) {
	p.defaults = reported
	p.lift = reported.Sub(seated)
	p.hasDefaults = true
}

// Defaults returns the container position reported by the last placement, or
// a stock position before any placement.
func (p *ControlPanel) Defaults() mgl32.Vec3 { return p.defaults }

// Range returns the bounds of f around the current defaults.
func (p *ControlPanel) Range(f Field) Range {
	d := p.defaults
	switch f {
	case PosX:
		return Range{d[0] - 15, d[0] + 15, 0.1}
	case PosY:
		return Range{d[1] - 5, d[1] + 5, 0.1}
	case PosZ:
		return Range{d[2] - 18, d[2] + 67, 0.1}
	default:
		return Range{-180, 180, 1}
	}
}

// Value reads f from the live container.
func (p *ControlPanel) Value(f Field) float32 {
	n := p.c.container
	if n == nil {
		if f <= PosZ {
			return p.defaults[f]
		}
		return 0
	}
	if f <= PosZ {
		return n.Position[f] + p.lift[f]
	}
	return mgl32.RadToDeg(n.Rotation[f-RotX])
}

// Set writes v, clamped to the range of f, to the live container.
func (p *ControlPanel) Set(f Field, v float32) {
	n := p.c.container
	if n == nil {
		return
	}
	r := p.Range(f)
	v = mgl32.Clamp(v, r.Min, r.Max)
	if f <= PosZ {
		n.Position[f] = v - p.lift[f]
		return
	}
	n.Rotation[f-RotX] = mgl32.DegToRad(v)
}

// Reset seats the container back on the podium with no rotation.
func (p *ControlPanel) Reset() {
	n := p.c.container
	if n == nil {
		return
	}
	n.Position = p.defaults.Sub(p.lift)
	n.Rotation = mgl32.Vec3{}
}

func (p *ControlPanel) AutoRotate() AutoRotate { return p.c.autoRotate }

func (p *ControlPanel) SetAutoRotate(enabled bool) { p.c.autoRotate.Enabled = enabled }

// SetAutoRotateSpeed clamps v to the allowed speed range.
func (p *ControlPanel) SetAutoRotateSpeed(v float32) {
	p.c.autoRotate.Speed = mgl32.Clamp(v, MinAutoRotateSpeed, MaxAutoRotateSpeed)
}

func (p *ControlPanel) TextureMode() TextureMode { return p.mode }

// SetTextureMode switches the selector. Choosing Default drops any uploaded
// texture and restores the stock material.
func (p *ControlPanel) SetTextureMode(m TextureMode) {
	p.mode = m
	if m == TextureDefault {
		p.customMap = nil
		p.c.logger.Info("podium texture reset to default")
	}
	p.c.applyMaterial()
}

// Upload starts decoding the image at path. When it finishes, Update applies
// it to the podium and switches to Custom Upload. A failed decode is logged
// and changes nothing. Starting a new upload abandons the previous one.
func (p *ControlPanel) Upload(path string) {
	if p.c.ctx == nil {
		return
	}
	p.cancelUpload()
	ctx, cancel := context.WithCancel(p.c.ctx)
	p.uploadCancel = cancel
	p.upload = assets.DecodeImageAsync(ctx, path, p.c.cfg.MaxTextureEdge)
	p.c.logger.Info("uploading podium texture", "path", path)
}

// Uploading reports whether a texture is being decoded.
func (p *ControlPanel) Uploading() bool { return p.upload != nil }

// CustomMap returns the uploaded texture, if any.
func (p *ControlPanel) CustomMap() *scenegraph.Texture { return p.customMap }

func (p *ControlPanel) cancelUpload() {
	if p.uploadCancel != nil {
		p.uploadCancel()
	}
	p.uploadCancel = nil
	p.upload = nil
}

func (p *ControlPanel) update() {
	if p.upload == nil {
		return
	}
	var r assets.ImageResult
	select {
	case r = <-p.upload:
	default:
		return
	}
	p.cancelUpload()
	if r.Err != nil {
		p.c.logger.Error("podium texture upload failed", "path", r.Path, "err", r.Err)
		return
	}
	p.customMap = scenegraph.NewTexture(filepath.Base(r.Path), r.Image)
	p.mode = TextureCustom
	p.c.applyMaterial()
	b := r.Image.Bounds()
	p.c.logger.Info("podium texture applied", "name", p.customMap.Name, "size", [2]int{b.Dx(), b.Dy()})
}

func (p *ControlPanel) material() *scenegraph.Material {
	m := DefaultMaterial()
	if p.mode == TextureCustom && p.customMap != nil {
		m.ColorMap = p.customMap
		m.Color = scenegraph.ColorHex(0xffffff)
		m.Roughness = 0.7
		m.Metalness = 0.3
	}
	return m
}
