// Package showroom builds the walk-through garage: ground, garage model, wall
// poster and one car per catalog entry on its display platform.
package showroom

import (
	"context"
	"fmt"

	"car-showroom/internal/assets"
	"car-showroom/internal/catalog"
	"car-showroom/internal/scenegraph"

	"github.com/charmbracelet/log"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	GarageName        = "ShowroomGarage"
	DefaultGaragePath = "garage/garage.glb"
	DefaultFloorImage = "textures/cracked-cement.jpg"

	groundSize         float32 = 5000
	groundY            float32 = -5
	groundRepeat       float32 = 10
	platformHeight     float32 = 10
	platformRadiusMult float32 = 1.2
	labelGap           float32 = 10
	placeholderHeight  float32 = 40
)

var (
	garagePosition = mgl32.Vec3{0, -50, -1500}
	garageScale    = mgl32.Vec3{0.6, 0.3, 0.6}
	posterPosition = mgl32.Vec3{-700, 150, -2200}
	posterSize     = mgl32.Vec3{300, 1, 200}
)

// Config locates the showroom assets.
type Config struct {
	GaragePath     string
	FloorImage     string
	PosterImage    string
	MaxTextureEdge int
}

// DefaultConfig returns the stock asset locations.
func DefaultConfig() Config {
	return Config{
		GaragePath:     DefaultGaragePath,
		FloorImage:     DefaultFloorImage,
		PosterImage:    DefaultFloorImage,
		MaxTextureEdge: assets.DefaultMaxTextureEdge,
	}
}

// CarSlot is one catalog car in the showroom.
type CarSlot struct {
	Record   catalog.CarRecord
	Root     *scenegraph.Node
	Label    *scenegraph.Node
	Model    *scenegraph.Node
	Platform *scenegraph.Node
	Err      error
}

type modelLoad struct {
	carID string // empty for the garage
	ch    <-chan assets.Result
}

type textureLoad struct {
	target *scenegraph.Node
	repeat float32
	ch     <-chan assets.ImageResult
}

// Composer owns the showroom scene graph.
type Composer struct {
	loader  assets.Loader
	catalog *catalog.Catalog
	cfg     Config
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	root   *scenegraph.Node
	ground *scenegraph.Node
	garage *scenegraph.Node
	poster *scenegraph.Node
	cars   []*CarSlot
	byID   map[string]*CarSlot

	models   []modelLoad
	textures []textureLoad
}

// NewComposer returns a composer; call Build to create the scene. The loader
// is expected to share templates between requests for the same path.
func NewComposer(loader assets.Loader, cat *catalog.Catalog, cfg Config, logger *log.Logger) *Composer {
	if cfg.GaragePath == "" {
		cfg.GaragePath = DefaultGaragePath
	}
	return &Composer{
		loader:  loader,
		catalog: cat,
		cfg:     cfg,
		logger:  logger,
		byID:    make(map[string]*CarSlot),
	}
}

// Build creates every node and starts the model and texture loads. Building
// again discards the previous scene.
func (c *Composer) Build() *scenegraph.Node {
	c.Close()
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.root = scenegraph.NewGroup("Showroom")
	c.cars = nil
	c.byID = make(map[string]*CarSlot)

	c.ground = scenegraph.NewPrimitive("Ground", scenegraph.PrimitivePlane,
		mgl32.Vec3{groundSize, 1, groundSize}, scenegraph.NewMaterial(0xffffff, 1, 0))
	c.ground.Position = mgl32.Vec3{0, groundY, 0}
	c.ground.ReceiveShadow = true
	c.root.AddChild(c.ground)
	c.loadTexture(c.ground, c.cfg.FloorImage, groundRepeat)

	c.garage = scenegraph.NewGroup(GarageName)
	c.garage.Position = garagePosition
	c.garage.Scale = garageScale
	c.garage.Interactive = true
	c.root.AddChild(c.garage)
	c.models = append(c.models, modelLoad{ch: c.loader.Load(c.ctx, c.cfg.GaragePath)})

	c.poster = scenegraph.NewPrimitive("WallPoster", scenegraph.PrimitivePlane,
		posterSize, scenegraph.NewMaterial(0xffffff, 1, 0))
	c.poster.Position = posterPosition
	c.poster.Rotation = mgl32.Vec3{math32.Pi / 2, 0, 0}
	c.root.AddChild(c.poster)
	c.loadTexture(c.poster, c.cfg.PosterImage, 1)

	for _, rec := range c.catalog.Cars() {
		c.addCar(rec)
	}
	c.logger.Info("showroom built", "cars", len(c.cars))
	return c.root
}

func (c *Composer) addCar(rec catalog.CarRecord) {
	root := scenegraph.NewCarRoot(rec.Label(), rec.ID)
	root.Position = rec.ShowroomPosition
	root.Rotation = mgl32.Vec3{0, rec.ShowroomRotationY, 0}
	root.Interactive = true

	label := scenegraph.NewGroup("label")
	label.Label = fmt.Sprintf("Loading %s...", rec.Label())
	label.Position = mgl32.Vec3{0, placeholderHeight, 0}
	root.AddChild(label)
	c.root.AddChild(root)

	platform := scenegraph.NewPrimitive("platform-"+rec.ID, scenegraph.PrimitiveCylinder,
		platformSize(rec), scenegraph.NewMaterial(0x333333, 0.6, 0.4))
	platform.Position = PlatformPosition(rec)
	platform.CastShadow = true
	platform.ReceiveShadow = true
	c.root.AddChild(platform)

	slot := &CarSlot{Record: rec, Root: root, Label: label, Platform: platform}
	c.cars = append(c.cars, slot)
	c.byID[rec.ID] = slot
	c.models = append(c.models, modelLoad{carID: rec.ID, ch: c.loader.Load(c.ctx, rec.AssetPath)})
}

// PlatformPosition puts the platform just under the car.
func PlatformPosition(rec catalog.CarRecord) mgl32.Vec3 {
	p := rec.ShowroomPosition
	return mgl32.Vec3{p[0], p[1] - rec.ShowroomScale[1]*0.1 - 5, p[2]}
}

// PlatformRadius scales with the car's footprint.
func PlatformRadius(rec catalog.CarRecord) float32 {
	return math32.Max(rec.ShowroomScale[0], rec.ShowroomScale[2]) * platformRadiusMult
}

func platformSize(rec catalog.CarRecord) mgl32.Vec3 {
	d := PlatformRadius(rec) * 2
	return mgl32.Vec3{d, platformHeight, d}
}

func (c *Composer) loadTexture(target *scenegraph.Node, path string, repeat float32) {
	if path == "" {
		return
	}
	c.textures = append(c.textures, textureLoad{
		target: target,
		repeat: repeat,
		ch:     assets.DecodeImageAsync(c.ctx, path, c.cfg.MaxTextureEdge),
	})
}

// Update applies finished loads. It never blocks.
func (c *Composer) Update() {
	if c.ctx == nil {
		return
	}
	models := c.models[:0]
	for _, l := range c.models {
		r, ok := assets.Poll(l.ch)
		if !ok {
			models = append(models, l)
			continue
		}
		if l.carID == "" {
			c.applyGarage(r)
		} else {
			c.applyCar(l.carID, r)
		}
	}
	c.models = models

	textures := c.textures[:0]
	for _, l := range c.textures {
		select {
		case r := <-l.ch:
			c.applyTexture(l, r)
		default:
			textures = append(textures, l)
		}
	}
	c.textures = textures
}

func (c *Composer) applyGarage(r assets.Result) {
	if r.Err != nil {
		c.logger.Error("garage load failed", "path", c.cfg.GaragePath, "err", r.Err)
		return
	}
	r.Node.SetShadows(true, true)
	c.garage.AddChild(r.Node)
}

func (c *Composer) applyCar(id string, r assets.Result) {
	slot := c.byID[id]
	if slot == nil {
		return
	}
	if r.Err != nil {
		slot.Err = r.Err
		slot.Label.Label = fmt.Sprintf("Failed to load %s", slot.Record.Label())
		c.logger.Error("car load failed", "car", id, "path", slot.Record.AssetPath, "err", r.Err)
		return
	}
	model := r.Node
	model.Scale = slot.Record.ShowroomScale
	model.SetShadows(true, false)
	slot.Root.AddChild(model)
	slot.Model = model

	top := placeholderHeight
	if box := model.LocalBounds(); !box.IsEmpty() {
		top = box.Max[1] + labelGap
	}
	slot.Label.Position = mgl32.Vec3{0, top, 0}
	slot.Label.Label = slot.Record.Label()
}

func (c *Composer) applyTexture(l textureLoad, r assets.ImageResult) {
	if r.Err != nil {
		c.logger.Warn("texture load failed", "path", r.Path, "err", r.Err)
		return
	}
	tex := scenegraph.NewTexture(r.Path, r.Image)
	tex.Repeat = [2]float32{l.repeat, l.repeat}
	l.target.Mesh.Material.ColorMap = tex
}

// Pending reports how many loads have not finished.
func (c *Composer) Pending() int { return len(c.models) + len(c.textures) }

// Close cancels outstanding loads.
func (c *Composer) Close() {
	if c.cancel != nil {
		c.cancel()
	}
	c.ctx, c.cancel = nil, nil
	c.models, c.textures = nil, nil
}

func (c *Composer) Root() *scenegraph.Node   { return c.root }
func (c *Composer) Garage() *scenegraph.Node { return c.garage }
func (c *Composer) Ground() *scenegraph.Node { return c.ground }
func (c *Composer) Poster() *scenegraph.Node { return c.poster }
func (c *Composer) Cars() []*CarSlot         { return c.cars }

// Car returns the slot of a catalog car.
func (c *Composer) Car(id string) (*CarSlot, bool) {
	s, ok := c.byID[id]
	return s, ok
}
