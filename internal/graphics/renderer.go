package graphics

import (
	"image/color"

	"car-showroom/internal/app"
	"car-showroom/internal/config"
	"car-showroom/internal/navigation"
	"car-showroom/internal/scenegraph"
	"car-showroom/internal/ui"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// lightDir points from the scene towards the directional light.
var lightDir = [3]float32{0.4, 1, 0.6}

var outlineColor = rl.NewColor(255, 0, 0, 255)

// Renderer draws one application frame: 3D scene, outline, labels, 2D
// overlay and the podium control panel.
type Renderer struct {
	models   *ModelLoader
	prims    *primitives
	env      *environment
	overlay  *Overlay
	panel    *Panel
	logger   *log.Logger
	near     float64
	far      float64
	lit      litShader
	base     rl.Material
	ready    bool
	textures map[uint64]rl.Texture2D
}

// NewRenderer prepares a renderer. GPU resources are created on the first
// Draw.
func NewRenderer(cfg config.Config, models *ModelLoader, overlay *Overlay, panel *Panel, logger *log.Logger) *Renderer {
	skybox := ""
	if cfg.Assets.Skybox != "" {
		skybox = joinAsset(cfg.Assets.Root, cfg.Assets.Skybox)
	}
	return &Renderer{
		models:   models,
		prims:    newPrimitives(),
		env:      newEnvironment(skybox, cfg.Assets.MaxTextureEdge, logger),
		overlay:  overlay,
		panel:    panel,
		logger:   logger,
		near:     float64(cfg.Camera.Near),
		far:      float64(cfg.Camera.Far),
		textures: make(map[uint64]rl.Texture2D),
	}
}

func (r *Renderer) ensureReady() {
	if r.ready {
		return
	}
	r.ready = true
	r.lit = loadLitShader()
	r.base = rl.LoadMaterialDefault()
	if r.lit.valid() {
		r.base.Shader = r.lit.shader
	} else {
		r.logger.Warn("lit shader failed to compile; using flat shading")
	}
	rl.SetClipPlanes(r.near, r.far)
}

// Draw renders a. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(a *app.App) {
	r.ensureReady()
	view := a.Camera()
	cam := camera3D(view)

	rl.BeginMode3D(cam)
	r.env.drawSkybox(cam)
	if a.GridVisible() {
		drawGrid()
	}
	if r.lit.valid() {
		p := view.Position
		r.lit.setFrame([3]float32{p[0], p[1], p[2]}, lightDir)
	}
	scene := a.Scene()
	if scene != nil {
		r.drawNode(scene)
	}
	for _, n := range a.OutlineTargets() {
		b := n.WorldBounds()
		if !b.IsEmpty() {
			rl.DrawBoundingBox(rl.BoundingBox{Min: toRL(b.Min), Max: toRL(b.Max)}, outlineColor)
		}
	}
	rl.EndMode3D()

	if scene != nil {
		r.drawLabels(scene, cam, a.UI().LabelStyle())
	}
	r.overlay.Draw(a.Items())
	if a.Route() == navigation.RoutePodium {
		r.panel.Draw(a.Podium().Panel())
	}
	if a.PointerCursor() {
		rl.SetMouseCursor(rl.MouseCursorPointingHand)
	} else {
		rl.SetMouseCursor(rl.MouseCursorDefault)
	}
}

func (r *Renderer) drawNode(n *scenegraph.Node) {
	if !n.Visible {
		return
	}
	if n.Mesh != nil {
		r.drawMesh(n.Mesh, toMatrix(n.WorldMatrix()))
	}
	for _, c := range n.Children() {
		r.drawNode(c)
	}
}

func (r *Renderer) drawMesh(m *scenegraph.Mesh, world rl.Matrix) {
	if scenegraph.IsPrimitive(m.Key) {
		p, ok := r.prims.get(m.Key)
		if !ok {
			return
		}
		mtl := r.base
		r.drawWith(p.mesh, &mtl, m.Material, rl.MatrixMultiply(p.offset, world), false)
		return
	}
	mesh, mtl, ok := r.models.Mesh(m.Key, m.Index)
	if !ok {
		return
	}
	if r.lit.valid() {
		mtl.Shader = r.lit.shader
	}
	r.drawWith(mesh, &mtl, m.Material, world, true)
}

// drawWith applies mat to mtl for one draw. The albedo map is shared with the
// loaded model, so its color and texture are restored afterwards.
func (r *Renderer) drawWith(mesh rl.Mesh, mtl *rl.Material, mat *scenegraph.Material, transform rl.Matrix, modelTexture bool) {
	albedo := mtl.GetMap(rl.MapAlbedo)
	saved := *albedo
	defer func() { *albedo = saved }()

	textured := modelTexture
	tiling := [2]float32{1, 1}
	var emissive [3]float32
	roughness, metalness := float32(1), float32(0)
	if mat != nil {
		albedo.Color = toColor(mat.Color)
		if mat.ColorMap != nil {
			albedo.Texture = r.texture(mat.ColorMap)
			tiling = mat.ColorMap.Repeat
			textured = true
		}
		e := mat.Emissive.Mul(mat.EmissiveIntensity)
		emissive = [3]float32{e[0], e[1], e[2]}
		roughness, metalness = mat.Roughness, mat.Metalness
	}
	if r.lit.valid() && mtl.Shader.ID == r.lit.shader.ID {
		r.lit.setSurface(roughness, metalness, emissive, tiling, textured)
	}
	rl.DrawMesh(mesh, *mtl, transform)
}

// texture uploads t once and returns the GPU copy.
func (r *Renderer) texture(t *scenegraph.Texture) rl.Texture2D {
	if tex, ok := r.textures[t.ID]; ok {
		return tex
	}
	img := rl.NewImageFromImage(t.Image)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.GenTextureMipmaps(&tex)
	rl.SetTextureFilter(tex, rl.FilterTrilinear)
	rl.SetTextureWrap(tex, rl.WrapRepeat)
	r.textures[t.ID] = tex
	r.logger.Debug("texture uploaded", "name", t.Name, "w", tex.Width, "h", tex.Height)
	return tex
}

// drawLabels projects every visible label onto the screen.
func (r *Renderer) drawLabels(root *scenegraph.Node, cam rl.Camera3D, style ui.ComputedStyle) {
	size := float32(style.FontSize)
	root.Walk(func(n *scenegraph.Node) bool {
		if !n.Visible {
			return false
		}
		if n.Label == "" {
			return true
		}
		pos := n.WorldPosition()
		// Skip labels behind the camera.
		forward := fromRL(cam.Target).Sub(fromRL(cam.Position))
		if pos.Sub(fromRL(cam.Position)).Dot(forward) <= 0 {
			return true
		}
		sp := rl.GetWorldToScreen(toRL(pos), cam)
		w := r.overlay.Measure(n.Label, style.FontSize)
		pad := float32(style.Padding)
		rect := rl.NewRectangle(sp.X-w/2-pad, sp.Y-size/2-pad, w+2*pad, size+2*pad)
		if style.Background.A > 0 {
			rl.DrawRectangleRec(rect, rgba(style.Background))
		}
		r.overlay.Text(n.Label, rl.NewVector2(rect.X+pad, rect.Y+pad), size, rgba(style.Color))
		return true
	})
}

// Close releases GPU resources owned by the renderer.
func (r *Renderer) Close() {
	for id, t := range r.textures {
		rl.UnloadTexture(t)
		delete(r.textures, id)
	}
	r.prims.unload()
	r.env.unload()
	if r.ready && r.lit.valid() {
		rl.UnloadShader(r.lit.shader)
	}
}

func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toRL(v mgl32.Vec3) rl.Vector3   { return rl.NewVector3(v[0], v[1], v[2]) }
func fromRL(v rl.Vector3) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

func toColor(c mgl32.Vec4) rl.Color {
	return rl.NewColor(uint8(c[0]*255), uint8(c[1]*255), uint8(c[2]*255), uint8(c[3]*255))
}

func rgba(c color.RGBA) rl.Color { return rl.NewColor(c.R, c.G, c.B, c.A) }
