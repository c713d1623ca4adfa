package graphics

import (
	"math"

	"car-showroom/internal/assets"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 500
	gridMinorStep  = 10
	gridMajorStep  = 100
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	skyboxScale    = 5000
)

// environment draws the cube-mapped skybox and the axes grid.
type environment struct {
	dir     string
	maxEdge int
	logger  *log.Logger

	pending bool
	loaded  bool
	tex     rl.Texture2D
	mesh    rl.Mesh
	mtl     rl.Material
}

// newEnvironment remembers the face directory. GPU loading is deferred to the
// first draw so it runs after the window exists.
func newEnvironment(dir string, maxEdge int, logger *log.Logger) *environment {
	return &environment{dir: dir, maxEdge: maxEdge, logger: logger, pending: dir != ""}
}

func (e *environment) ensureLoaded() {
	if !e.pending {
		return
	}
	e.pending = false

	strip, err := assets.LoadSkyboxStrip(e.dir, e.maxEdge)
	if err != nil {
		e.logger.Warn("skybox unavailable", "dir", e.dir, "err", err)
		return
	}
	img := rl.NewImageFromImage(strip)
	e.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutLineHorizontal)
	rl.UnloadImage(img)
	if !rl.IsTextureValid(e.tex) {
		e.logger.Warn("skybox cubemap upload failed", "dir", e.dir)
		return
	}
	shader := rl.LoadShaderFromMemory(skyboxVS, skyboxFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(e.tex)
		return
	}
	// Sampler uniforms are ints; the slice carries the raw bits.
	unit := []float32{math.Float32frombits(uint32(rl.MapCubemap))}
	rl.SetShaderValue(shader, rl.GetShaderLocation(shader, "environmentMap"), unit, rl.ShaderUniformInt)

	e.mesh = rl.GenMeshCube(1, 1, 1)
	e.mtl = rl.LoadMaterialDefault()
	e.mtl.Shader = shader
	rl.SetMaterialTexture(&e.mtl, rl.MapCubemap, e.tex)
	e.loaded = true
	e.logger.Debug("skybox loaded", "dir", e.dir)
}

// drawSkybox draws a large cube centered on the camera. Call first inside
// BeginMode3D.
func (e *environment) drawSkybox(cam rl.Camera3D) {
	e.ensureLoaded()
	if !e.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	pos := cam.Position
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(pos.X, pos.Y, pos.Z),
	)
	rl.DrawMesh(e.mesh, e.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

// drawGrid draws a grid on the XZ plane with major/minor lines and axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisY := rl.NewColor(80, 220, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), 0, -gridExtent
		end.X, end.Y, end.Z = float32(i), 0, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, 0, float32(i)
		end.X, end.Y, end.Z = gridExtent, 0, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	rl.DrawLine3D(rl.NewVector3(-gridExtent, 0, 0), rl.NewVector3(gridExtent, 0, 0), axisX)
	rl.DrawLine3D(rl.NewVector3(0, -gridExtent, 0), rl.NewVector3(0, gridExtent, 0), axisY)
	rl.DrawLine3D(rl.NewVector3(0, 0, -gridExtent), rl.NewVector3(0, 0, gridExtent), axisZ)
}

func (e *environment) unload() {
	if !e.loaded {
		return
	}
	rl.UnloadTexture(e.tex)
	rl.UnloadShader(e.mtl.Shader)
	rl.UnloadMesh(&e.mesh)
	e.loaded = false
}
