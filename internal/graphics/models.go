package graphics

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"car-showroom/internal/assets"
	"car-showroom/internal/scenegraph"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

type modelJob struct {
	ctx  context.Context
	path string
	full string
	ch   chan assets.Result
}

// ModelLoader loads models for the scene graph. Files are checked in a
// goroutine; the GPU upload is queued and runs in Service on the render thread.
// Each uploaded model stays resident and is drawn through Mesh.
type ModelLoader struct {
	root   string
	logger *log.Logger
	jobs   chan modelJob
	models map[string]rl.Model
}

// NewModelLoader resolves model paths against root.
func NewModelLoader(root string, logger *log.Logger) *ModelLoader {
	return &ModelLoader{
		root:   root,
		logger: logger,
		jobs:   make(chan modelJob, 64),
		models: make(map[string]rl.Model),
	}
}

// Load implements assets.Loader.
func (l *ModelLoader) Load(ctx context.Context, path string) <-chan assets.Result {
	ch := make(chan assets.Result, 1)
	go func() {
		if err := assets.CheckModelPath(path); err != nil {
			ch <- assets.Result{Path: path, Err: err}
			return
		}
		full := filepath.Join(l.root, path)
		if _, err := os.Stat(full); err != nil {
			ch <- assets.Result{Path: path, Err: fmt.Errorf("load model: %w", err)}
			return
		}
		select {
		case l.jobs <- modelJob{ctx: ctx, path: path, full: full, ch: ch}:
		case <-ctx.Done():
		}
	}()
	return ch
}

// Service uploads up to n queued models. It never blocks.
func (l *ModelLoader) Service(n int) {
	for i := 0; i < n; i++ {
		select {
		case job := <-l.jobs:
			if job.ctx.Err() != nil {
				continue
			}
			node, err := l.upload(job.path, job.full)
			job.ch <- assets.Result{Path: job.path, Node: node, Err: err}
		default:
			return
		}
	}
}

func (l *ModelLoader) upload(path, full string) (*scenegraph.Node, error) {
	model, ok := l.models[path]
	if !ok {
		model = rl.LoadModel(full)
		if model.MeshCount == 0 {
			rl.UnloadModel(model)
			return nil, fmt.Errorf("%w: %s", assets.ErrEmptyModel, path)
		}
		l.models[path] = model
		l.logger.Debug("model uploaded", "path", path, "meshes", model.MeshCount)
	}

	root := scenegraph.NewGroup(filepath.Base(filepath.Dir(path)))
	meshes := model.GetMeshes()
	materials := model.GetMaterials()
	meshMaterial := unsafe.Slice(model.MeshMaterial, model.MeshCount)
	for i, mesh := range meshes {
		box := rl.GetMeshBoundingBox(mesh)
		mat := scenegraph.NewMaterial(0xffffff, 1, 0)
		if idx := int(meshMaterial[i]); idx < len(materials) {
			if albedo := materials[idx].GetMap(rl.MapAlbedo); albedo != nil {
				c := albedo.Color
				mat.Color = mgl32.Vec4{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255}
			}
		}
		root.AddChild(scenegraph.NewMeshNode(fmt.Sprintf("mesh-%d", i), &scenegraph.Mesh{
			Key:      path,
			Index:    i,
			Bounds:   scenegraph.NewBox(fromRL(box.Min), fromRL(box.Max)),
			Material: mat,
		}))
	}
	return root, nil
}

// Mesh returns the uploaded mesh and its original material.
func (l *ModelLoader) Mesh(key string, index int) (rl.Mesh, rl.Material, bool) {
	model, ok := l.models[key]
	if !ok || index < 0 || index >= int(model.MeshCount) {
		return rl.Mesh{}, rl.Material{}, false
	}
	meshMaterial := unsafe.Slice(model.MeshMaterial, model.MeshCount)
	materials := model.GetMaterials()
	mat := materials[0]
	if idx := int(meshMaterial[index]); idx < len(materials) {
		mat = materials[idx]
	}
	return model.GetMeshes()[index], mat, true
}

// Close unloads every model.
func (l *ModelLoader) Close() {
	for k, m := range l.models {
		rl.UnloadModel(m)
		delete(l.models, k)
	}
}
