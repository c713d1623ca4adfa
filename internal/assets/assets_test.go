package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"car-showroom/internal/scenegraph"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recv(t *testing.T, ch <-chan Result) Result {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for load")
		return Result{}
	}
}

func modelTemplate(name string) *scenegraph.Node {
	g := scenegraph.NewGroup(name)
	g.AddChild(scenegraph.NewMeshNode("body", &scenegraph.Mesh{
		Key:      name,
		Material: scenegraph.NewMaterial(0xffffff, 1, 0),
	}))
	return g
}

func TestCheckModelPath(t *testing.T) {
	assert.NoError(t, CheckModelPath("cars/a/scene.gltf"))
	assert.NoError(t, CheckModelPath("PODIUM.GLB"))
	assert.ErrorIs(t, CheckModelPath("Car/Car.fbx"), ErrUnsupportedFormat)
	assert.ErrorIs(t, CheckModelPath("noext"), ErrUnsupportedFormat)
}

func TestLoaderFuncAndPoll(t *testing.T) {
	release := make(chan struct{})
	l := LoaderFunc(func(ctx context.Context, path string) (*scenegraph.Node, error) {
		<-release
		return modelTemplate(path), nil
	})
	ch := l.Load(context.Background(), "a.glb")

	_, ok := Poll(ch)
	assert.False(t, ok)

	close(release)
	r := recv(t, ch)
	require.NoError(t, r.Err)
	assert.Equal(t, "a.glb", r.Path)
	assert.Equal(t, "a.glb", r.Node.Name)
}

func TestLoaderFuncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	l := LoaderFunc(func(ctx context.Context, path string) (*scenegraph.Node, error) {
		defer close(done)
		cancel()
		return modelTemplate(path), nil
	})
	ch := l.Load(ctx, "a.glb")
	<-done
	time.Sleep(10 * time.Millisecond)
	_, ok := Poll(ch)
	assert.False(t, ok)
}

func TestTemplateCacheLoadsOnceAndClones(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	l := LoaderFunc(func(ctx context.Context, path string) (*scenegraph.Node, error) {
		calls.Add(1)
		<-release
		return modelTemplate(path), nil
	})
	c := NewTemplateCache(l, log.New(io.Discard))

	a := c.Load(context.Background(), "car.glb")
	b := c.Load(context.Background(), "car.glb")
	close(release)

	ra, rb := recv(t, a), recv(t, b)
	require.NoError(t, ra.Err)
	require.NoError(t, rb.Err)
	assert.NotSame(t, ra.Node, rb.Node)
	assert.NotSame(t, ra.Node.Children()[0].Mesh.Material, rb.Node.Children()[0].Mesh.Material)

	rc := recv(t, c.Load(context.Background(), "car.glb"))
	require.NoError(t, rc.Err)
	assert.NotSame(t, ra.Node, rc.Node)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTemplateCacheRemembersFailure(t *testing.T) {
	var calls atomic.Int32
	boom := errors.New("missing file")
	l := LoaderFunc(func(ctx context.Context, path string) (*scenegraph.Node, error) {
		calls.Add(1)
		return nil, boom
	})
	c := NewTemplateCache(l, log.New(io.Discard))

	r := recv(t, c.Load(context.Background(), "gone.glb"))
	assert.ErrorIs(t, r.Err, boom)
	assert.Nil(t, r.Node)
	r = recv(t, c.Load(context.Background(), "gone.glb"))
	assert.ErrorIs(t, r.Err, boom)
	assert.Equal(t, int32(1), calls.Load())
}

func TestTemplateCacheUnsupported(t *testing.T) {
	l := LoaderFunc(func(ctx context.Context, path string) (*scenegraph.Node, error) {
		t.Error("loader must not be called")
		return nil, nil
	})
	c := NewTemplateCache(l, log.New(io.Discard))
	r := recv(t, c.Load(context.Background(), "Car/Car.fbx"))
	assert.ErrorIs(t, r.Err, ErrUnsupportedFormat)
}

func TestTemplateCacheDropsCancelledWaiter(t *testing.T) {
	release := make(chan struct{})
	l := LoaderFunc(func(ctx context.Context, path string) (*scenegraph.Node, error) {
		<-release
		return modelTemplate(path), nil
	})
	c := NewTemplateCache(l, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	stale := c.Load(ctx, "car.glb")
	live := c.Load(context.Background(), "car.glb")
	cancel()
	close(release)

	require.NoError(t, recv(t, live).Err)
	_, ok := Poll(stale)
	assert.False(t, ok)
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 255, A: 255})
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestDecodeImage(t *testing.T) {
	dir := t.TempDir()
	big := filepath.Join(dir, "big.png")
	writePNG(t, big, 400, 100)

	img, err := DecodeImage(big, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	img, err = DecodeImage(big, 0)
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())

	txt := filepath.Join(dir, "notes.png")
	require.NoError(t, os.WriteFile(txt, []byte("just some text, not pixels"), 0o644))
	_, err = DecodeImage(txt, 200)
	assert.ErrorIs(t, err, ErrNotImage)

	_, err = DecodeImage(filepath.Join(dir, "missing.png"), 200)
	assert.Error(t, err)
}

func TestDecodeImageAsync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tex.png")
	writePNG(t, path, 10, 30)

	select {
	case r := <-DecodeImageAsync(context.Background(), path, 15):
		require.NoError(t, r.Err)
		assert.Equal(t, 5, r.Image.Bounds().Dx())
		assert.Equal(t, 15, r.Image.Bounds().Dy())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out")
	}
}

func TestLoadSkyboxStrip(t *testing.T) {
	dir := t.TempDir()
	for i, name := range SkyboxFaces {
		edge := 8
		if i == 3 {
			edge = 16
		}
		writePNG(t, filepath.Join(dir, name+".png"), edge, edge)
	}

	img, err := LoadSkyboxStrip(dir, 0)
	require.NoError(t, err)
	assert.Equal(t, 48, img.Bounds().Dx())
	assert.Equal(t, 8, img.Bounds().Dy())
	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)

	require.NoError(t, os.Remove(filepath.Join(dir, "nz.png")))
	_, err = LoadSkyboxStrip(dir, 0)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
