package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id, path string) CarRecord {
	return CarRecord{
		ID:            id,
		DisplayName:   id,
		AssetPath:     path,
		ShowroomScale: mgl32.Vec3{1, 1, 1},
		PodiumScale:   mgl32.Vec3{1, 1, 1},
	}
}

func TestBuiltin(t *testing.T) {
	c, err := Builtin()
	require.NoError(t, err)
	require.Equal(t, 4, c.Len())

	owl, ok := c.Lookup("asparkOwl")
	require.True(t, ok)
	assert.Equal(t, "Aspark Owl", owl.DisplayName)
	assert.Equal(t, mgl32.Vec3{400, 0, 0}, owl.ShowroomPosition)
	assert.Equal(t, mgl32.Vec3{30, 30, 30}, owl.ShowroomScale)
	assert.Equal(t, mgl32.Vec3{8, 8, 8}, owl.PodiumScale)
	assert.InDelta(t, math32.Pi, owl.ShowroomRotationY, 1e-6)

	ids := make([]string, 0, c.Len())
	for _, r := range c.Cars() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"asparkOwl", "bugattiBolide", "gumpertApollo", "astonMartinVulCan"}, ids)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]CarRecord{record("a", "a.glb"), record("a", "b.glb")})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		rec  CarRecord
	}{
		{"empty id", record("", "a.glb")},
		{"empty path", record("a", "")},
		{"zero podium scale", func() CarRecord { r := record("a", "a.glb"); r.PodiumScale = mgl32.Vec3{}; return r }()},
		{"negative showroom scale", func() CarRecord { r := record("a", "a.glb"); r.ShowroomScale[1] = -1; return r }()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New([]CarRecord{tt.rec})
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestCarsReturnsCopy(t *testing.T) {
	c, err := New([]CarRecord{record("a", "a.glb")})
	require.NoError(t, err)

	cars := c.Cars()
	cars[0].DisplayName = "changed"
	r, _ := c.Lookup("a")
	assert.Equal(t, "a", r.DisplayName)
}

func TestLoadYAMLAndTOML(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "cars.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
cars:
  - id: one
    displayName: One
    path: one.glb
    showroomScale: [2, 2, 2]
    podiumScale: [1, 1, 1]
`), 0o644))

	tomlPath := filepath.Join(dir, "cars.toml")
	require.NoError(t, os.WriteFile(tomlPath, []byte(`
[[cars]]
id = "two"
displayName = "Two"
path = "two.glb"
showroomScale = [3.0, 3.0, 3.0]
showroomPosition = [10.0, 0.0, -5.0]
podiumScale = [0.5, 0.5, 0.5]
`), 0o644))

	c, err := Load(yamlPath)
	require.NoError(t, err)
	one, ok := c.Lookup("one")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{2, 2, 2}, one.ShowroomScale)

	c, err = Load(tomlPath)
	require.NoError(t, err)
	two, ok := c.Lookup("two")
	require.True(t, ok)
	assert.Equal(t, mgl32.Vec3{10, 0, -5}, two.ShowroomPosition)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, two.PodiumScale)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "cars.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{}`), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4, c.Len())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "Shown", CarRecord{ID: "id", OriginalName: "Orig", DisplayName: "Shown"}.Label())
	assert.Equal(t, "Orig", CarRecord{ID: "id", OriginalName: "Orig"}.Label())
	assert.Equal(t, "id", CarRecord{ID: "id"}.Label())
}
