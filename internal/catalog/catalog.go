// Package catalog holds the list of cars on display. The list is immutable once
// loaded and is shared by the showroom, navigation and podium.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed cars.yaml
var builtinYAML []byte

var (
	ErrDuplicateID   = errors.New("catalog: duplicate car id")
	ErrInvalidRecord = errors.New("catalog: invalid car record")
)

// CarRecord describes one car: where its model lives and how it is posed in the
// showroom and on the podium.
type CarRecord struct {
	ID                string     `yaml:"id" toml:"id"`
	OriginalName      string     `yaml:"originalName" toml:"originalName"`
	DisplayName       string     `yaml:"displayName" toml:"displayName"`
	AssetPath         string     `yaml:"path" toml:"path"`
	ShowroomScale     mgl32.Vec3 `yaml:"showroomScale" toml:"showroomScale"`
	ShowroomPosition  mgl32.Vec3 `yaml:"showroomPosition" toml:"showroomPosition"`
	ShowroomRotationY float32    `yaml:"showroomRotationY" toml:"showroomRotationY"`
	PodiumScale       mgl32.Vec3 `yaml:"podiumScale" toml:"podiumScale"`
}

// Label returns the display name, falling back to the original name and then the ID.
func (r CarRecord) Label() string {
	switch {
	case r.DisplayName != "":
		return r.DisplayName
	case r.OriginalName != "":
		return r.OriginalName
	default:
		return r.ID
	}
}

type file struct {
	Cars []CarRecord `yaml:"cars" toml:"cars"`
}

// Catalog is an ordered, validated list of car records.
type Catalog struct {
	cars []CarRecord
	byID map[string]int
}

// New validates records and builds a catalog over a copy of them.
func New(records []CarRecord) (*Catalog, error) {
	c := &Catalog{
		cars: make([]CarRecord, len(records)),
		byID: make(map[string]int, len(records)),
	}
	copy(c.cars, records)
	for i, r := range c.cars {
		if err := validate(r); err != nil {
			return nil, fmt.Errorf("car %d: %w", i, err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, r.ID)
		}
		c.byID[r.ID] = i
	}
	return c, nil
}

func validate(r CarRecord) error {
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.AssetPath) == "" {
		return fmt.Errorf("%w: %q has no path", ErrInvalidRecord, r.ID)
	}
	for i := 0; i < 3; i++ {
		if r.ShowroomScale[i] <= 0 || r.PodiumScale[i] <= 0 {
			return fmt.Errorf("%w: %q has a non-positive scale", ErrInvalidRecord, r.ID)
		}
	}
	return nil
}

// Builtin returns the catalog compiled into the binary.
func Builtin() (*Catalog, error) {
	return parse(builtinYAML, ".yaml")
}

// Load reads a catalog from a .yaml, .yml or .toml file. An empty path returns
// the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Builtin()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := parse(data, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

func parse(data []byte, ext string) (*Catalog, error) {
	var f file
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}
	return New(f.Cars)
}

// Cars returns the records in catalog order.
func (c *Catalog) Cars() []CarRecord {
	out := make([]CarRecord, len(c.cars))
	copy(out, c.cars)
	return out
}

// Len returns the number of cars.
func (c *Catalog) Len() int { return len(c.cars) }

// Lookup finds a car by ID.
func (c *Catalog) Lookup(id string) (CarRecord, bool) {
	i, ok := c.byID[id]
	if !ok {
		return CarRecord{}, false
	}
	return c.cars[i], true
}

