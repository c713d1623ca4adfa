package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/transform"
)

// SkyboxFaces lists cube faces in the order of a horizontal-line cubemap
// layout: +X, -X, +Y, -Y, +Z, -Z.
var SkyboxFaces = []string{"px", "nx", "py", "ny", "pz", "nz"}

var skyboxExts = []string{".bmp", ".png", ".jpg", ".jpeg"}

// LoadSkyboxStrip decodes the six faces found in dir and lays them out left to
// right in one image. Every face is resized to the edge of the first one,
// capped at maxEdge.
func LoadSkyboxStrip(dir string, maxEdge int) (image.Image, error) {
	faces := make([]image.Image, 0, len(SkyboxFaces))
	for _, name := range SkyboxFaces {
		path, err := findFace(dir, name)
		if err != nil {
			return nil, err
		}
		img, err := DecodeImage(path, maxEdge)
		if err != nil {
			return nil, fmt.Errorf("skybox face %s: %w", name, err)
		}
		faces = append(faces, img)
	}

	edge := faces[0].Bounds().Dx()
	strip := image.NewRGBA(image.Rect(0, 0, edge*len(faces), edge))
	for i, face := range faces {
		if b := face.Bounds(); b.Dx() != edge || b.Dy() != edge {
			face = transform.Resize(face, edge, edge, transform.Linear)
		}
		r := image.Rect(i*edge, 0, (i+1)*edge, edge)
		draw.Draw(strip, r, face, face.Bounds().Min, draw.Src)
	}
	return strip, nil
}

func findFace(dir, name string) (string, error) {
	for _, ext := range skyboxExts {
		p := filepath.Join(dir, name+ext)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("skybox face %s: %w", name, err)
		}
	}
	return "", fmt.Errorf("skybox face %s: %w", name, os.ErrNotExist)
}
