package navigation

import (
	"encoding/json"
	"fmt"

	"car-showroom/internal/catalog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/jinzhu/copier"
)

const (
	// SlotKey holds the snapshot of the car chosen in the showroom.
	SlotKey = "selectedCarForPodium"
	// LegacySlotKey is read when SlotKey is absent and cleared on back.
	LegacySlotKey = "selectedCar"
)

// Snapshot is the JSON record the showroom leaves for the podium.
type Snapshot struct {
	DisplayName       string     `json:"displayName"`
	Path              string     `json:"path"`
	OriginalName      string     `json:"originalName"`
	Name              string     `json:"name,omitempty"`
	PodiumScale       mgl32.Vec3 `json:"podiumScale"`
	ShowroomRotationY float32    `json:"showroomRotationY"`
}

// SnapshotOf builds the snapshot for a catalog record.
func SnapshotOf(r catalog.CarRecord) (Snapshot, error) {
	var s Snapshot
	if err := copier.Copy(&s, &r); err != nil {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", r.ID, err)
	}
	s.Path = r.AssetPath
	s.Name = r.OriginalName
	return s, nil
}

// Label returns the name to show for the car.
func (s Snapshot) Label() string {
	switch {
	case s.DisplayName != "":
		return s.DisplayName
	case s.OriginalName != "":
		return s.OriginalName
	default:
		return s.Name
	}
}

// Encode returns the JSON form stored in the slot.
func (s Snapshot) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeSnapshot parses a slot value. Records without a path are rejected;
// a missing podium scale becomes 1.
func DecodeSnapshot(raw string) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if s.Path == "" {
		return Snapshot{}, fmt.Errorf("decode snapshot: no path")
	}
	if s.PodiumScale == (mgl32.Vec3{}) {
		s.PodiumScale = mgl32.Vec3{1, 1, 1}
	}
	return s, nil
}

// DefaultSnapshot is the car the podium shows when the slot is empty or
// unreadable.
func DefaultSnapshot(path string) Snapshot {
	return Snapshot{
		DisplayName:       "Default FBX Car",
		Path:              path,
		OriginalName:      "DefaultCar",
		Name:              "DefaultCar",
		PodiumScale:       mgl32.Vec3{8, 8, 8},
		ShowroomRotationY: math32.Pi,
	}
}
