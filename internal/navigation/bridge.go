package navigation

import (
	"car-showroom/internal/catalog"
	"car-showroom/internal/storage"

	"github.com/charmbracelet/log"
)

// DefaultCarPath is the fallback car model when none is configured.
const DefaultCarPath = "Car/Car.fbx"

// Bridge writes the chosen car to storage before entering the podium and
// clears it when going back.
type Bridge struct {
	store          storage.Store
	router         *Router
	catalog        *catalog.Catalog
	logger         *log.Logger
	defaultCarPath string
}

func NewBridge(store storage.Store, router *Router, cat *catalog.Catalog, defaultCarPath string, logger *log.Logger) *Bridge {
	if defaultCarPath == "" {
		defaultCarPath = DefaultCarPath
	}
	return &Bridge{
		store:          store,
		router:         router,
		catalog:        cat,
		logger:         logger,
		defaultCarPath: defaultCarPath,
	}
}

// SelectCar persists the snapshot of carID and navigates to the podium. A
// storage failure is logged and navigation still happens; the podium then
// shows the default car. Unknown IDs return false.
func (b *Bridge) SelectCar(carID string) bool {
	rec, ok := b.catalog.Lookup(carID)
	if !ok {
		b.logger.Warn("clicked car is not in the catalog", "id", carID)
		return false
	}
	if err := b.persist(rec); err != nil {
		b.logger.Error("could not save selected car", "id", carID, "err", err)
	} else {
		b.logger.Info("navigating to podium", "car", rec.Label(), "path", rec.AssetPath)
	}
	b.router.Navigate(RoutePodium)
	return true
}

func (b *Bridge) persist(rec catalog.CarRecord) error {
	snap, err := SnapshotOf(rec)
	if err != nil {
		return err
	}
	raw, err := snap.Encode()
	if err != nil {
		return err
	}
	return b.store.Set(SlotKey, raw)
}

// Back clears the slot and returns to the showroom.
func (b *Bridge) Back() {
	if err := b.store.Delete(SlotKey, LegacySlotKey); err != nil {
		b.logger.Error("could not clear selected car", "err", err)
	}
	b.router.Navigate(RouteShowroom)
}

// ReadSnapshot returns the stored car, trying the current then the legacy key.
// When neither holds a readable record it returns the default car.
func (b *Bridge) ReadSnapshot() Snapshot {
	for _, key := range []string{SlotKey, LegacySlotKey} {
		raw, ok, err := b.store.Get(key)
		if err != nil {
			b.logger.Error("could not read selected car", "key", key, "err", err)
			continue
		}
		if !ok {
			continue
		}
		snap, err := DecodeSnapshot(raw)
		if err != nil {
			b.logger.Warn("ignoring unreadable selected car", "key", key, "err", err)
			continue
		}
		return snap
	}
	b.logger.Info("no selected car stored, using default", "path", b.defaultCarPath)
	return DefaultSnapshot(b.defaultCarPath)
}
