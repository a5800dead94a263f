package region

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Loader is the subset of Client the cascade needs, split out so tests can
// substitute canned region lists.
type Loader interface {
	Provinces(ctx context.Context) ([]Region, error)
	Regencies(ctx context.Context, provinceID string) ([]Region, error)
	Districts(ctx context.Context, regencyID string) ([]Region, error)
	Villages(ctx context.Context, districtID string) ([]Region, error)
}

// ErrStale is returned when a selection changed while a child-level load was
// in flight; the caller should drop the result.
var ErrStale = fmt.Errorf("region: selection changed, result stale")

// Cascade tracks one address-form session through the four levels. Each
// parent selection bumps a generation counter for the levels below it, so a
// slow response for an old selection can never overwrite lists belonging to
// the current one.
type Cascade struct {
	loader Loader

	mu  sync.Mutex
	gen [4]uint64 // per-level generation, index by level position

	selected [4]string // selected region id per level
	lists    [4][]Region
}

func NewCascade(loader Loader) *Cascade {
	return &Cascade{loader: loader}
}

func levelIndex(level string) int {
	switch level {
	case LevelProvince:
		return 0
	case LevelRegency:
		return 1
	case LevelDistrict:
		return 2
	case LevelVillage:
		return 3
	}
	return -1
}

// Select records a choice at one level and invalidates every level below it:
// child selections and lists are cleared and their generations bumped.
func (cs *Cascade) Select(level, regionID string) error {
	idx := levelIndex(level)
	if idx < 0 {
		return fmt.Errorf("region: unknown level %q", level)
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.selected[idx] = regionID
	for i := idx + 1; i < 4; i++ {
		cs.gen[i]++
		cs.selected[i] = ""
		cs.lists[i] = nil
	}
	return nil
}

// Selected returns the currently selected region id at a level.
func (cs *Cascade) Selected(level string) string {
	idx := levelIndex(level)
	if idx < 0 {
		return ""
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.selected[idx]
}

// Load fetches the option list for a level based on the current parent
// selection. If the parent selection changes while the fetch is in flight the
// result is discarded and ErrStale returned.
func (cs *Cascade) Load(ctx context.Context, level string) ([]Region, error) {
	idx := levelIndex(level)
	if idx < 0 {
		return nil, fmt.Errorf("region: unknown level %q", level)
	}

	cs.mu.Lock()
	gen := cs.gen[idx]
	var parentID string
	if idx > 0 {
		parentID = cs.selected[idx-1]
	}
	cs.mu.Unlock()

	if idx > 0 && parentID == "" {
		return nil, fmt.Errorf("region: no %s selected", []string{LevelProvince, LevelRegency, LevelDistrict}[idx-1])
	}

	var (
		regions []Region
		err     error
	)
	switch idx {
	case 0:
		regions, err = cs.loader.Provinces(ctx)
	case 1:
		regions, err = cs.loader.Regencies(ctx, parentID)
	case 2:
		regions, err = cs.loader.Districts(ctx, parentID)
	case 3:
		regions, err = cs.loader.Villages(ctx, parentID)
	}
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.gen[idx] != gen {
		return nil, ErrStale
	}
	cs.lists[idx] = regions
	return regions, nil
}

// ProvisionalPostalCode synthesizes a random 5-digit placeholder for villages
// the dataset carries no postal code for. Addresses built with it are flagged
// so fulfilment staff verify the code before dispatch.
func ProvisionalPostalCode() string {
	return fmt.Sprintf("%05d", 10000+rand.Intn(90000))
}
