package region

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader serves canned lists keyed by parent id and lets the test hook
// into the fetch to race selections against in-flight loads.
type stubLoader struct {
	provinces []Region
	regencies map[string][]Region
	err       error

	onRegencies func()
}

func (s *stubLoader) Provinces(context.Context) ([]Region, error) {
	return s.provinces, s.err
}

func (s *stubLoader) Regencies(_ context.Context, provinceID string) ([]Region, error) {
	if s.onRegencies != nil {
		s.onRegencies()
	}
	return s.regencies[provinceID], s.err
}

func (s *stubLoader) Districts(_ context.Context, regencyID string) ([]Region, error) {
	return []Region{{ID: regencyID + "-d1", Name: "Kecamatan " + regencyID}}, s.err
}

func (s *stubLoader) Villages(_ context.Context, districtID string) ([]Region, error) {
	return []Region{{ID: districtID + "-v1", Name: "Kelurahan " + districtID}}, s.err
}

func testLoader() *stubLoader {
	return &stubLoader{
		provinces: []Region{{ID: "32", Name: "Jawa Barat"}, {ID: "33", Name: "Jawa Tengah"}},
		regencies: map[string][]Region{
			"32": {{ID: "3204", Name: "Kabupaten Bandung"}},
			"33": {{ID: "3374", Name: "Kota Semarang"}},
		},
	}
}

func TestCascadeWalksDown(t *testing.T) {
	cs := NewCascade(testLoader())
	ctx := context.Background()

	provinces, err := cs.Load(ctx, LevelProvince)
	require.NoError(t, err)
	assert.Len(t, provinces, 2)

	require.NoError(t, cs.Select(LevelProvince, "32"))
	regencies, err := cs.Load(ctx, LevelRegency)
	require.NoError(t, err)
	require.Len(t, regencies, 1)
	assert.Equal(t, "Kabupaten Bandung", regencies[0].Name)

	require.NoError(t, cs.Select(LevelRegency, "3204"))
	districts, err := cs.Load(ctx, LevelDistrict)
	require.NoError(t, err)
	assert.Equal(t, "3204-d1", districts[0].ID)
}

func TestLoadWithoutParentSelection(t *testing.T) {
	cs := NewCascade(testLoader())

	_, err := cs.Load(context.Background(), LevelRegency)
	assert.Error(t, err)
}

func TestSelectClearsChildLevels(t *testing.T) {
	cs := NewCascade(testLoader())
	ctx := context.Background()

	require.NoError(t, cs.Select(LevelProvince, "32"))
	_, err := cs.Load(ctx, LevelRegency)
	require.NoError(t, err)
	require.NoError(t, cs.Select(LevelRegency, "3204"))

	// Changing the province drops every selection below it.
	require.NoError(t, cs.Select(LevelProvince, "33"))
	assert.Equal(t, "33", cs.Selected(LevelProvince))
	assert.Empty(t, cs.Selected(LevelRegency))
	assert.Empty(t, cs.Selected(LevelDistrict))

	regencies, err := cs.Load(ctx, LevelRegency)
	require.NoError(t, err)
	assert.Equal(t, "Kota Semarang", regencies[0].Name)
}

func TestStaleLoadIsDiscarded(t *testing.T) {
	loader := testLoader()
	cs := NewCascade(loader)
	ctx := context.Background()

	require.NoError(t, cs.Select(LevelProvince, "32"))

	// The province changes while the regency fetch is in flight; the cascade
	// must throw the late result away instead of pairing Jawa Barat's
	// regencies with the new selection.
	loader.onRegencies = func() {
		loader.onRegencies = nil
		require.NoError(t, cs.Select(LevelProvince, "33"))
	}
	_, err := cs.Load(ctx, LevelRegency)
	assert.ErrorIs(t, err, ErrStale)
}

func TestLoadPropagatesFetchErrors(t *testing.T) {
	loader := testLoader()
	loader.err = errors.New("upstream down")
	cs := NewCascade(loader)

	_, err := cs.Load(context.Background(), LevelProvince)
	assert.ErrorContains(t, err, "upstream down")
}

func TestProvisionalPostalCode(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := ProvisionalPostalCode()
		require.Len(t, code, 5)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
	}
}
