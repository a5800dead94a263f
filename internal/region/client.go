// Package region resolves Indonesian administrative areas through the
// four-level cascade province → regency → district → village, backed by the
// public wilayah dataset.
package region

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Region is one administrative area at any cascade level.
type Region struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Cascade levels.
const (
	LevelProvince = "province"
	LevelRegency  = "regency"
	LevelDistrict = "district"
	LevelVillage  = "village"
)

// The reference dataset is static between releases, so cached lists stay
// valid for a long time.
const cacheTTL = 24 * time.Hour

// Client fetches region lists with a Redis read-through cache in front of the
// upstream dataset.
type Client struct {
	baseURL    string
	httpClient *http.Client
	rdb        *redis.Client
}

func NewClient(baseURL string, rdb *redis.Client) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		rdb:        rdb,
	}
}

// Provinces lists all top-level provinces.
func (c *Client) Provinces(ctx context.Context) ([]Region, error) {
	return c.fetch(ctx, "provinces.json", "regions:provinces")
}

// Regencies lists the regencies (kota/kabupaten) of one province.
func (c *Client) Regencies(ctx context.Context, provinceID string) ([]Region, error) {
	return c.fetch(ctx, "regencies/"+provinceID+".json", "regions:regencies:"+provinceID)
}

// Districts lists the districts (kecamatan) of one regency.
func (c *Client) Districts(ctx context.Context, regencyID string) ([]Region, error) {
	return c.fetch(ctx, "districts/"+regencyID+".json", "regions:districts:"+regencyID)
}

// Villages lists the villages (kelurahan/desa) of one district.
func (c *Client) Villages(ctx context.Context, districtID string) ([]Region, error) {
	return c.fetch(ctx, "villages/"+districtID+".json", "regions:villages:"+districtID)
}

func (c *Client) fetch(ctx context.Context, path, cacheKey string) ([]Region, error) {
	if c.rdb != nil {
		if cached, err := c.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
			var regions []Region
			if err := json.Unmarshal(cached, &regions); err == nil {
				return regions, nil
			}
		}
	}

	url := c.baseURL + "/" + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("region: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("region: dataset unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("region: dataset returned %d for %s", resp.StatusCode, path)
	}

	var regions []Region
	if err := json.NewDecoder(resp.Body).Decode(&regions); err != nil {
		return nil, fmt.Errorf("region: decode %s: %w", path, err)
	}

	if c.rdb != nil {
		if payload, err := json.Marshal(regions); err == nil {
			if err := c.rdb.Set(ctx, cacheKey, payload, cacheTTL).Err(); err != nil {
				log.Warn().Err(err).Str("key", cacheKey).Msg("region cache write failed")
			}
		}
	}
	return regions, nil
}
