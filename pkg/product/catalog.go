package product

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProduct is returned when a product id is not in the catalog.
var ErrUnknownProduct = errors.New("unknown product")

// Estimate is the expected effect of a product on a crop.
type Estimate struct {
	GrowthRateIncrease float64  `json:"growth_rate_increase"` // fractional, 0.05 = +5%
	Observations       []string `json:"observations,omitempty"`
}

// Estimator looks up the expected growth-rate increase of a product.
// Implementations may call out to a remote service.
type Estimator interface {
	Estimate(ctx context.Context, productID, crop string) (Estimate, error)
}

// Product is a catalog entry.
type Product struct {
	ID                 string             `yaml:"id" json:"id"`
	Name               string             `yaml:"name" json:"name"`
	Category           string             `yaml:"category" json:"category"`
	Description        string             `yaml:"description" json:"description,omitempty"`
	GrowthRateIncrease float64            `yaml:"growth_rate_increase" json:"growth_rate_increase"`
	Crops              map[string]float64 `yaml:"crops" json:"crops,omitempty"` // per-crop override
	Observations       []string           `yaml:"observations" json:"observations,omitempty"`
}

// IncreaseFor returns the crop-specific increase, or the product default.
func (p Product) IncreaseFor(crop string) float64 {
	if v, ok := p.Crops[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return v
	}
	return p.GrowthRateIncrease
}

// Catalog is a static, YAML-backed product table. It implements Estimator.
type Catalog struct {
	byID map[string]Product
}

type catalogFile struct {
	Products []Product `yaml:"products"`
}

//go:embed products.yaml
var defaultCatalog []byte

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("built-in product catalog: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog. Product ids must be unique and non-empty.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}
	c := &Catalog{byID: make(map[string]Product, len(f.Products))}
	for i, p := range f.Products {
		if p.ID == "" {
			return nil, fmt.Errorf("products[%d]: missing id", i)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("products[%d]: duplicate id %q", i, p.ID)
		}
		if p.Name == "" {
			p.Name = p.ID
		}
		c.byID[p.ID] = p
	}
	return c, nil
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Products returns every product sorted by id.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0, len(c.byID))
	for _, p := range c.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Estimate implements Estimator.
func (c *Catalog) Estimate(ctx context.Context, productID, crop string) (Estimate, error) {
	if err := ctx.Err(); err != nil {
		return Estimate{}, err
	}
	p, ok := c.byID[productID]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %q", ErrUnknownProduct, productID)
	}
	obs := make([]string, len(p.Observations))
	copy(obs, p.Observations)
	return Estimate{GrowthRateIncrease: p.IncreaseFor(crop), Observations: obs}, nil
}
