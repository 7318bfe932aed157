package loader

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"stock-pulse/apperror"
	"stock-pulse/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Dataset is the raw reference data before chart series are generated.
type Dataset struct {
	Stocks  []models.Stock       `yaml:"stocks"`
	Sectors []models.Sector      `yaml:"sectors"`
	Indices []models.MarketIndex `yaml:"indices"`
}

// LoadDefault decodes the dataset compiled into the binary.
func LoadDefault() (*Dataset, error) {
	return decode(bytes.NewReader(defaultCatalog), "embedded catalog")
}

// LoadCatalog reads a dataset override from a YAML file.
func LoadCatalog(filePath string) (*Dataset, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, apperror.NewCustomError(apperror.ErrCatalogLoad, "open catalog", err)
	}
	defer f.Close()

	return decode(f, filePath)
}

func decode(r io.Reader, source string) (*Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var ds Dataset
	if err := dec.Decode(&ds); err != nil {
		return nil, apperror.NewCustomError(apperror.ErrCatalogLoad, "decode "+source, err)
	}

	for i, s := range ds.Stocks {
		if s.Symbol == "" || s.Slug == "" || s.SectorSlug == "" {
			return nil, apperror.NewCustomError(apperror.ErrCatalogLoad,
				fmt.Sprintf("%s: stock #%d is missing symbol, slug or sector_slug", source, i+1), nil)
		}
	}
	for i, sec := range ds.Sectors {
		if sec.Slug == "" || sec.Name == "" {
			return nil, apperror.NewCustomError(apperror.ErrCatalogLoad,
				fmt.Sprintf("%s: sector #%d is missing name or slug", source, i+1), nil)
		}
	}

	return &ds, nil
}
