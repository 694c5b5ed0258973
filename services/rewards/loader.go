package rewards

import (
	"Perkdraft/models"
	"Perkdraft/utils/apperrors"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// LoadCatalogFile reads a JSON or YAML catalog (chosen by extension) and
// builds a Catalog from it.
func LoadCatalogFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindCatalog, err, "read catalog %s", path)
	}
	format := "json"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	return ParseCatalog(data, format)
}

// ParseCatalog decodes a catalog document in the given format ("json" or "yaml")
func ParseCatalog(data []byte, format string) (*Catalog, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc models.CatalogDocument
	var err error
	switch format {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &doc)
	case "json":
		err = json.Unmarshal(data, &doc)
	default:
		return nil, apperrors.Catalog("unsupported catalog format %q", format)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindCatalog, err, "decode %s catalog", format)
	}
	return NewCatalog(doc)
}
