package adapters

import (
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"storefront-catalog/internal/ports"
	"storefront-catalog/internal/types"
)

// CatalogFile is the on-disk shape of one static catalog. Category
// catalogs nest their products under categories; every other catalog
// lists records directly.
type CatalogFile struct {
	SchemaVersion string           `yaml:"schema_version"`
	Source        types.SourceName `yaml:"source"`
	Records       []types.Record   `yaml:"records"`
	Categories    []CategoryEntry  `yaml:"categories"`
}

type CategoryEntry struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Slug     string         `yaml:"slug"`
	Products []types.Record `yaml:"products"`
}

// fileSources are the sources a catalog file may feed.
var fileSources = map[types.SourceName]struct{}{
	types.SourceStatic:           {},
	types.SourceMakeup:           {},
	types.SourceCategories:       {},
	types.SourceMegaHair:         {},
	types.SourceHairDye:          {},
	types.SourceNailPolish:       {},
	types.SourcePerfumeWepink:    {},
	types.SourcePerfumeBoticario: {},
	types.SourcePerfumeLegacy:    {},
	types.SourceStraightening:    {},
}

// CatalogSet holds the sources loaded from one catalog directory.
type CatalogSet struct {
	sources map[types.SourceName]ports.CatalogSourcePort
	files   map[types.SourceName]string
}

// Source returns the named source, or a nil interface when the set has none.
func (s CatalogSet) Source(name types.SourceName) ports.CatalogSourcePort {
	source, ok := s.sources[name]
	if !ok {
		return nil
	}
	return source
}

func (s CatalogSet) Names() []types.SourceName {
	names := make([]types.SourceName, 0, len(s.sources))
	for name := range s.sources {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// LoadCatalogSet reads every *.yaml file at the root of fsys. Each file
// declares which source it feeds; two files for the same source are an
// error.
func LoadCatalogSet(fsys fs.FS) (CatalogSet, error) {
	matches, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return CatalogSet{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to list catalog files").
			WithCause(err)
	}
	if len(matches) == 0 {
		return CatalogSet{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("no catalog files found")
	}
	sort.Strings(matches)

	set := CatalogSet{
		sources: map[types.SourceName]ports.CatalogSourcePort{},
		files:   map[types.SourceName]string{},
	}
	for _, name := range matches {
		file, err := LoadCatalogFile(fsys, name)
		if err != nil {
			return CatalogSet{}, err
		}
		if previous, exists := set.files[file.Source]; exists {
			return CatalogSet{}, errbuilder.New().
				WithCode(errbuilder.CodeAlreadyExists).
				WithMsg("catalog source '" + string(file.Source) + "' declared by both " + previous + " and " + name)
		}
		set.files[file.Source] = name
		set.sources[file.Source] = newCatalogSource(file)
		log.Debug().
			Str("file", name).
			Str("source", string(file.Source)).
			Int("records", len(file.flatten())).
			Msg("catalog loaded")
	}
	return set, nil
}

// LoadCatalogFile parses and validates a single catalog file.
func LoadCatalogFile(fsys fs.FS, name string) (CatalogFile, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return CatalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to read catalog file: " + name).
			WithCause(err)
	}
	var file CatalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return CatalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse catalog file: " + name).
			WithCause(err)
	}
	if strings.TrimSpace(file.SchemaVersion) == "" {
		return CatalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog file missing schema_version: " + name)
	}
	if strings.TrimSpace(string(file.Source)) == "" {
		file.Source = types.SourceName(strings.TrimSuffix(path.Base(name), path.Ext(name)))
	}
	if file.Source == types.SourceDatabase {
		return CatalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog file cannot feed the database source: " + name)
	}
	if _, ok := fileSources[file.Source]; !ok {
		return CatalogFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("catalog file declares unknown source '" + string(file.Source) + "': " + name)
	}
	return file, nil
}

// flatten returns direct records followed by category products in
// category order.
func (f CatalogFile) flatten() []types.Record {
	records := append([]types.Record(nil), f.Records...)
	for _, category := range f.Categories {
		records = append(records, category.Products...)
	}
	return records
}

func newCatalogSource(file CatalogFile) ports.CatalogSourcePort {
	records := file.flatten()
	if file.Source == types.SourceMegaHair {
		return NewMegaHairCatalog(records)
	}
	return NewStaticCatalog(file.Source, records)
}
