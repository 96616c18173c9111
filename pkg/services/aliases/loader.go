package aliases

import (
	"fmt"

	"github.com/spf13/viper"
)

type fileField struct {
	Name     string   `mapstructure:"name"`
	Type     string   `mapstructure:"type"`
	Required bool     `mapstructure:"required"`
	Aliases  []string `mapstructure:"aliases"`
}

type fileSchema struct {
	DateLayout string      `mapstructure:"date_layout"`
	Fields     []fileField `mapstructure:"fields"`
}

type fileConfig struct {
	Datasets map[string]fileSchema `mapstructure:"datasets"`
}

// LoadFile reads an alias map from a YAML file. Editing the file changes
// resolution behavior without code changes; kinds absent from the file fall
// back to the built-in defaults.
func LoadFile(path string) (*Map, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read alias config: %w", err)
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse alias config: %w", err)
	}

	schemas := defaultSchemas()
	byKind := make(map[string]int, len(schemas))
	for i, ks := range schemas {
		byKind[ks.Kind] = i
	}

	for kind, fs := range cfg.Datasets {
		ks, err := convertSchema(kind, fs)
		if err != nil {
			return nil, err
		}
		if i, ok := byKind[kind]; ok {
			schemas[i] = ks
		} else {
			schemas = append(schemas, ks)
		}
	}

	return NewMap(schemas)
}

func convertSchema(kind string, fs fileSchema) (KindSchema, error) {
	ks := KindSchema{Kind: kind, DateLayout: fs.DateLayout}
	if ks.DateLayout == "" {
		ks.DateLayout = defaultDateLayout
	}
	for _, f := range fs.Fields {
		ft, err := ParseFieldType(f.Type)
		if err != nil {
			return KindSchema{}, fmt.Errorf("kind %q field %q: %w", kind, f.Name, err)
		}
		ks.Fields = append(ks.Fields, FieldSpec{
			Name:     f.Name,
			Type:     ft,
			Required: f.Required,
			Aliases:  f.Aliases,
		})
	}
	return ks, nil
}
