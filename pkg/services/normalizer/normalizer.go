// Package normalizer turns raw tabular input into canonical datasets.
package normalizer

import (
	"context"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/aliases"
	"github.com/rs/zerolog"
)

type Normalizer struct {
	aliases *aliases.Map
}

func New(m *aliases.Map) *Normalizer {
	return &Normalizer{aliases: m}
}

// Normalize resolves every column through the alias map, coerces cells to
// their declared types and validates required fields. A failed coercion
// yields a null value unless the field is required for the kind, in which
// case the row is excluded and counted. Deterministic: identical input
// always produces the identical record sequence.
func (n *Normalizer) Normalize(
	ctx context.Context,
	kind domain.DatasetKind,
	raw *domain.RawTable,
) (*domain.Dataset, error) {
	logger := zerolog.Ctx(ctx)

	schema, ok := n.aliases.Schema(string(kind))
	if !ok {
		return nil, &domain.SchemaError{Kind: kind, Reason: "no schema registered for kind"}
	}

	specs := make(map[string]aliases.FieldSpec, len(schema.Fields))
	fieldNames := make([]string, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		specs[f.Name] = f
		fieldNames = append(fieldNames, f.Name)
	}

	// Resolve the header once; rows reuse the resolution.
	resolved := make(map[string]string, len(raw.Columns))
	exercised := make(map[string]bool)
	var unmapped []string
	for _, col := range raw.Columns {
		if canonical, ok := n.aliases.Resolve(string(kind), col); ok {
			resolved[col] = canonical
			exercised[canonical] = true
		} else {
			unmapped = append(unmapped, col)
		}
	}

	ds := &domain.Dataset{
		Kind:            kind,
		FieldNames:      fieldNames,
		UnmappedColumns: unmapped,
	}

	for i, row := range raw.Rows {
		rec := domain.CanonicalRecord{
			Fields: make(map[string]domain.Value, len(fieldNames)),
		}
		for _, name := range fieldNames {
			rec.Fields[name] = domain.Missing()
		}

		for _, col := range raw.Columns {
			cell := row[col]
			canonical, ok := resolved[col]
			if !ok {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col] = cell
				continue
			}
			rec.Fields[canonical] = coerce(cell, specs[canonical].Type, schema.DateLayout)
		}

		if missing := missingRequired(rec, schema.Fields); missing != "" {
			ds.Excluded++
			logger.Debug().
				Str("kind", string(kind)).
				Int("row", i).
				Str("field", missing).
				Msg("row excluded: required value missing or unparseable")
			continue
		}

		ds.Records = append(ds.Records, rec)
	}

	if len(ds.Records) == 0 {
		return nil, &domain.SchemaError{Kind: kind, Reason: "dataset is empty after normalization"}
	}
	for _, f := range schema.Fields {
		if f.Required && !exercised[f.Name] {
			return nil, &domain.SchemaError{
				Kind:   kind,
				Reason: "required field " + f.Name + " matched no input column",
			}
		}
	}

	if len(unmapped) > 0 {
		logger.Warn().
			Str("kind", string(kind)).
			Strs("columns", unmapped).
			Msg("unmapped columns preserved under raw names")
	}

	return ds, nil
}

func missingRequired(rec domain.CanonicalRecord, fields []aliases.FieldSpec) string {
	for _, f := range fields {
		if f.Required && rec.Fields[f.Name].IsMissing() {
			return f.Name
		}
	}
	return ""
}
