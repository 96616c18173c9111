package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/de-tools/promo-atlas/pkg/models/domain"
	"github.com/de-tools/promo-atlas/pkg/services/aliases"
)

// nullMarkers are cell spellings treated as absent before any coercion.
var nullMarkers = map[string]bool{
	"": true, "null": true, "NULL": true, "n/a": true, "N/A": true, "na": true, "NA": true,
}

// coerce converts one raw cell into a typed value. Failures yield Missing;
// the caller decides whether that excludes the row. Parsing is
// locale-independent: dates use the kind's single fixed layout, numbers use
// strconv with thousands separators stripped.
func coerce(cell string, ft aliases.FieldType, dateLayout string) domain.Value {
	cell = strings.TrimSpace(cell)
	if nullMarkers[cell] {
		return domain.Missing()
	}

	switch ft {
	case aliases.FieldNumber:
		return coerceNumber(cell)
	case aliases.FieldDate:
		t, err := time.Parse(dateLayout, cell)
		if err != nil {
			return domain.Missing()
		}
		return domain.DateValue(t)
	case aliases.FieldGeo:
		return coerceGeo(cell)
	default:
		return domain.StringValue(cell)
	}
}

func coerceNumber(cell string) domain.Value {
	cell = strings.ReplaceAll(cell, ",", "")
	cell = strings.TrimSuffix(cell, "%")
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return domain.Missing()
	}
	return domain.NumberValue(f)
}

// coerceGeo parses a geocoordinate component. Values outside [-180, 180]
// are rejected; full lat/lng range validation is per field name at the
// schema level, so the shared bound is the wider one.
func coerceGeo(cell string) domain.Value {
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return domain.Missing()
	}
	if f < -180 || f > 180 {
		return domain.Missing()
	}
	return domain.NumberValue(f)
}
