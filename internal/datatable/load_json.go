package datatable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"sqlterm/internal/logging"
)

var jsonLog = logging.Component("load_json")

// LoadJSON iterates JSON objects from r, unions field names to form the
// column set (spec.md §4.1: "Loading from JSON iterates objects, unions
// field names ... inserting the absent marker for missing fields"), and
// constructs a Table named name.
//
// Accepted shapes, grounded on fileloader/json.go's tolerant parsing: a
// single JSON array of objects, a single JSON object (one row), or a
// "JSON streaming" file containing multiple top-level objects/arrays back
// to back (NDJSON and similar).
func LoadJSON(name string, r io.Reader) (*Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	colIndex := make(map[string]int)
	var header []string
	var objects []objRow

	appendObject := func(raw json.RawMessage) error {
		keys, values, err := decodeOrderedObject(raw)
		if err != nil {
			jsonLog.Warn().Err(err).Str("table", name).Msg("skipping malformed json object")
			return nil
		}
		for _, k := range keys {
			if _, ok := colIndex[k]; !ok {
				colIndex[k] = len(header)
				header = append(header, k)
			}
		}
		objects = append(objects, objRow{keys: keys, values: values})
		return nil
	}

	for {
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("decode json: %w", err)
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 {
			continue
		}
		if trimmed[0] == '[' {
			var elems []json.RawMessage
			if err := json.Unmarshal(trimmed, &elems); err != nil {
				return nil, fmt.Errorf("decode json array: %w", err)
			}
			for _, e := range elems {
				if err := appendObject(e); err != nil {
					return nil, err
				}
			}
			continue
		}
		if err := appendObject(trimmed); err != nil {
			return nil, err
		}
	}

	header = NormalizeHeaders(header)

	raw := make([][]rawCell, len(objects))
	for i, obj := range objects {
		row := make([]rawCell, len(header))
		present := make([]bool, len(header))
		for _, k := range obj.keys {
			idx, ok := colIndex[k]
			if !ok {
				continue
			}
			row[idx] = rawCellFromJSON(obj.values[k])
			present[idx] = true
		}
		for c := range row {
			if !present[c] {
				row[c] = rawCell{absent: true}
			}
		}
		raw[i] = row
	}

	return BuildFromRaw(name, header, raw)
}

type objRow struct {
	keys   []string
	values map[string]any
}

// decodeOrderedObject decodes a single JSON object, preserving the
// original key order so column ordering is deterministic (a plain
// map[string]any loses that order, which ojg's oj.Parse would too).
func decodeOrderedObject(raw json.RawMessage) ([]string, map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object, got %v", tok)
	}

	var keys []string
	values := make(map[string]any)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var val any
		if err := dec.Decode(&val); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values[key] = val
	}
	if _, err := dec.Token(); err != nil { // consume closing '}'
		return nil, nil, err
	}
	return keys, values, nil
}

// rawCellFromJSON converts a decoded JSON value into the raw-cell form
// type inference consumes.
func rawCellFromJSON(v any) rawCell {
	switch val := v.(type) {
	case nil:
		return rawCell{literal: true, typ: Null}
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return rawCell{literal: true, typ: Integer, num: float64(i), text: val.String()}
		}
		f, _ := val.Float64()
		return rawCell{literal: true, typ: Float, num: f, text: val.String()}
	case bool:
		return rawCell{literal: true, typ: Boolean, b: val, text: strconv.FormatBool(val)}
	case string:
		return rawText(val)
	default: // nested object/array: flatten to its JSON text for display
		// and for JPath-style method-call access (SPEC_FULL.md §4.2).
		b, err := json.Marshal(val)
		if err != nil {
			return rawText(fmt.Sprintf("%v", val))
		}
		return rawText(string(b))
	}
}
