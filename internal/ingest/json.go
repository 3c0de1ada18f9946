package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/jmylchreest/leadrank/pkg/schema"
)

// parseJSON reads an array of flat objects. The header is the union of keys
// in first-seen order; objects missing a key get an empty cell.
func parseJSON(data []byte) (schema.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return schema.Table{}, err
	}

	var (
		columns []string
		index   = map[string]int{}
		objects []map[string]string
	)
	for dec.More() {
		obj, keys, err := readObject(dec)
		if err != nil {
			return schema.Table{}, err
		}
		for _, k := range keys {
			if _, ok := index[k]; !ok {
				index[k] = len(columns)
				columns = append(columns, k)
			}
		}
		objects = append(objects, obj)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return schema.Table{}, err
	}

	if len(columns) == 0 {
		return schema.Table{}, ErrEmptyInput
	}

	t := schema.Table{Columns: columns, Rows: make([][]string, len(objects))}
	for i, obj := range objects {
		row := make([]string, len(columns))
		for k, v := range obj {
			row[index[k]] = v
		}
		t.Rows[i] = row
	}
	return t, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrMalformedInput, want, tok)
	}
	return nil
}

// readObject decodes one object, returning its cells and its keys in order.
func readObject(dec *json.Decoder) (map[string]string, []string, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, err
	}

	obj := map[string]string{}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("%w: expected object key, got %v", ErrMalformedInput, tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		cell, err := cellText(raw)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := obj[key]; !dup {
			keys = append(keys, key)
		}
		obj[key] = cell
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, err
	}
	return obj, keys, nil
}

// cellText renders a JSON value as table text. Numbers are written without
// an exponent so the cleaner sees "5000000" rather than "5e+06".
func cellText(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return x.String(), nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	default:
		// Nested values are kept as compact JSON.
		var buf bytes.Buffer
		if err := json.Compact(&buf, raw); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
		}
		return buf.String(), nil
	}
}
