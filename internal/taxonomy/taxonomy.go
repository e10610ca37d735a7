// Package taxonomy holds the keyword configuration that drives transaction
// classification: category names grouped by type ("Income"/"Expense"), each
// with the keywords that match it.
//
// The taxonomy is an ordered slice rather than a map. Classification is
// first-match-wins, so iteration order is part of the contract and must
// survive a config round-trip.
package taxonomy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Taxonomy is an ordered list of type groups.
type Taxonomy []Group

// Group holds the categories configured under one type.
type Group struct {
	Type       string
	Categories []Category
}

// Category is a named keyword list.
type Category struct {
	Name     string
	Keywords []string
}

// ValidType reports whether s is one of the two recognized category types.
func ValidType(s string) bool {
	return s == "Income" || s == "Expense"
}

// UnmarshalJSON decodes the external config shape
//
//	{ "Income": { "Salary": ["payroll", ...] }, "Expense": { ... } }
//
// preserving the key order of the document, which encoding/json maps would
// not.
func (t *Taxonomy) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := expectDelim(dec, '{'); err != nil {
		return fmt.Errorf("taxonomy: %w", err)
	}
	var groups []Group
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("taxonomy: %w", err)
		}
		g := Group{Type: tok.(string)}
		if err := expectDelim(dec, '{'); err != nil {
			return fmt.Errorf("taxonomy: type %q: %w", g.Type, err)
		}
		for dec.More() {
			tok, err := dec.Token()
			if err != nil {
				return fmt.Errorf("taxonomy: %w", err)
			}
			c := Category{Name: tok.(string)}
			if err := dec.Decode(&c.Keywords); err != nil {
				return fmt.Errorf("taxonomy: category %q: %w", c.Name, err)
			}
			g.Categories = append(g.Categories, c)
		}
		if err := expectDelim(dec, '}'); err != nil {
			return fmt.Errorf("taxonomy: %w", err)
		}
		groups = append(groups, g)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return fmt.Errorf("taxonomy: %w", err)
	}
	*t = groups
	return nil
}

// MarshalJSON is the inverse of UnmarshalJSON, emitting groups and
// categories in slice order.
func (t Taxonomy) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, g := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(g.Type)
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteByte('{')
		for j, c := range g.Categories {
			if j > 0 {
				buf.WriteByte(',')
			}
			name, _ := json.Marshal(c.Name)
			buf.Write(name)
			buf.WriteByte(':')
			kws, err := json.Marshal(c.Keywords)
			if err != nil {
				return nil, err
			}
			buf.Write(kws)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Load reads a taxonomy JSON file.
func Load(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read %s: %w", path, err)
	}
	var t Taxonomy
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, err
	}
	return t, nil
}

func expectDelim(dec *json.Decoder, want rune) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || rune(d) != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}
