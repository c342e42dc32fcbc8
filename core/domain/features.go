// ABOUTME: Ordered linguistic feature map decoded from the news analysis response
// ABOUTME: Keeps upstream key order and distinguishes numeric from verbatim values

package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Feature is a single linguistic feature entry.
type Feature struct {
	Key   string
	Value FeatureValue
}

// FeatureValue holds either a number or the verbatim text of any other JSON value.
type FeatureValue struct {
	Numeric bool
	Number  float64
	Text    string
	raw     json.RawMessage
}

// NumberValue returns a numeric feature value.
func NumberValue(n float64) FeatureValue {
	raw, _ := json.Marshal(n)
	return FeatureValue{Numeric: true, Number: n, raw: raw}
}

// TextValue returns a non-numeric feature value.
func TextValue(s string) FeatureValue {
	raw, _ := json.Marshal(s)
	return FeatureValue{Text: s, raw: raw}
}

// LinguisticFeatures is an ordered JSON object. A nil value means the field was absent.
type LinguisticFeatures []Feature

// UnmarshalJSON decodes an object while preserving key order.
func (f *LinguisticFeatures) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("linguistic_features: expected object, got %v", tok)
	}

	out := LinguisticFeatures{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("linguistic_features: unexpected key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("linguistic_features[%s]: %w", key, err)
		}
		out = append(out, Feature{Key: key, Value: parseFeatureValue(raw)})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*f = out
	return nil
}

// MarshalJSON encodes the features as an object in their original order.
func (f LinguisticFeatures) MarshalJSON() ([]byte, error) {
	if f == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, feat := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(feat.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		raw := feat.Value.raw
		if len(raw) == 0 {
			raw = []byte("null")
		}
		buf.Write(raw)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func parseFeatureValue(raw json.RawMessage) FeatureValue {
	trimmed := bytes.TrimSpace(raw)
	value := FeatureValue{raw: append(json.RawMessage(nil), trimmed...)}

	if len(trimmed) == 0 {
		return value
	}

	switch c := trimmed[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			value.Text = s
			return value
		}
	case c == '-' || (c >= '0' && c <= '9'):
		if n, err := strconv.ParseFloat(string(trimmed), 64); err == nil {
			value.Numeric = true
			value.Number = n
			return value
		}
	}

	value.Text = string(trimmed)
	return value
}
