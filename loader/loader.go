// Package loader validates and normalizes exported session datasets, from a
// bootstrap file or an upload body, into the shape the store holds.
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sonnes/chatview/core"
	"gopkg.in/yaml.v3"
)

const recordsField = "conversationRecords"

// errShape is the reason reported for input that is neither an array nor a
// session-like object.
const errShape = "not a valid session array or object"

// Normalize decodes a JSON dataset. The input must be either an array of
// session objects or a single object with an array-valued
// conversationRecords field. Sessions keep their input order.
func Normalize(data []byte) ([]core.Session, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, &ValidationError{Reason: errShape}
	}
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, &ValidationError{Reason: "invalid JSON", Err: err}
	}

	var items []json.RawMessage
	switch data[0] {
	case '[':
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, &ValidationError{Reason: errShape, Err: err}
		}
	case '{':
		if !hasRecordsArray(data) {
			return nil, &ValidationError{Reason: errShape}
		}
		items = []json.RawMessage{data}
	default:
		return nil, &ValidationError{Reason: errShape}
	}

	sessions := make([]core.Session, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, &ValidationError{Reason: fmt.Sprintf("session %d is not an object", i)}
		}
		if err := json.Unmarshal(item, &sessions[i]); err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("session %d", i), Err: err}
		}
	}

	Fill(sessions)
	return sessions, nil
}

// NormalizeValue normalizes an already-decoded value, such as the result of
// decoding YAML.
func NormalizeValue(v any) ([]core.Session, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &ValidationError{Reason: errShape, Err: err}
	}
	return Normalize(data)
}

// Fill assigns generated-id-<index> to sessions without an ID and replaces
// missing record lists with empty ones. It is idempotent.
func Fill(sessions []core.Session) {
	for i := range sessions {
		if sessions[i].ID == "" {
			sessions[i].ID = fmt.Sprintf("generated-id-%d", i)
		}
		if sessions[i].Records == nil {
			sessions[i].Records = []core.Record{}
		}
	}
}

func hasRecordsArray(obj []byte) bool {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(obj, &fields); err != nil {
		return false
	}
	raw := bytes.TrimSpace(fields[recordsField])
	return len(raw) > 0 && raw[0] == '['
}

// Loader runs normalization followed by a chain of transformers.
type Loader struct {
	Transformers []core.Transformer
}

// Load normalizes data and applies the loader's transformers.
func (l *Loader) Load(data []byte) ([]core.Session, error) {
	sessions, err := Normalize(data)
	if err != nil {
		return nil, err
	}
	if err := core.Chain(sessions, l.Transformers...); err != nil {
		return nil, fmt.Errorf("transform dataset: %w", err)
	}
	return sessions, nil
}

// LoadFile reads a dataset file. Files ending in .yaml or .yml are decoded as
// YAML, anything else as JSON. A missing file yields an *IOError wrapping
// fs.ErrNotExist.
func (l *Loader) LoadFile(path string) ([]core.Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Path: path, Op: "read", Err: err}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, &IOError{Path: path, Op: "parse", Err: err}
		}
		if data, err = json.Marshal(v); err != nil {
			return nil, &IOError{Path: path, Op: "parse", Err: err}
		}
	}

	sessions, err := l.Load(data)
	if err != nil {
		return nil, &IOError{Path: path, Op: "validate", Err: err}
	}
	return sessions, nil
}

// LoadFile reads a dataset file without any transformers.
func LoadFile(path string) ([]core.Session, error) {
	return (&Loader{}).LoadFile(path)
}
