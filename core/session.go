// Package core defines the exported chat-session format that the loader
// produces, the store holds, and the renderers consume.
package core

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// JSON field names of the exported session format.
const (
	fieldSessionID = "sessionId"
	fieldName      = "sessionName"
	fieldRecords   = "conversationRecords"
	fieldQuestion  = "question"
	fieldAnswer    = "answer"
)

// Session is one exported conversation.
//
// Name is nil when the source omits sessionName (or sets it to a non-string
// value), which is distinct from an explicitly empty name. Fields the format
// does not know about are kept in Extra and written back unchanged.
type Session struct {
	ID      string
	Name    *string
	Records []Record
	Extra   map[string]json.RawMessage
}

// Record is one question/answer turn within a Session.
type Record struct {
	Question *string
	Answer   *string // markdown
	Extra    map[string]json.RawMessage
}

// DisplayName returns the session name, falling back to the ID.
func (s Session) DisplayName() string {
	if s.Name != nil && *s.Name != "" {
		return *s.Name
	}
	return s.ID
}

// String returns a pointer to v. Handy for building records in code.
func String(v string) *string {
	return &v
}

// Value dereferences p, returning "" for nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// UnmarshalJSON decodes a session object. A non-array conversationRecords is
// treated as absent; the loader replaces it with an empty slice. A non-zero
// numeric sessionId keeps its literal text, any other non-string id is dropped.
func (s *Session) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = Session{}

	if raw, ok := fields[fieldSessionID]; ok {
		s.ID = idValue(raw)
		delete(fields, fieldSessionID)
	}
	if raw, ok := fields[fieldName]; ok {
		if name, ok := stringValue(raw); ok {
			s.Name = &name
			delete(fields, fieldName)
		}
	}
	if raw, ok := fields[fieldRecords]; ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err == nil && items != nil {
			s.Records = make([]Record, len(items))
			for i, item := range items {
				// Non-object entries decode to an empty record.
				_ = s.Records[i].UnmarshalJSON(item)
			}
		}
		delete(fields, fieldRecords)
	}

	if len(fields) > 0 {
		s.Extra = fields
	}
	return nil
}

// MarshalJSON writes the session back in the exported format, merging Extra.
func (s Session) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Extra)+3)
	for k, v := range s.Extra {
		out[k] = v
	}
	out[fieldSessionID] = s.ID
	if s.Name != nil {
		out[fieldName] = *s.Name
	}
	records := s.Records
	if records == nil {
		records = []Record{}
	}
	out[fieldRecords] = records
	return json.Marshal(out)
}

// UnmarshalJSON decodes a record object. Non-string question or answer values
// stay in Extra and are treated as absent.
func (r *Record) UnmarshalJSON(data []byte) error {
	*r = Record{}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if raw, ok := fields[fieldQuestion]; ok {
		if q, ok := stringValue(raw); ok {
			r.Question = &q
			delete(fields, fieldQuestion)
		}
	}
	if raw, ok := fields[fieldAnswer]; ok {
		if a, ok := stringValue(raw); ok {
			r.Answer = &a
			delete(fields, fieldAnswer)
		}
	}
	if len(fields) > 0 {
		r.Extra = fields
	}
	return nil
}

// MarshalJSON writes the record back in the exported format, merging Extra.
func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+2)
	for k, v := range r.Extra {
		out[k] = v
	}
	if r.Question != nil {
		out[fieldQuestion] = *r.Question
	}
	if r.Answer != nil {
		out[fieldAnswer] = *r.Answer
	}
	return json.Marshal(out)
}

func stringValue(raw json.RawMessage) (string, bool) {
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func idValue(raw json.RawMessage) string {
	if s, ok := stringValue(raw); ok {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if f, err := strconv.ParseFloat(n.String(), 64); err == nil && f != 0 {
			return n.String()
		}
	}
	return ""
}
