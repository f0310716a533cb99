package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionUnmarshal(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		wantID      string
		wantName    *string
		wantRecords int
		wantExtra   []string
	}{
		{
			name:        "full session",
			in:          `{"sessionId":"s1","sessionName":"Demo","conversationRecords":[{"question":"Q","answer":"A"}]}`,
			wantID:      "s1",
			wantName:    String("Demo"),
			wantRecords: 1,
		},
		{
			name:   "missing fields",
			in:     `{}`,
			wantID: "",
		},
		{
			name:      "records not an array",
			in:        `{"sessionId":"s2","conversationRecords":"nope"}`,
			wantID:    "s2",
			wantExtra: nil,
		},
		{
			name:   "numeric id keeps literal",
			in:     `{"sessionId":42}`,
			wantID: "42",
		},
		{
			name:   "zero id dropped",
			in:     `{"sessionId":0}`,
			wantID: "",
		},
		{
			name:   "negative zero id dropped",
			in:     `{"sessionId":-0.0}`,
			wantID: "",
		},
		{
			name:   "boolean id dropped",
			in:     `{"sessionId":true}`,
			wantID: "",
		},
		{
			name:      "null name stays in extra",
			in:        `{"sessionId":"s3","sessionName":null}`,
			wantID:    "s3",
			wantExtra: []string{"sessionName"},
		},
		{
			name:      "empty name is present",
			in:        `{"sessionId":"s4","sessionName":""}`,
			wantID:    "s4",
			wantName:  String(""),
			wantExtra: nil,
		},
		{
			name:      "unknown fields kept",
			in:        `{"sessionId":"s5","createdAt":"2024-01-01","tags":["a"]}`,
			wantID:    "s5",
			wantExtra: []string{"createdAt", "tags"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Session
			require.NoError(t, json.Unmarshal([]byte(tt.in), &s))
			assert.Equal(t, tt.wantID, s.ID)
			assert.Equal(t, tt.wantName, s.Name)
			assert.Len(t, s.Records, tt.wantRecords)
			for _, k := range tt.wantExtra {
				assert.Contains(t, s.Extra, k)
			}
			if tt.wantExtra == nil {
				assert.Empty(t, s.Extra)
			}
		})
	}
}

func TestRecordUnmarshal(t *testing.T) {
	var r Record
	require.NoError(t, json.Unmarshal([]byte(`{"question":"Why?","answer":7,"model":"x"}`), &r))

	require.NotNil(t, r.Question)
	assert.Equal(t, "Why?", *r.Question)
	assert.Nil(t, r.Answer, "non-string answer is absent")
	assert.Contains(t, r.Extra, "answer")
	assert.Contains(t, r.Extra, "model")
}

func TestNonObjectRecordDecodesEmpty(t *testing.T) {
	var s Session
	require.NoError(t, json.Unmarshal([]byte(`{"sessionId":"s","conversationRecords":[1,null,{"question":"q"}]}`), &s))

	require.Len(t, s.Records, 3)
	assert.Equal(t, Record{}, s.Records[0])
	assert.Equal(t, Record{}, s.Records[1])
	assert.Equal(t, "q", Value(s.Records[2].Question))
}

func TestSessionMarshalPassesThroughExtra(t *testing.T) {
	in := `{"sessionId":"s1","sessionName":"Demo","source":"cursor","conversationRecords":[{"question":"Q","ts":12}]}`

	var s Session
	require.NoError(t, json.Unmarshal([]byte(in), &s))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, in, string(out))
}

func TestSessionMarshalEmptyRecords(t *testing.T) {
	out, err := json.Marshal(Session{ID: "s1"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"sessionId":"s1","conversationRecords":[]}`, string(out))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Demo", Session{ID: "s1", Name: String("Demo")}.DisplayName())
	assert.Equal(t, "s1", Session{ID: "s1", Name: String("")}.DisplayName())
	assert.Equal(t, "s1", Session{ID: "s1"}.DisplayName())
}

func TestCountRecords(t *testing.T) {
	sessions := []Session{
		{ID: "a", Records: make([]Record, 2)},
		{ID: "b"},
		{ID: "c", Records: make([]Record, 3)},
	}
	assert.Equal(t, 5, CountRecords(sessions))
}

type upper struct{}

func (upper) Transform(sessions []Session) error {
	for i := range sessions {
		sessions[i].ID += "!"
	}
	return nil
}

func TestChain(t *testing.T) {
	sessions := []Session{{ID: "a"}, {ID: "b"}}
	require.NoError(t, Chain(sessions, upper{}, upper{}))
	assert.Equal(t, "a!!", sessions[0].ID)
	assert.Equal(t, "b!!", sessions[1].ID)
}
