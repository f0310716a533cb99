package view

import (
	"testing"

	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(sessions ...core.Session) *store.Store {
	st := store.New()
	if len(sessions) > 0 {
		st.Replace(sessions, "test")
	}
	return st
}

func TestListEmptyStore(t *testing.T) {
	v := List(newStore(), "")
	assert.False(t, v.HasData)
	assert.NotNil(t, v.Sessions)
	assert.Empty(t, v.Sessions)

	v = List(newStore(), "anything")
	assert.False(t, v.HasData)
	assert.Empty(t, v.Sessions)
	assert.Equal(t, "anything", v.SearchQuery())
}

func TestListNoMatches(t *testing.T) {
	st := newStore(core.Session{ID: "s1", Name: core.String("Alpha")})

	v := List(st, "zzz")
	assert.True(t, v.HasData)
	assert.Empty(t, v.Sessions)
}

func TestListFilters(t *testing.T) {
	st := newStore(
		core.Session{ID: "s1", Name: core.String("Alpha")},
		core.Session{ID: "s2", Records: []core.Record{{Answer: core.String("alpha inside")}}},
		core.Session{ID: "s3", Name: core.String("Beta")},
	)

	v := List(st, "ALPHA")
	require.Len(t, v.Sessions, 2)
	assert.Equal(t, "s1", v.Sessions[0].ID)
	assert.Equal(t, "s2", v.Sessions[1].ID)

	v = List(st, "")
	assert.Len(t, v.Sessions, 3)
	assert.Equal(t, 3, v.Info.Sessions)
}

func TestDetail(t *testing.T) {
	st := newStore(core.Session{
		ID: "s1",
		Records: []core.Record{
			{Question: core.String("Q1"), Answer: core.String("A1")},
			{Question: core.String("Q2"), Answer: core.String("A2")},
			{Question: core.String("q1 again")},
		},
	})

	v, err := Detail(st, "s1", "Q1")
	require.NoError(t, err)
	assert.Equal(t, "s1", v.Session.ID)
	require.Len(t, v.Turns, 2)
	assert.Equal(t, 0, v.Turns[0].Index)
	assert.Equal(t, 2, v.Turns[1].Index)
	assert.Len(t, v.Records(), 2)

	v, err = Detail(st, "s1", "zzz")
	require.NoError(t, err)
	assert.Equal(t, "s1", v.Session.ID)
	assert.Empty(t, v.Turns)

	v, err = Detail(st, "s1", "")
	require.NoError(t, err)
	assert.Len(t, v.Turns, 3)
	assert.Equal(t, "", v.SearchQuery())
}

func TestDetailNotFound(t *testing.T) {
	_, err := Detail(newStore(), "missing", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = Detail(newStore(core.Session{ID: "s1"}), "s2", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}
