// Package view builds the data behind the two read pages: the session list
// and the session detail.
package view

import (
	"errors"

	"github.com/sonnes/chatview/core"
	"github.com/sonnes/chatview/search"
	"github.com/sonnes/chatview/store"
)

// ErrNotFound is returned by Detail when no session has the requested ID.
var ErrNotFound = errors.New("session not found")

// ListView is the data for the session list page.
type ListView struct {
	Sessions []core.Session // matching sessions, in store order
	HasData  bool           // store is non-empty, independent of the query
	Query    *search.Query
	Message  string // informational notice, e.g. after a failed lookup
	Info     store.Info
}

// SearchQuery returns the query string as typed.
func (v ListView) SearchQuery() string {
	return v.Query.String()
}

// Turn is a record together with its position in the session.
type Turn struct {
	Index  int
	Record core.Record
}

// DetailView is the data for the session detail page.
type DetailView struct {
	Session core.Session
	Turns   []Turn // matching records, in original order
	Query   *search.Query
}

// SearchQuery returns the query string as typed.
func (v DetailView) SearchQuery() string {
	return v.Query.String()
}

// Records returns the matching records without their indexes.
func (v DetailView) Records() []core.Record {
	out := make([]core.Record, len(v.Turns))
	for i, t := range v.Turns {
		out[i] = t.Record
	}
	return out
}

// List filters the store's sessions by query.
func List(st *store.Store, query string) ListView {
	q := search.New(query)
	all := st.All()
	return ListView{
		Sessions: q.FilterSessions(all),
		HasData:  len(all) > 0,
		Query:    q,
		Info:     st.Info(),
	}
}

// Detail looks up a session and filters its records by query.
func Detail(st *store.Store, id, query string) (DetailView, error) {
	sess, ok := st.Find(id)
	if !ok {
		return DetailView{}, ErrNotFound
	}

	q := search.New(query)
	turns := make([]Turn, 0, len(sess.Records))
	for i, r := range sess.Records {
		if q.MatchRecord(r) {
			turns = append(turns, Turn{Index: i, Record: r})
		}
	}
	return DetailView{Session: sess, Turns: turns, Query: q}, nil
}
