// Package models defines the entry records persisted by the server and the
// payloads handed to the views.
package models

import "time"

// Entry is the user-supplied part of a bookmark.
type Entry struct {
	URL   string
	Title string
	Notes string
}

// DbEntry is a stored entry. Timestamps are UTC.
type DbEntry struct {
	ID        int64
	URL       string
	Title     string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Entry returns the editable fields of e.
func (e DbEntry) Entry() Entry {
	return Entry{URL: e.URL, Title: e.Title, Notes: e.Notes}
}

// SingleEntry is rendered by the "entry" view.
type SingleEntry struct {
	Entry DbEntry
	Addr  string
}

// ManyEntries is rendered by the "index" view.
type ManyEntries struct {
	Entries []DbEntry
	Addr    string
}

// NewEntry is rendered by the "new_entry" view.
type NewEntry struct {
	Entry Entry
	Addr  string
}
