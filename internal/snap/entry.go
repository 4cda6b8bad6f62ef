package snap

import "time"

// Entry is a named leaf of the working tree holding content and timestamps.
// Entries are owned by the caller and are not safe for concurrent use.
//
// The created timestamp never exceeds lastModified; every setter keeps that
// ordering.
type Entry struct {
	name         string
	content      string
	created      time.Time
	lastModified time.Time

	// frozen is the node this entry last froze to, cleared on any mutation.
	frozen *entryNode
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(name, content string) *Entry {
	return NewEntryAt(name, content, time.Now())
}

// NewEntryAt creates an entry whose created and lastModified timestamps are t.
func NewEntryAt(name, content string, t time.Time) *Entry {
	return &Entry{
		name:         name,
		content:      content,
		created:      t,
		lastModified: t,
	}
}

func (e *Entry) Name() string { return e.name }

func (e *Entry) SetName(name string) {
	e.name = name
	e.frozen = nil
}

func (e *Entry) Content() string { return e.content }

// SetContent replaces the content and stamps lastModified with the current time.
func (e *Entry) SetContent(content string) {
	e.SetContentAt(content, time.Now())
}

// SetContentAt replaces the content and stamps lastModified with t.
// A t earlier than the created timestamp is clamped to it.
func (e *Entry) SetContentAt(content string, t time.Time) {
	e.content = content
	e.SetLastModified(t)
}

func (e *Entry) Created() time.Time { return e.created }

// SetCreated changes the created timestamp, pulling lastModified forward
// when it would otherwise precede t.
func (e *Entry) SetCreated(t time.Time) {
	e.created = t
	if e.lastModified.Before(t) {
		e.lastModified = t
	}
	e.frozen = nil
}

func (e *Entry) LastModified() time.Time { return e.lastModified }

// SetLastModified changes the lastModified timestamp.
// A t earlier than the created timestamp is clamped to it.
func (e *Entry) SetLastModified(t time.Time) {
	if t.Before(e.created) {
		t = e.created
	}
	e.lastModified = t
	e.frozen = nil
}

// freeze returns an immutable node holding the entry's current state,
// reusing the previous node when nothing changed since the last freeze.
func (e *Entry) freeze() (n *entryNode, reused bool) {
	if e.frozen != nil {
		return e.frozen, true
	}
	e.frozen = &entryNode{
		name:         e.name,
		content:      e.content,
		created:      e.created,
		lastModified: e.lastModified,
	}
	return e.frozen, false
}
