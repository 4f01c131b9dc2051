// Package memstore provides the in-memory implementation of domain.Store.
// State lives for the lifetime of the process; Load replaces it wholesale.
package memstore

import (
	"slices"
	"sync"

	"github.com/runoshun/planner/internal/domain"
)

// Ensure Store implements domain.Store.
var _ domain.Store = (*Store)(nil)

// collection is an insertion-ordered map.
type collection[T any] struct {
	items map[string]T
	keys  []string
}

func newCollection[T any]() collection[T] {
	return collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) put(id string, v T) {
	if _, ok := c.items[id]; !ok {
		c.keys = append(c.keys, id)
	}
	c.items[id] = v
}

func (c *collection[T]) remove(id string) {
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == id })
}

func (c *collection[T]) list() []T {
	out := make([]T, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.items[k])
	}
	return out
}

func (c *collection[T]) clone() collection[T] {
	items := make(map[string]T, len(c.items))
	for k, v := range c.items {
		items[k] = v
	}
	return collection[T]{items: items, keys: slices.Clone(c.keys)}
}

// storeData holds the three entity collections.
// Fields are ordered to minimize memory padding.
type storeData struct {
	projects    collection[domain.Project]
	tasks       collection[domain.Task]
	events      collection[domain.CalendarEvent]
	eventByTask map[string]string // taskID -> eventID
}

func newStoreData() *storeData {
	return &storeData{
		projects:    newCollection[domain.Project](),
		tasks:       newCollection[domain.Task](),
		events:      newCollection[domain.CalendarEvent](),
		eventByTask: make(map[string]string),
	}
}

func (d *storeData) clone() *storeData {
	idx := make(map[string]string, len(d.eventByTask))
	for k, v := range d.eventByTask {
		idx[k] = v
	}
	return &storeData{
		projects:    d.projects.clone(),
		tasks:       d.tasks.clone(),
		events:      d.events.clone(),
		eventByTask: idx,
	}
}

func (d *storeData) snapshot() domain.Snapshot {
	return domain.Snapshot{
		Projects: d.projects.list(),
		Tasks:    d.tasks.list(),
		Events:   d.events.list(),
	}
}

// Store implements domain.Store with a single-writer mutex.
// Fields are ordered to minimize memory padding.
type Store struct {
	data        *storeData
	subscribers map[int]func(domain.Snapshot)
	nextSubID   int
	mu          sync.Mutex
	subMu       sync.Mutex
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		data:        newStoreData(),
		subscribers: make(map[int]func(domain.Snapshot)),
	}
}

// View runs fn against the current state. Writes made by fn are discarded.
func (s *Store) View(fn func(tx domain.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&tx{data: s.data.clone()})
}

// Update runs fn against a working copy and commits it if fn returns nil.
// Subscribers are notified after the commit, outside the store lock.
func (s *Store) Update(fn func(tx domain.Tx) error) error {
	s.mu.Lock()
	work := s.data.clone()
	if err := fn(&tx{data: work}); err != nil {
		s.mu.Unlock()
		return err
	}
	s.data = work
	snap := work.snapshot()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Load replaces all state with the seed and notifies subscribers.
// Entries with duplicate IDs keep the position of the first occurrence.
func (s *Store) Load(seed domain.Seed) {
	data := newStoreData()
	t := &tx{data: data}
	for _, p := range seed.Projects {
		t.PutProject(p)
	}
	for _, task := range seed.Tasks {
		t.PutTask(task)
	}
	for _, e := range seed.Events {
		t.PutEvent(e)
	}

	s.mu.Lock()
	s.data = data
	snap := data.snapshot()
	s.mu.Unlock()

	s.notify(snap)
}

// Subscribe registers fn to receive a snapshot after every commit.
func (s *Store) Subscribe(fn func(domain.Snapshot)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *Store) notify(snap domain.Snapshot) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(domain.Snapshot), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subscribers[id])
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// tx implements domain.Tx over a storeData.
type tx struct {
	data *storeData
}

func (t *tx) Project(id string) (domain.Project, bool) {
	return t.data.projects.get(id)
}

func (t *tx) Projects() []domain.Project {
	return t.data.projects.list()
}

func (t *tx) PutProject(p domain.Project) {
	t.data.projects.put(p.ID, p)
}

func (t *tx) DeleteProject(id string) {
	t.data.projects.remove(id)
}

func (t *tx) Task(id string) (domain.Task, bool) {
	return t.data.tasks.get(id)
}

func (t *tx) Tasks() []domain.Task {
	return t.data.tasks.list()
}

func (t *tx) PutTask(task domain.Task) {
	t.data.tasks.put(task.ID, task)
}

func (t *tx) DeleteTask(id string) {
	t.data.tasks.remove(id)
}

func (t *tx) Event(id string) (domain.CalendarEvent, bool) {
	return t.data.events.get(id)
}

func (t *tx) Events() []domain.CalendarEvent {
	return t.data.events.list()
}

// EventForTask looks up the event derived from a task.
func (t *tx) EventForTask(taskID string) (domain.CalendarEvent, bool) {
	id, ok := t.data.eventByTask[taskID]
	if !ok {
		return domain.CalendarEvent{}, false
	}
	return t.data.events.get(id)
}

// PutEvent inserts or replaces an event and keeps the task index in sync.
func (t *tx) PutEvent(e domain.CalendarEvent) {
	if old, ok := t.data.events.get(e.ID); ok && old.TaskID != "" && old.TaskID != e.TaskID {
		delete(t.data.eventByTask, old.TaskID)
	}
	t.data.events.put(e.ID, e)
	if e.TaskID != "" {
		t.data.eventByTask[e.TaskID] = e.ID
	}
}

// DeleteEvent removes an event and its task index entry.
func (t *tx) DeleteEvent(id string) {
	e, ok := t.data.events.get(id)
	if !ok {
		return
	}
	if e.TaskID != "" && t.data.eventByTask[e.TaskID] == id {
		delete(t.data.eventByTask, e.TaskID)
	}
	t.data.events.remove(id)
}
