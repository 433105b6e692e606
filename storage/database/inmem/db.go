package inmemdb

import (
	"sync"

	"github.com/google/uuid"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/course"
	"github.com/trezcool/skillboost/core/payment"
	"github.com/trezcool/skillboost/core/user"
)

type (
	// DB holds one table per collection. Safe for concurrent use.
	DB struct {
		user       *table[user.User]
		request    *table[user.TeacherRequest]
		course     *table[course.Course]
		assignment *table[course.Assignment]
		submission *table[course.Submission]
		review     *table[course.Review]
		class      *table[course.Class]
		payment    *table[payment.Payment]
	}

	// table keeps rows in insertion order.
	table[T any] struct {
		rows  map[string]*T
		ids   []string
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user:       newTable[user.User](),
		request:    newTable[user.TeacherRequest](),
		course:     newTable[course.Course](),
		assignment: newTable[course.Assignment](),
		submission: newTable[course.Submission](),
		review:     newTable[course.Review](),
		class:      newTable[course.Class](),
		payment:    newTable[payment.Payment](),
	}
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]*T)}
}

func newID() string {
	return uuid.NewString()
}

// insert must be called with the write lock held.
func (t *table[T]) insert(id string, row T) {
	t.rows[id] = &row
	t.ids = append(t.ids, id)
}

func (t *table[T]) get(id string) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	if row, ok := t.rows[id]; ok {
		return *row, true
	}
	var zero T
	return zero, false
}

// find returns the first row, in insertion order, that matches.
func (t *table[T]) find(match func(T) bool) (T, bool) {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	for _, id := range t.ids {
		if row := *t.rows[id]; match(row) {
			return row, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) all() []T {
	return t.window(core.Pagination{})
}

func (t *table[T]) window(p core.Pagination) []T {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	ids := t.ids
	if skip := p.Skip(); skip > 0 {
		if skip >= int64(len(ids)) {
			return []T{}
		}
		ids = ids[skip:]
	}
	if limit := p.Limit(); limit > 0 && limit < int64(len(ids)) {
		ids = ids[:limit]
	}

	rows := make([]T, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, *t.rows[id])
	}
	return rows
}

func (t *table[T]) count() int64 {
	t.mutex.RLock()
	defer t.mutex.RUnlock()
	return int64(len(t.ids))
}

// update applies fn to the row and reports whether it exists.
func (t *table[T]) update(id string, fn func(*T)) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	row, ok := t.rows[id]
	if ok {
		fn(row)
	}
	return ok
}

func (t *table[T]) delete(id string) bool {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	for i, rid := range t.ids {
		if rid == id {
			t.ids = append(t.ids[:i], t.ids[i+1:]...)
			break
		}
	}
	return true
}

// create assigns a new id to the row and stores it.
func create[T any](t *table[T], row T, setID func(*T, string)) T {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	id := newID()
	setID(&row, id)
	t.insert(id, row)
	return row
}
