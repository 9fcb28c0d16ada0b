/*
Package store keeps profile rows and their groups. A row holds the kind tag and the encoded
record bytes; decoding is left to package bean.

Memory is the plain in-process store, File persists a Memory as one zstd compressed file.
*/
package store

import (
	"errors"
	"sort"
	"sync"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/group"
	"github.com/e1732a364fed/vs_profile/utils"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

var ErrNotFound = errors.New("not found")

type Row struct {
	ID      int64
	GroupID int64
	Order   int64
	Kind    bean.Kind
	Data    []byte
}

// Group is a named list of rows. Subscription is the encoded group.Subscription, empty for
// groups the user fills by hand.
type Group struct {
	ID           int64
	Name         string
	Subscription []byte
}

type Store interface {
	Groups() []Group
	Group(id int64) (Group, error)

	// PutGroup 的 ID 为 0 时新建
	PutGroup(g Group) (Group, error)
	DeleteGroup(id int64) error

	// Rows 按 Order 排序
	Rows(groupID int64) ([]Row, error)
	Row(id int64) (Row, error)
	PutRows(rows ...Row) ([]Row, error)
	DeleteRows(ids ...int64) error
}

type Memory struct {
	mu     sync.RWMutex
	nextID atomic.Int64
	groups map[int64]Group
	rows   map[int64]Row
}

func NewMemory() *Memory {
	return &Memory{
		groups: map[int64]Group{},
		rows:   map[int64]Row{},
	}
}

func (m *Memory) newID() int64 { return m.nextID.Inc() }

// 载入已有数据时, 保证新分配的 id 不与之冲突
func (m *Memory) seen(id int64) {
	for {
		cur := m.nextID.Load()
		if id <= cur || m.nextID.CAS(cur, id) {
			return
		}
	}
}

func (m *Memory) Groups() []Group {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := utils.GetMapSortedKeySlice(m.groups)
	r := make([]Group, 0, len(ids))
	for _, id := range ids {
		r = append(r, m.groups[id])
	}
	return r
}

func (m *Memory) Group(id int64) (Group, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, ok := m.groups[id]
	if !ok {
		return g, utils.ErrInErr{ErrDesc: "group", ErrDetail: ErrNotFound, Data: id}
	}
	return g, nil
}

func (m *Memory) PutGroup(g Group) (Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if g.ID == 0 {
		g.ID = m.newID()
	} else {
		m.seen(g.ID)
	}
	g.Subscription = utils.CloneSlice(g.Subscription)
	m.groups[g.ID] = g
	return g, nil
}

// DeleteGroup removes the group and all of its rows.
func (m *Memory) DeleteGroup(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.groups[id]; !ok {
		return utils.ErrInErr{ErrDesc: "group", ErrDetail: ErrNotFound, Data: id}
	}
	delete(m.groups, id)
	for rid, r := range m.rows {
		if r.GroupID == id {
			delete(m.rows, rid)
		}
	}
	return nil
}

func (m *Memory) Rows(groupID int64) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.groups[groupID]; !ok {
		return nil, utils.ErrInErr{ErrDesc: "group", ErrDetail: ErrNotFound, Data: groupID}
	}
	var r []Row
	for _, row := range m.rows {
		if row.GroupID == groupID {
			r = append(r, row)
		}
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Order != r[j].Order {
			return r[i].Order < r[j].Order
		}
		return r[i].ID < r[j].ID
	})
	return r, nil
}

func (m *Memory) Row(id int64) (Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rows[id]
	if !ok {
		return r, utils.ErrInErr{ErrDesc: "row", ErrDetail: ErrNotFound, Data: id}
	}
	return r, nil
}

// PutRows inserts rows with ID 0 and replaces the others. The group must exist.
func (m *Memory) PutRows(rows ...Row) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range rows {
		if _, ok := m.groups[r.GroupID]; !ok {
			return nil, utils.ErrInErr{ErrDesc: "group", ErrDetail: ErrNotFound, Data: r.GroupID}
		}
		if !r.Kind.Valid() {
			return nil, utils.ErrInErr{ErrDesc: "row kind", ErrDetail: utils.ErrWrongParameter, Data: int32(r.Kind)}
		}
	}

	result := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.ID == 0 {
			r.ID = m.newID()
		} else {
			m.seen(r.ID)
		}
		r.Data = utils.CloneSlice(r.Data)
		m.rows[r.ID] = r
		result = append(result, r)
	}
	return result, nil
}

func (m *Memory) DeleteRows(ids ...int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range ids {
		delete(m.rows, id)
	}
	return nil
}

// Entries decodes the rows of a group. Rows that fail to decode are left out and counted
// in failed.
func Entries(s Store, groupID int64, workers int) (entries []group.Entry, failed int, err error) {
	rows, err := s.Rows(groupID)
	if err != nil {
		return nil, 0, err
	}
	items := make([]bean.Stored, len(rows))
	for i, r := range rows {
		items[i] = bean.Stored{Kind: r.Kind, Data: r.Data}
	}
	results, failed := bean.DecodeBatch(items, workers)
	for i, res := range results {
		if res.Err != nil {
			continue
		}
		entries = append(entries, group.Entry{ID: rows[i].ID, Order: rows[i].Order, Bean: res.Bean})
	}
	return entries, failed, nil
}

// Add appends profiles to the end of a group.
func Add(s Store, groupID int64, list []bean.Bean) ([]Row, error) {
	rows, err := s.Rows(groupID)
	if err != nil {
		return nil, err
	}
	var order int64
	for _, r := range rows {
		if r.Order > order {
			order = r.Order
		}
	}
	add := make([]Row, 0, len(list))
	for _, b := range list {
		order++
		add = append(add, Row{GroupID: groupID, Order: order, Kind: b.Kind(), Data: bean.Encode(b)})
	}
	return s.PutRows(add...)
}

// Apply writes the outcome of a group refresh back.
func Apply(s Store, groupID int64, c *group.Changes) error {
	if c == nil {
		return utils.ErrNilParameter
	}
	ids := make([]int64, 0, len(c.Delete))
	for _, e := range c.Delete {
		ids = append(ids, e.ID)
	}
	if err := s.DeleteRows(ids...); err != nil {
		return err
	}

	rows := make([]Row, 0, len(c.Insert)+len(c.Update))
	for _, list := range [][]group.Entry{c.Update, c.Insert} {
		for _, e := range list {
			rows = append(rows, Row{ID: e.ID, GroupID: groupID, Order: e.Order, Kind: e.Bean.Kind(), Data: bean.Encode(e.Bean)})
		}
	}
	if _, err := s.PutRows(rows...); err != nil {
		return err
	}

	if ce := utils.CanLogDebug("group changes applied"); ce != nil {
		ce.Write(zap.Int64("group", groupID), zap.Int("deleted", len(ids)), zap.Int("written", len(rows)))
	}
	return nil
}
