package ctl

import (
	"fmt"
	"slices"
	"sync"
)

// Card registers elements. Models receive a Card in Load.
type Card interface {
	// AddBoolElems adds a boolean element with count values.
	AddBoolElems(id ElemID, count int, writable bool) error

	// AddIntElems adds an integer element with count values in
	// [min, max] and the given step. db may be nil.
	AddIntElems(id ElemID, count int, min, max, step int32, db *DBRange, writable bool, sentinels ...int32) error

	// AddEnumElems adds an enumerated element with count values indexing
	// labels.
	AddEnumElems(id ElemID, count int, labels []string, writable bool) error
}

type elem struct {
	info  ElemInfo
	value ElemValue
}

// MemoryCard is an in-process Card holding element values. It is safe for
// concurrent use.
type MemoryCard struct {
	mu    sync.RWMutex
	elems map[ElemID]*elem
	order []ElemID
}

// NewMemoryCard returns an empty card.
func NewMemoryCard() *MemoryCard {
	return &MemoryCard{elems: make(map[ElemID]*elem)}
}

// AddBoolElems implements Card.
func (c *MemoryCard) AddBoolElems(id ElemID, count int, writable bool) error {
	return c.add(ElemInfo{ID: id, Kind: KindBool, Count: count, Writable: writable})
}

// AddIntElems implements Card.
func (c *MemoryCard) AddIntElems(id ElemID, count int, min, max, step int32, db *DBRange, writable bool, sentinels ...int32) error {
	if min > max || step <= 0 {
		return fmt.Errorf("%w: %s range [%d, %d] step %d", ErrInvalidElem, id, min, max, step)
	}
	return c.add(ElemInfo{
		ID:        id,
		Kind:      KindInt,
		Count:     count,
		Writable:  writable,
		Min:       min,
		Max:       max,
		Step:      step,
		DB:        db,
		Sentinels: sentinels,
	})
}

// AddEnumElems implements Card.
func (c *MemoryCard) AddEnumElems(id ElemID, count int, labels []string, writable bool) error {
	if len(labels) == 0 {
		return fmt.Errorf("%w: %s has no labels", ErrInvalidElem, id)
	}
	return c.add(ElemInfo{
		ID:       id,
		Kind:     KindEnum,
		Count:    count,
		Writable: writable,
		Labels:   slices.Clone(labels),
	})
}

func (c *MemoryCard) add(info ElemInfo) error {
	if info.Count <= 0 {
		return fmt.Errorf("%w: %s value count %d", ErrInvalidElem, info.ID, info.Count)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.elems[info.ID]; exists {
		return fmt.Errorf("%w: %s", ErrElemExists, info.ID)
	}
	e := &elem{info: info}
	switch info.Kind {
	case KindBool:
		e.value.Bools = make([]bool, info.Count)
	case KindInt:
		e.value.Ints = make([]int32, info.Count)
		for i := range e.value.Ints {
			e.value.Ints[i] = info.Min
		}
	case KindEnum:
		e.value.Enums = make([]uint32, info.Count)
	}
	c.elems[info.ID] = e
	c.order = append(c.order, info.ID)
	return nil
}

// Elements returns the infos of all elements in registration order.
func (c *MemoryCard) Elements() []ElemInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()

	infos := make([]ElemInfo, 0, len(c.order))
	for _, id := range c.order {
		infos = append(infos, c.elems[id].info)
	}
	return infos
}

// Info returns the info of one element.
func (c *MemoryCard) Info(id ElemID) (ElemInfo, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.elems[id]
	if !ok {
		return ElemInfo{}, fmt.Errorf("%w: %s", ErrElemNotFound, id)
	}
	return e.info, nil
}

// Lookup finds the first element with the given name on any interface.
func (c *MemoryCard) Lookup(name string) (ElemID, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.order {
		if id.Name == name {
			return id, true
		}
	}
	return ElemID{}, false
}

// Value returns a copy of the stored value of an element.
func (c *MemoryCard) Value(id ElemID) (ElemValue, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.elems[id]
	if !ok {
		return ElemValue{}, fmt.Errorf("%w: %s", ErrElemNotFound, id)
	}
	return e.value.Clone(), nil
}

// SetValue validates v against the element info and stores it.
// Returns ErrElemNotWritable for read-only elements.
func (c *MemoryCard) SetValue(id ElemID, v ElemValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.elems[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrElemNotFound, id)
	}
	if !e.info.Writable {
		return fmt.Errorf("%w: %s", ErrElemNotWritable, id)
	}
	if err := e.info.Validate(v); err != nil {
		return err
	}
	e.value = v.Clone()
	return nil
}

// Store saves a value read back from the device. Only the value count is
// checked; the device is the authority on range.
func (c *MemoryCard) Store(id ElemID, v ElemValue) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.elems[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrElemNotFound, id)
	}
	if err := e.info.checkCount(v); err != nil {
		return err
	}
	e.value = v.Clone()
	return nil
}

// Validate checks that v has the right count and range for the element.
func (info ElemInfo) Validate(v ElemValue) error {
	if err := info.checkCount(v); err != nil {
		return err
	}
	switch info.Kind {
	case KindInt:
		for i, n := range v.Ints {
			if slices.Contains(info.Sentinels, n) {
				continue
			}
			if n < info.Min || n > info.Max {
				return fmt.Errorf("%w: %s[%d] = %d not in [%d, %d]", ErrValueOutOfRange, info.ID, i, n, info.Min, info.Max)
			}
		}
	case KindEnum:
		for i, n := range v.Enums {
			if int(n) >= len(info.Labels) {
				return fmt.Errorf("%w: %s[%d] = %d, %d labels", ErrValueOutOfRange, info.ID, i, n, len(info.Labels))
			}
		}
	}
	return nil
}

func (info ElemInfo) checkCount(v ElemValue) error {
	var got int
	switch info.Kind {
	case KindBool:
		got = len(v.Bools)
	case KindInt:
		got = len(v.Ints)
	case KindEnum:
		got = len(v.Enums)
	}
	if got != info.Count {
		return fmt.Errorf("%w: %s wants %d %s values, got %d", ErrValueCount, info.ID, info.Count, info.Kind, got)
	}
	return nil
}

// Compile-time interface satisfaction check.
var _ Card = (*MemoryCard)(nil)
