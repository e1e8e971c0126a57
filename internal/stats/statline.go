package stats

import "sync"

// Statline is the event counter for one in-progress game. Every counter starts at zero and can
// never go below zero.
type Statline struct {
	box Box
	mu  sync.Mutex
}

func NewStatline() *Statline {
	return &Statline{}
}

// Increment adds one to stat and returns the new value. There is no upper bound.
func (sl *Statline) Increment(stat PrimitiveStat) (int, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.set(stat, 1)
}

// Decrement subtracts one from stat, flooring at zero, and returns the new value. It knows nothing
// about paired made/attempted counters.
func (sl *Statline) Decrement(stat PrimitiveStat) (int, error) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.set(stat, -1)
}

// RecordMake counts a made shot: made and attempted both go up by one.
func (sl *Statline) RecordMake(shot Shot) Box {
	made, attempted := shot.primitives()
	sl.mu.Lock()
	defer sl.mu.Unlock()
	_, _ = sl.set(made, 1)
	_, _ = sl.set(attempted, 1)
	return sl.box
}

// RecordMiss counts a missed shot: only attempted goes up.
func (sl *Statline) RecordMiss(shot Shot) Box {
	_, attempted := shot.primitives()
	sl.mu.Lock()
	defer sl.mu.Unlock()
	_, _ = sl.set(attempted, 1)
	return sl.box
}

// UndoMake decrements made and attempted. Each field floors on its own, so an inconsistent
// made > attempted state is not repaired.
func (sl *Statline) UndoMake(shot Shot) Box {
	made, attempted := shot.primitives()
	sl.mu.Lock()
	defer sl.mu.Unlock()
	_, _ = sl.set(made, -1)
	_, _ = sl.set(attempted, -1)
	return sl.box
}

// UndoMiss decrements attempted only.
func (sl *Statline) UndoMiss(shot Shot) Box {
	_, attempted := shot.primitives()
	sl.mu.Lock()
	defer sl.mu.Unlock()
	_, _ = sl.set(attempted, -1)
	return sl.box
}

// Box returns a copy of the current counters.
func (sl *Statline) Box() Box {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.box
}

// set adds add to stat. A result below zero leaves the counter at zero. Callers hold mu.
func (sl *Statline) set(stat PrimitiveStat, add int) (int, error) {
	c := sl.box.counter(stat)
	if c == nil {
		return 0, ErrUnknownStat
	}
	if *c+add < 0 {
		*c = 0
		return 0, nil
	}
	*c += add
	return *c, nil
}
