package performance

import (
	"errors"
	"sort"
	"time"

	"logistics/internal/core/domain/model/branch"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrLogIsNotConstructed = errors.New("Log must be created via NewLog constructor")

// DailySnapshot holds one branch's counters for one UTC calendar day.
type DailySnapshot struct {
	Day         time.Time
	Performance branch.Performance
}

// Log is the per-branch history of daily snapshots. It holds at most one
// snapshot per day, ordered by day.
type Log struct {
	branchID  kernel.UUID
	kind      branch.Kind
	snapshots []DailySnapshot
	dirty     map[time.Time]struct{}
	guard     guard.ConstructorGuard
}

// NewLog creates an empty log for a branch.
func NewLog(branchID kernel.UUID, kind branch.Kind) (*Log, error) {
	return RestoreLog(branchID, kind, nil)
}

// RestoreLog rebuilds a log from persisted snapshots. Duplicate days keep the last one.
func RestoreLog(branchID kernel.UUID, kind branch.Kind, snapshots []DailySnapshot) (*Log, error) {
	if err := errors.Join(branchID.Validate(), kind.Validate()); err != nil {
		return nil, err
	}

	l := &Log{
		branchID: branchID,
		kind:     kind,
		dirty:    make(map[time.Time]struct{}),
		guard:    guard.NewConstructorGuard(),
	}
	for _, s := range snapshots {
		l.put(DailySnapshot{Day: DayOf(s.Day), Performance: s.Performance})
	}
	return l, nil
}

func (l *Log) Validate() error {
	if l == nil {
		return ErrLogIsNotConstructed
	}
	return l.guard.Validate(ErrLogIsNotConstructed)
}

func (l *Log) BranchID() kernel.UUID { return l.branchID }

func (l *Log) Kind() branch.Kind { return l.kind }

// Snapshots returns a copy of the history, oldest first.
func (l *Log) Snapshots() []DailySnapshot {
	return append([]DailySnapshot(nil), l.snapshots...)
}

// Snapshot returns the counters for the day containing at, creating a zeroed
// snapshot on first touch. The returned pointer is valid until the next call
// that creates a snapshot.
func (l *Log) Snapshot(at time.Time) *branch.Performance {
	day := DayOf(at)
	l.dirty[day] = struct{}{}

	i := l.search(day)
	if i < len(l.snapshots) && l.snapshots[i].Day.Equal(day) {
		return &l.snapshots[i].Performance
	}

	l.snapshots = append(l.snapshots, DailySnapshot{})
	copy(l.snapshots[i+1:], l.snapshots[i:])
	l.snapshots[i] = DailySnapshot{Day: day}
	return &l.snapshots[i].Performance
}

// Find returns the snapshot for the given day without creating one.
func (l *Log) Find(at time.Time) (DailySnapshot, bool) {
	day := DayOf(at)
	i := l.search(day)
	if i < len(l.snapshots) && l.snapshots[i].Day.Equal(day) {
		return l.snapshots[i], true
	}
	return DailySnapshot{}, false
}

// Range returns snapshots with from <= day <= to.
func (l *Log) Range(from, to time.Time) []DailySnapshot {
	from, to = DayOf(from), DayOf(to)
	var out []DailySnapshot
	for _, s := range l.snapshots {
		if s.Day.Before(from) || s.Day.After(to) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Touched returns the snapshots obtained through Snapshot since the log was loaded.
func (l *Log) Touched() []DailySnapshot {
	out := make([]DailySnapshot, 0, len(l.dirty))
	for _, s := range l.snapshots {
		if _, ok := l.dirty[s.Day]; ok {
			out = append(out, s)
		}
	}
	return out
}

func (l *Log) put(s DailySnapshot) {
	i := l.search(s.Day)
	if i < len(l.snapshots) && l.snapshots[i].Day.Equal(s.Day) {
		l.snapshots[i] = s
		return
	}
	l.snapshots = append(l.snapshots, DailySnapshot{})
	copy(l.snapshots[i+1:], l.snapshots[i:])
	l.snapshots[i] = s
}

func (l *Log) search(day time.Time) int {
	return sort.Search(len(l.snapshots), func(i int) bool {
		return !l.snapshots[i].Day.Before(day)
	})
}

// DayOf truncates t to midnight UTC.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
