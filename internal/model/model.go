package model

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DayLayout is the title format of daily projects (DD.MM.YYYY).
const DayLayout = "02.01.2006"

// DefaultTaskTitles seeds every new project.
var DefaultTaskTitles = []string{"pushups", "squats", "dumbbell"}

type Project struct {
	Title string `json:"title"`
	Tasks []Task `json:"tasks"`
}

type Task struct {
	Title    string   `json:"title"`
	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`
}

// SameProject reports whether two projects share an identity. Projects are
// identified by title only; tasks are not compared.
func SameProject(a, b Project) bool {
	return a.Title == b.Title
}

// NewProject returns a project with the default task template.
func NewProject(title string) Project {
	tasks := make([]Task, 0, len(DefaultTaskTitles))
	for _, t := range DefaultTaskTitles {
		tasks = append(tasks, Task{Title: t, Status: StatusZero, Priority: PriorityUnset})
	}
	return Project{Title: title, Tasks: tasks}
}

// Clone returns a deep copy.
func (p Project) Clone() Project {
	out := Project{Title: p.Title}
	if p.Tasks != nil {
		out.Tasks = append([]Task(nil), p.Tasks...)
	}
	return out
}

func CloneProjects(in []Project) []Project {
	if in == nil {
		return nil
	}
	out := make([]Project, len(in))
	for i := range in {
		out[i] = in[i].Clone()
	}
	return out
}

func ContainsProject(projects []Project, p Project) bool {
	for _, existing := range projects {
		if SameProject(existing, p) {
			return true
		}
	}
	return false
}

// Status is task progress. On disk it is the legacy string percentage.
type Status int

const (
	StatusZero Status = iota
	StatusQuarter
	StatusHalf
	StatusThreeQuarters
	StatusDone
)

var statusWire = [...]string{
	StatusZero:          "0",
	StatusQuarter:       "25",
	StatusHalf:          "50",
	StatusThreeQuarters: "75",
	StatusDone:          "100",
}

// Statuses returns every status in picker order.
func Statuses() []Status {
	return []Status{StatusZero, StatusQuarter, StatusHalf, StatusThreeQuarters, StatusDone}
}

func (s Status) Valid() bool {
	return s >= StatusZero && s <= StatusDone
}

func (s Status) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusWire[s]
}

// Percent is the numeric progress value.
func (s Status) Percent() int {
	return int(s) * 25
}

func ParseStatus(v string) (Status, error) {
	v = strings.TrimSpace(v)
	for i, w := range statusWire {
		if w == v {
			return Status(i), nil
		}
	}
	return StatusZero, fmt.Errorf("invalid status: %q (expected 0|25|50|75|100)", v)
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid status: %d", int(s))
	}
	return json.Marshal(statusWire[s])
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("status: %w", err)
	}
	parsed, err := ParseStatus(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Priority ranks a task: 1 is highest, 3 lowest, 0 unset.
type Priority int

const (
	PriorityUnset  Priority = 0
	PriorityHigh   Priority = 1
	PriorityMedium Priority = 2
	PriorityLow    Priority = 3
)

// Priorities returns every priority in picker order. Unset sorts last.
func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityMedium, PriorityLow, PriorityUnset}
}

func (p Priority) Valid() bool {
	return p >= PriorityUnset && p <= PriorityLow
}

// Rank is the position of p in picker order.
func (p Priority) Rank() int {
	for i, v := range Priorities() {
		if v == p {
			return i
		}
	}
	return len(Priorities())
}

// Indicator renders the priority as a run of exclamation marks.
func (p Priority) Indicator() string {
	switch p {
	case PriorityHigh:
		return "!!!"
	case PriorityMedium:
		return "!!"
	case PriorityLow:
		return "!"
	default:
		return "-"
	}
}

func (p Priority) String() string {
	return strconv.Itoa(int(p))
}

func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid priority: %d", int(p))
	}
	return []byte(strconv.Itoa(int(p))), nil
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var v int
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("priority: %w", err)
	}
	if !Priority(v).Valid() {
		return fmt.Errorf("invalid priority: %d (expected 0|1|2|3)", v)
	}
	*p = Priority(v)
	return nil
}

// SortTasks orders tasks by priority rank, and tasks of equal priority by
// status. The sort is stable.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Status < tasks[j].Status
	})
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Priority.Rank() < tasks[j].Priority.Rank()
	})
}

// Progress summarizes completion of a project.
type Progress struct {
	Done    int
	Total   int
	Percent int
}

func ProgressOf(p Project) Progress {
	out := Progress{Total: len(p.Tasks)}
	for _, t := range p.Tasks {
		if t.Status == StatusDone {
			out.Done++
		}
	}
	if out.Total > 0 {
		out.Percent = out.Done * 100 / out.Total
	}
	return out
}

// AverageStatus is the mean task progress in percent (0 for no tasks).
func AverageStatus(p Project) int {
	if len(p.Tasks) == 0 {
		return 0
	}
	sum := 0
	for _, t := range p.Tasks {
		sum += t.Status.Percent()
	}
	return sum / len(p.Tasks)
}

// DateParseError reports a title that was expected to be a DD.MM.YYYY day.
type DateParseError struct {
	Value string
	Err   error
}

func (e DateParseError) Error() string {
	return fmt.Sprintf("not a day title: %q", e.Value)
}

func (e DateParseError) Unwrap() error { return e.Err }

// ParseDay parses a DD.MM.YYYY title in the local time zone.
func ParseDay(title string) (time.Time, error) {
	t, err := time.ParseInLocation(DayLayout, strings.TrimSpace(title), time.Local)
	if err != nil {
		return time.Time{}, DateParseError{Value: title, Err: err}
	}
	return t, nil
}

func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// Day truncates t to local midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
