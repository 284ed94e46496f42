package schema

import (
	"fmt"
	"math"
)

// Shared rules for every migration:
//   - entries that are not JSON objects are dropped
//   - a missing or non-string title becomes a string
//   - a missing or non-array tasks list becomes []
//   - fields a migration does not name are carried through unchanged

// v1 tasks carried a boolean "done"; v2 replaced it with a progress string.
func migrateDoneToStatus(doc Document) (Document, error) {
	return rewriteTasks(doc, func(task map[string]any) map[string]any {
		done, hasDone := task["done"].(bool)
		delete(task, "done")
		switch {
		case hasDone && done:
			task["status"] = "100"
		case hasDone:
			task["status"] = "0"
		default:
			if s, ok := task["status"].(string); !ok || !validStatus(s) {
				task["status"] = "0"
			}
		}
		return task
	}), nil
}

// v3 added an integer priority (0 = unset).
func migrateAddPriority(doc Document) (Document, error) {
	return rewriteTasks(doc, func(task map[string]any) map[string]any {
		if s, ok := task["status"].(string); !ok || !validStatus(s) {
			task["status"] = "0"
		}
		if !validPriority(task["priority"]) {
			task["priority"] = 0
		}
		return task
	}), nil
}

func rewriteTasks(doc Document, fn func(map[string]any) map[string]any) Document {
	out := Document{}
	for _, rawProject := range doc {
		project, ok := rawProject.(map[string]any)
		if !ok {
			continue
		}
		p := copyObject(project)
		p["title"] = titleOf(p["title"])

		rawTasks, _ := p["tasks"].([]any)
		tasks := []any{}
		for _, rawTask := range rawTasks {
			task, ok := rawTask.(map[string]any)
			if !ok {
				continue
			}
			t := copyObject(task)
			t["title"] = titleOf(t["title"])
			tasks = append(tasks, fn(t))
		}
		p["tasks"] = tasks
		out = append(out, p)
	}
	return out
}

func copyObject(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func titleOf(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

func validStatus(s string) bool {
	switch s {
	case "0", "25", "50", "75", "100":
		return true
	}
	return false
}

func validPriority(v any) bool {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int:
		f = float64(n)
	default:
		return false
	}
	if f != math.Trunc(f) {
		return false
	}
	return f >= 0 && f <= 3
}
