package docs

import (
	"reflect"
	"strings"
	"testing"
)

func TestTopics(t *testing.T) {
	t.Parallel()

	want := []string{"config", "keys", "storage"}
	if got := Topics(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	body, ok := Get(" KEYS ")
	if !ok || !strings.HasPrefix(body, "# Keys") {
		t.Fatalf("unexpected body %q", body)
	}
	for _, bad := range []string{"", "missing", "../docs"} {
		if _, ok := Get(bad); ok {
			t.Fatalf("expected %q to be unknown", bad)
		}
	}
}
