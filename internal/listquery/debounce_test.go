package listquery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	d.Trigger("lost")
	d.Stop()

	select {
	case v := <-d.Output():
		t.Fatalf("stopped debouncer committed %q", v)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncer_SeparateWindowsCommitSeparately(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	d.Trigger("a")
	assert.Equal(t, "a", receive(t, d))

	d.Trigger("b")
	assert.Equal(t, "b", receive(t, d))
}

func TestDebouncer_KeepsLatestUncollectedValue(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	defer d.Stop()

	d.Trigger("first")
	time.Sleep(60 * time.Millisecond)
	d.Trigger("second")
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, "second", receive(t, d))
}

func receive(t *testing.T, d *Debouncer) string {
	t.Helper()
	select {
	case v := <-d.Output():
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for debounced value")
		return ""
	}
}
