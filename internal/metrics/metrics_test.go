package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/moffa90/go-hexflash/flasher"
	"github.com/moffa90/go-hexflash/ihex"
)

func mustData(t *testing.T, n int) ihex.Record {
	t.Helper()
	r, err := ihex.NewDataRecord(0, make([]byte, n))
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestObserve(t *testing.T) {
	c := New()
	data := mustData(t, 16)
	ext := ihex.NewExtendedAddressRecord(0)

	events := []flasher.Event{
		{Kind: flasher.EventSent, Record: ext, Attempt: 1},
		{Kind: flasher.EventAcked, Record: ext, Attempt: 1},
		{Kind: flasher.EventSent, Record: data, Attempt: 1},
		{Kind: flasher.EventNack, Record: data, Attempt: 1},
		{Kind: flasher.EventSent, Record: data, Attempt: 2},
		{Kind: flasher.EventTimeout, Record: data, Attempt: 2},
		{Kind: flasher.EventSent, Record: data, Attempt: 3},
		{Kind: flasher.EventAcked, Record: data, Attempt: 3},
	}
	for _, ev := range events {
		c.Observe(ev)
	}

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"data sent", testutil.ToFloat64(c.sent.WithLabelValues("data")), 3},
		{"ext sent", testutil.ToFloat64(c.sent.WithLabelValues("extended address")), 1},
		{"data acked", testutil.ToFloat64(c.acked.WithLabelValues("data")), 1},
		{"nacks", testutil.ToFloat64(c.nacks), 1},
		{"timeouts", testutil.ToFloat64(c.timeouts), 1},
		{"bytes", testutil.ToFloat64(c.bytes), 16},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(c.attempts); n != 1 {
		t.Errorf("attempts histogram series = %d, want 1", n)
	}
}

func TestObserveTransfer(t *testing.T) {
	c := New()

	c.ObserveTransfer(flasher.Stats{Elapsed: 1500 * time.Millisecond}, nil)
	if got := testutil.ToFloat64(c.success); got != 1 {
		t.Errorf("success = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.duration); got != 1.5 {
		t.Errorf("duration = %v, want 1.5", got)
	}

	c.ObserveTransfer(flasher.Stats{}, errors.New("aborted"))
	if got := testutil.ToFloat64(c.success); got != 0 {
		t.Errorf("success = %v, want 0", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	c := New()
	c.Observe(flasher.Event{Kind: flasher.EventNack, Record: ihex.NewEndOfFileRecord()})

	path := filepath.Join(t.TempDir(), "hexflash.prom")
	if err := c.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "hexflash_nacks_total 1") {
		t.Errorf("textfile missing nack counter:\n%s", content)
	}
}

func TestGatherer(t *testing.T) {
	c := New()
	c.Observe(flasher.Event{Kind: flasher.EventNack, Record: ihex.NewEndOfFileRecord()})
	c.Observe(flasher.Event{Kind: flasher.EventTimeout, Record: ihex.NewEndOfFileRecord()})
	c.Observe(flasher.Event{Kind: flasher.EventTimeout, Record: ihex.NewEndOfFileRecord()})

	want := `
# HELP hexflash_ack_timeouts_total Attempts that received no reply within the read timeout
# TYPE hexflash_ack_timeouts_total counter
hexflash_ack_timeouts_total 2
# HELP hexflash_nacks_total Replies that did not acknowledge the record
# TYPE hexflash_nacks_total counter
hexflash_nacks_total 1
`
	err := testutil.GatherAndCompare(c.Gatherer(), strings.NewReader(want),
		"hexflash_nacks_total", "hexflash_ack_timeouts_total")
	if err != nil {
		t.Error(err)
	}
}
