package main

import (
	"testing"

	"github.com/streadway/amqp"
)

func TestRedeliverAdvancesAttemptCount(t *testing.T) {
	attempt, retry := redeliver(nil)
	if attempt != 1 || !retry {
		t.Errorf("first failure: attempt=%d retry=%v, want 1 true", attempt, retry)
	}

	attempt, retry = redeliver(amqp.Table{"x-retry-count": int32(1)})
	if attempt != 2 || !retry {
		t.Errorf("second failure: attempt=%d retry=%v, want 2 true", attempt, retry)
	}
}

func TestRedeliverStopsAtCap(t *testing.T) {
	attempt, retry := redeliver(amqp.Table{"x-retry-count": int32(2)})
	if attempt != 3 || retry {
		t.Errorf("third failure must be dropped: attempt=%d retry=%v", attempt, retry)
	}

	// A deterministically failing job therefore terminates: the count
	// strictly increases with every republish.
	headers := amqp.Table{}
	var last int32
	for i := 0; i < 10; i++ {
		attempt, retry := redeliver(headers)
		if attempt <= last {
			t.Fatalf("attempt count must strictly increase, got %d after %d", attempt, last)
		}
		last = attempt
		if !retry {
			return
		}
		headers["x-retry-count"] = attempt
	}
	t.Fatal("failing job was never dropped")
}

func TestRedeliverToleratesBrokerIntegerWidths(t *testing.T) {
	if attempt, _ := redeliver(amqp.Table{"x-retry-count": int64(1)}); attempt != 2 {
		t.Errorf("int64 header: attempt=%d, want 2", attempt)
	}
	if attempt, _ := redeliver(amqp.Table{"x-retry-count": 1}); attempt != 2 {
		t.Errorf("int header: attempt=%d, want 2", attempt)
	}
}
