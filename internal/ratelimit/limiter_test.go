package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestHashKeyStable(t *testing.T) {
	a := hashKey("ip:10.0.0.1")
	if a != hashKey("ip:10.0.0.1") {
		t.Fatal("hashKey not deterministic")
	}
	if a == hashKey("ip:10.0.0.2") {
		t.Fatal("distinct keys hashed equal")
	}
	if len(a) != 64 {
		t.Errorf("len(hashKey) = %d, want 64", len(a))
	}
}

func TestDisabledLimiterAllows(t *testing.T) {
	l := NewRedisLimiter(nil, "otp", 0, time.Minute)
	ok, err := l.Allow(context.Background(), "anything")
	if err != nil || !ok {
		t.Fatalf("Allow = %v, %v; want true, nil", ok, err)
	}
}

// txRecorder answers MULTI/EXEC batches from memory and keeps what it saw.
type txRecorder struct {
	counters map[string]int64
	ttls     map[string]int64
	batches  [][]string
	err      error
}

func (r *txRecorder) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		return nil, errors.New("no network in tests")
	}
}

func (r *txRecorder) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		return fmt.Errorf("unexpected standalone command %s", cmd.Name())
	}
}

func (r *txRecorder) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		if r.err != nil {
			return r.err
		}
		var names []string
		for _, cmd := range cmds {
			names = append(names, cmd.Name())
			args := cmd.Args()
			switch c := cmd.(type) {
			case *redis.BoolCmd:
				key := args[1].(string)
				if _, exists := r.counters[key]; exists {
					c.SetVal(false)
					continue
				}
				r.counters[key] = 0
				r.ttls[key] = args[4].(int64)
				c.SetVal(true)
			case *redis.IntCmd:
				key := args[1].(string)
				r.counters[key]++
				c.SetVal(r.counters[key])
			}
		}
		r.batches = append(r.batches, names)
		return nil
	}
}

func newRecordedLimiter(requests int, window time.Duration) (*RedisLimiter, *txRecorder) {
	rec := &txRecorder{counters: map[string]int64{}, ttls: map[string]int64{}}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(rec)
	return NewRedisLimiter(client, "rl:test", requests, window), rec
}

func TestRedisLimiterCountsInsideTransaction(t *testing.T) {
	l, rec := newRecordedLimiter(2, time.Minute)
	ctx := context.Background()

	want := []bool{true, true, false}
	for i, expected := range want {
		ok, err := l.Allow(ctx, "otp-verify:10.0.0.1")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i+1, err)
		}
		if ok != expected {
			t.Fatalf("Allow #%d = %v, want %v", i+1, ok, expected)
		}
	}

	if len(rec.batches) != len(want) {
		t.Fatalf("batches = %d, want %d", len(rec.batches), len(want))
	}
	for _, batch := range rec.batches {
		if fmt.Sprint(batch) != "[multi set incr exec]" {
			t.Fatalf("batch = %v, want counter setup and increment in one transaction", batch)
		}
	}

	key := "rl:test:" + hashKey("otp-verify:10.0.0.1")
	if ttl := rec.ttls[key]; ttl != 60 {
		t.Fatalf("ttl = %d, want 60", ttl)
	}
}

func TestRedisLimiterKeysAreIndependent(t *testing.T) {
	l, _ := newRecordedLimiter(1, time.Minute)
	ctx := context.Background()

	for _, key := range []string{"otp:10.0.0.1", "otp:10.0.0.2"} {
		ok, err := l.Allow(ctx, key)
		if err != nil || !ok {
			t.Fatalf("Allow(%s) = %v, %v; want true, nil", key, ok, err)
		}
	}
	if ok, _ := l.Allow(ctx, "otp:10.0.0.1"); ok {
		t.Fatal("second call for the same key should be limited")
	}
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	l, rec := newRecordedLimiter(1, time.Minute)
	rec.err = errors.New("connection refused")

	ok, err := l.Allow(context.Background(), "otp:10.0.0.1")
	if err == nil {
		t.Fatal("expected error")
	}
	if !ok {
		t.Fatal("limiter should allow when Redis is unavailable")
	}
}
