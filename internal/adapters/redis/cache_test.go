package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "github.com/KunTheNoobie/Budget-Hotel-Reservation-System-sub001/internal/adapters/redis"
)

type payload struct {
	ID   int64
	Name string
}

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	ctx := context.Background()

	var out payload
	ok, err := c.Get(ctx, "k", &out)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected miss on empty cache")
	}

	if err := c.Set(ctx, "k", payload{ID: 10, Name: "Deluxe Suite"}, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err = c.Get(ctx, "k", &out)
	if err != nil || !ok {
		t.Fatalf("expected hit, ok=%v err=%v", ok, err)
	}
	if out.ID != 10 || out.Name != "Deluxe Suite" {
		t.Fatalf("unexpected value: %+v", out)
	}

	if err := c.Del(ctx, "k"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, _ = c.Get(ctx, "k", &out)
	if ok {
		t.Fatalf("expected miss after delete")
	}
}
