package bus

import (
	"context"
	"testing"
)

func TestEmitDeliversInRegistrationOrder(t *testing.T) {
	t.Parallel()

	b := New()
	var order []string
	b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		order = append(order, "first")
	})
	b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		order = append(order, "second")
	})

	b.Emit(context.Background(), "ingredients:changed", nil)

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("delivery order = %v, want [first second]", order)
	}
}

func TestEmitUnknownEventIsNoop(t *testing.T) {
	t.Parallel()

	b := New()
	b.Emit(context.Background(), "nothing:listens", 42)
}

func TestUnsubscribeIsIdempotent(t *testing.T) {
	t.Parallel()

	b := New()
	calls := 0
	unsubscribe := b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		calls++
	})

	b.Emit(context.Background(), "ingredients:changed", nil)
	unsubscribe()
	unsubscribe()
	b.Emit(context.Background(), "ingredients:changed", nil)

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
}

func TestUnsubscribeRemovesOnlyItsHandler(t *testing.T) {
	t.Parallel()

	b := New()
	var kept, dropped int
	cancel := b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		dropped++
	})
	b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		kept++
	})

	cancel()
	b.Emit(context.Background(), "ingredients:changed", nil)

	if dropped != 0 {
		t.Fatalf("cancelled handler ran %d times", dropped)
	}
	if kept != 1 {
		t.Fatalf("surviving handler ran %d times, want 1", kept)
	}
}

func TestPanickingHandlerDoesNotStopDelivery(t *testing.T) {
	t.Parallel()

	b := New()
	reached := false
	b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		panic("boom")
	})
	b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		reached = true
	})

	b.Emit(context.Background(), "ingredients:changed", nil)

	if !reached {
		t.Fatal("handler after the panicking one never ran")
	}
}

func TestEmitCarriesPayload(t *testing.T) {
	t.Parallel()

	b := New()
	var got any
	b.Subscribe("ingredients:changed", func(ctx context.Context, payload any) {
		got = payload
	})

	b.Emit(context.Background(), "ingredients:changed", []int{1, 2})

	ids, ok := got.([]int)
	if !ok || len(ids) != 2 {
		t.Fatalf("payload = %v, want [1 2]", got)
	}
}
