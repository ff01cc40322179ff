package fetch

import (
	"context"
	"errors"
	"testing"

	"bookhub/internal/api"
	"bookhub/pkg/models"
)

func TestLoadStoresValue(t *testing.T) {
	var r Resource[int]

	err := r.Load(context.Background(), func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := r.Snapshot()
	if s.Data != 42 || s.Loading || s.Err != nil {
		t.Errorf("Snapshot() = %+v, want data 42, not loading, no error", s)
	}
}

func TestLoadRecordsError(t *testing.T) {
	var r Resource[int]
	boom := errors.New("boom")

	if err := r.Load(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("Load() error = %v, want %v", err, boom)
	}

	s := r.Snapshot()
	if s.Loading || !errors.Is(s.Err, boom) {
		t.Errorf("Snapshot() = %+v, want recorded error and loading cleared", s)
	}
}

func TestLoadNotAuthenticatedIsSilentSkip(t *testing.T) {
	var r Resource[[]models.Checkout]
	r.Set([]models.Checkout{{DaysLeft: 3}})

	err := r.Load(context.Background(), func(ctx context.Context) ([]models.Checkout, error) {
		return nil, api.ErrNotAuthenticated
	})
	if err != nil {
		t.Fatalf("Load() error = %v, want nil", err)
	}

	s := r.Snapshot()
	if s.Loading {
		t.Error("loading flag still set after unauthenticated skip")
	}
	if s.Err != nil {
		t.Errorf("Err = %v, want nil", s.Err)
	}
	if len(s.Data) != 1 {
		t.Errorf("data was touched: %+v", s.Data)
	}
}

func TestInvalidateDiscardsInFlightResult(t *testing.T) {
	var r Resource[int]
	r.Set(7)

	err := r.Load(context.Background(), func(ctx context.Context) (int, error) {
		// Simulates an invalidation landing while the fetch runs.
		r.Invalidate()
		return 99, nil
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := r.Data(); got != 7 {
		t.Errorf("Data() = %d, want stale result discarded and 7 kept", got)
	}
	if r.Loading() {
		t.Error("loading flag still set after the fenced load returned")
	}
}

func TestSetFencesSlowerFetch(t *testing.T) {
	var r Resource[models.Book]

	err := r.Load(context.Background(), func(ctx context.Context) (models.Book, error) {
		// An optimistic update wins over the fetch it overlaps.
		r.Update(func(b *models.Book) {
			b.CopiesAvailable = 2
		})
		return models.Book{CopiesAvailable: 3}, nil
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := r.Data(); got.CopiesAvailable != 2 {
		t.Errorf("CopiesAvailable = %d, want optimistic update preserved", got.CopiesAvailable)
	}
	if r.Loading() {
		t.Error("loading flag still set after the fenced load returned")
	}
}

func TestFencedLoadClearsLoading(t *testing.T) {
	var r Resource[int]
	r.Set(7)

	for name, interrupt := range map[string]func(){
		"invalidate": r.Invalidate,
		"set":        func() { r.Set(2) },
	} {
		if err := r.Load(context.Background(), func(ctx context.Context) (int, error) {
			interrupt()
			return 99, nil
		}); err != nil {
			t.Fatalf("%s: Load() error = %v", name, err)
		}
		if r.Loading() {
			t.Errorf("%s: Loading() = true after Load returned", name)
		}
	}
}

func TestUpdateMutatesInPlace(t *testing.T) {
	var r Resource[models.Book]
	r.Set(models.Book{Copies: 5, CopiesAvailable: 5})

	r.Update(func(b *models.Book) {
		b.Copies++
		b.CopiesAvailable++
	})

	got := r.Data()
	if got.Copies != 6 || got.CopiesAvailable != 6 {
		t.Errorf("Data() = %+v, want both counters incremented", got)
	}
}
