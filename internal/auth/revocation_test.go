package auth

import (
	"context"
	"sync"
	"testing"
)

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	revoked, err := store.IsRevoked(ctx, "token-a")
	if err != nil || revoked {
		t.Fatalf("expected fresh token to be unrevoked")
	}

	if err := store.Revoke(ctx, "token-a"); err != nil {
		t.Fatalf("revoke error: %v", err)
	}
	// Revoking twice is a no-op.
	if err := store.Revoke(ctx, "token-a"); err != nil {
		t.Fatalf("revoke error: %v", err)
	}

	revoked, err = store.IsRevoked(ctx, "token-a")
	if err != nil || !revoked {
		t.Fatalf("expected token-a to stay revoked")
	}
	revoked, err = store.IsRevoked(ctx, "token-b")
	if err != nil || revoked {
		t.Fatalf("expected token-b to be unaffected")
	}
}

func TestMemoryRevocationStoreConcurrent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryRevocationStore()

	var wg sync.WaitGroup
	tokens := []string{"t1", "t2", "t3", "t4", "t5"}
	for _, token := range tokens {
		wg.Add(2)
		go func(token string) {
			defer wg.Done()
			_ = store.Revoke(ctx, token)
		}(token)
		go func(token string) {
			defer wg.Done()
			_, _ = store.IsRevoked(ctx, token)
		}(token)
	}
	wg.Wait()

	for _, token := range tokens {
		revoked, err := store.IsRevoked(ctx, token)
		if err != nil || !revoked {
			t.Fatalf("expected %s to be revoked after concurrent writes", token)
		}
	}
}
