package recordstore

import (
	"sync"
	"testing"

	"github.com/mfaulds/driftline/schema"
)

func TestInitStore(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		if err := InitStore(schema.SQLiteBackend, ":memory:"); err != nil {
			t.Fatalf("Failed to initialize store: %v", err)
		}

		if Manager.GetRecordStore() == nil {
			t.Fatal("Record store is nil")
		}

		CloseStore()
	})

	t.Run("idempotent setup", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		if err := InitStore(schema.SQLiteBackend, ":memory:"); err != nil {
			t.Fatalf("First init failed: %v", err)
		}
		if err := InitStore(schema.SQLiteBackend, ":memory:"); err != nil {
			t.Fatalf("Second init failed: %v", err)
		}

		// Multiple closes should be safe (sync.Once)
		CloseStore()
		CloseStore()
	})

	t.Run("empty backend disables persistence", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		if err := InitStore("", ""); err != nil {
			t.Fatalf("Init with empty backend failed: %v", err)
		}
		if Manager.GetRecordStore() == nil {
			t.Fatal("Record store is nil")
		}
		CloseStore()
	})
}
