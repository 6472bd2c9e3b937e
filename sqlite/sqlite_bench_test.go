package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/swi"
	"github.com/fwojciec/swi/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback journal modes.
// This simulates repeated retraining: saving a wrapper set whose labels change every time.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkSaves(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkSaves(b, true)
	})
}

func benchmarkSaves(b *testing.B, useWAL bool) {
	b.Helper()

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	// Open enables WAL for file databases; switch back for the baseline.
	if !useWAL {
		_, err := db.ExecContext(context.Background(), "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	ctx := context.Background()
	svc := sqlite.NewWrapperSetService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		set := &swi.WrapperSet{Name: "benchmark", Wrappers: benchTable(i, 20), Examples: i}
		if err := svc.SaveWrapperSet(ctx, set); err != nil {
			b.Fatal(err)
		}
	}
}

// benchTable returns n css wrappers whose selectors depend on round.
func benchTable(round, n int) swi.WrapperTable {
	table := make(swi.WrapperTable, n)
	for j := 0; j < n; j++ {
		table[fmt.Sprintf("field%d", j)] = &swi.Css{
			Selector:  fmt.Sprintf("div.item-%d span.value-%d", round, j),
			Attribute: swi.TextAttribute,
			Pattern:   &swi.Pattern{Leading: j % 3},
			Target:    fmt.Sprintf("value %d", j),
		}
	}
	return table
}
