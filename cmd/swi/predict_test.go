package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/swi"
	main "github.com/fwojciec/swi/cmd/swi"
	"github.com/fwojciec/swi/fs"
	"github.com/fwojciec/swi/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var priceTable = swi.WrapperTable{
	"price": &swi.Css{Selector: ".price", Attribute: swi.TextAttribute, Pattern: &swi.Pattern{Leading: 1}},
}

func decodeResults(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var results []map[string]any
	require.NoError(t, json.Unmarshal(data, &results))
	return results
}

func TestPredictCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("extracts from pages with a stored set", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pages := []string{
			writeFile(t, dir, "a.html", `<span class="price">$1.00</span>`),
			writeFile(t, dir, "b.html", `<span class="price">$2.00</span>`),
			writeFile(t, dir, "c.html", `<p>nothing</p>`),
		}
		sets := &mock.WrapperSetService{
			FindWrapperSetFn: func(_ context.Context, name string) (*swi.WrapperSet, error) {
				assert.Equal(t, "shop", name)
				return &swi.WrapperSet{Name: name, Wrappers: priceTable}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Sets:       sets,
			NewInducer: newInducer(),
		}

		cmd := &main.PredictCmd{Pages: pages, Set: "shop", Concurrency: 2}
		require.NoError(t, cmd.Run(deps))

		results := decodeResults(t, stdout.Bytes())
		require.Len(t, results, 3)
		for i, page := range pages {
			assert.Equal(t, page, results[i]["page"], "results keep page order")
		}
		assert.Equal(t, map[string]any{"price": []any{"1.00"}}, results[0]["values"])
		assert.Equal(t, map[string]any{"price": []any{"2.00"}}, results[1]["values"])
		assert.Equal(t, []any{"price"}, results[2]["misses"])
	})

	t.Run("strict mode fails on missed labels", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		pages := []string{
			writeFile(t, dir, "a.html", `<span class="price">$1.00</span>`),
			writeFile(t, dir, "b.html", `<p>nothing</p>`),
		}
		sets := &mock.WrapperSetService{
			FindWrapperSetFn: func(context.Context, string) (*swi.WrapperSet, error) {
				return &swi.WrapperSet{Wrappers: priceTable}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     stderr,
			Sets:       sets,
			NewInducer: newInducer(),
		}

		cmd := &main.PredictCmd{Pages: pages, Set: "shop", Strict: true}
		err := cmd.Run(deps)

		assert.Equal(t, swi.EMISMATCH, swi.ErrorCode(err))
		assert.Contains(t, stderr.String(), pages[1])
		assert.Contains(t, stderr.String(), "no value for price")
		assert.Len(t, decodeResults(t, stdout.Bytes()), 2, "results are still written")
	})

	t.Run("reads wrappers from a file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		wrappers := filepath.Join(dir, "shop.json")
		require.NoError(t, fs.WriteWrappers(wrappers, priceTable))
		page := writeFile(t, dir, "a.html", `<span class="price">$3.50</span>`)

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Sets:       &mock.WrapperSetService{},
			NewInducer: newInducer(),
		}

		cmd := &main.PredictCmd{Pages: []string{page}, Wrappers: wrappers}
		require.NoError(t, cmd.Run(deps))

		results := decodeResults(t, stdout.Bytes())
		assert.Equal(t, map[string]any{"price": []any{"3.50"}}, results[0]["values"])
	})

	t.Run("uses one inducer per page", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var pages []string
		for i := range 8 {
			pages = append(pages, writeFile(t, dir, fmt.Sprintf("%d.html", i), "<p>x</p>"))
		}
		sets := &mock.WrapperSetService{
			FindWrapperSetFn: func(context.Context, string) (*swi.WrapperSet, error) {
				return &swi.WrapperSet{Wrappers: priceTable}, nil
			},
		}

		var created atomic.Int64
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Sets:   sets,
			NewInducer: func(table swi.WrapperTable) swi.Inducer {
				created.Add(1)
				assert.Equal(t, priceTable, table)
				return &mock.Inducer{
					PredictFn: func(string) (*swi.Prediction, error) {
						return &swi.Prediction{Values: map[string][]string{}}, nil
					},
				}
			},
		}

		cmd := &main.PredictCmd{Pages: pages, Set: "shop", Concurrency: 3}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, int64(len(pages)), created.Load())
	})

	t.Run("requires exactly one wrapper source", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			cmd  main.PredictCmd
		}{
			{"neither", main.PredictCmd{Pages: []string{"a.html"}}},
			{"both", main.PredictCmd{Pages: []string{"a.html"}, Set: "shop", Wrappers: "shop.json"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				stderr := &bytes.Buffer{}
				deps := &main.Dependencies{
					Ctx:    context.Background(),
					Stdout: &bytes.Buffer{},
					Stderr: stderr,
				}

				err := tt.cmd.Run(deps)

				assert.Equal(t, swi.EINVALID, swi.ErrorCode(err))
				assert.Contains(t, stderr.String(), "error:")
			})
		}
	})

	t.Run("returns unknown set errors", func(t *testing.T) {
		t.Parallel()

		sets := &mock.WrapperSetService{
			FindWrapperSetFn: func(_ context.Context, name string) (*swi.WrapperSet, error) {
				return nil, swi.Errorf(swi.ENOTFOUND, "wrapper set %q not found", name)
			},
		}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
			Sets:   sets,
		}

		cmd := &main.PredictCmd{Pages: []string{"a.html"}, Set: "missing"}
		err := cmd.Run(deps)

		assert.Equal(t, swi.ENOTFOUND, swi.ErrorCode(err))
	})

	t.Run("fails on an empty page", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		page := writeFile(t, dir, "empty.html", "")
		sets := &mock.WrapperSetService{
			FindWrapperSetFn: func(context.Context, string) (*swi.WrapperSet, error) {
				return &swi.WrapperSet{Wrappers: priceTable}, nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Sets:       sets,
			NewInducer: newInducer(),
		}

		cmd := &main.PredictCmd{Pages: []string{page}, Set: "shop"}
		err := cmd.Run(deps)

		assert.Equal(t, swi.EINVALID, swi.ErrorCode(err))
		assert.Contains(t, stderr.String(), page)
	})
}
