package main_test

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/fwojciec/swi"
	main "github.com/fwojciec/swi/cmd/swi"
	"github.com/fwojciec/swi/fs"
	"github.com/fwojciec/swi/goquery"
	"github.com/fwojciec/swi/induct"
	"github.com/fwojciec/swi/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newInducer returns an inducer factory backed by the real engine.
func newInducer() func(swi.WrapperTable) swi.Inducer {
	return func(table swi.WrapperTable) swi.Inducer {
		e := induct.NewEngine(goquery.NewParser(), goquery.NewMetadataExtractor())
		if table != nil {
			e.SetWrappers(table)
		}
		return e
	}
}

// trainingDir writes two product pages and a manifest labeling them.
func trainingDir(t *testing.T) (dir, manifest string) {
	t.Helper()
	dir = t.TempDir()
	writeFile(t, dir, "pages/p1.html", `<h1 class="title">Kettle</h1><span class="price">$12.99</span>`)
	writeFile(t, dir, "pages/p2.html", `<h1 class="title">Toaster</h1><span class="price">$8.00</span>`)
	manifest = writeFile(t, dir, "manifest.yaml", `
examples:
  - page: pages/p1.html
    labels: {title: Kettle, price: "12.99"}
  - page: pages/p2.html
    labels: {title: Toaster, price: "8.00"}
`)
	return dir, manifest
}

func TestTrainCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("trains and saves a wrapper set", func(t *testing.T) {
		t.Parallel()

		_, manifest := trainingDir(t)
		var saved *swi.WrapperSet
		sets := &mock.WrapperSetService{
			SaveWrapperSetFn: func(_ context.Context, set *swi.WrapperSet) error {
				saved = set
				return nil
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

		cmd := &main.TrainCmd{Name: "shop", Manifest: manifest}
		err := cmd.Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "shop", saved.Name)
		assert.Equal(t, 2, saved.Examples)
		assert.Equal(t, []string{"price", "title"}, saved.Wrappers.Labels())
		assert.Contains(t, stdout.String(), `Trained "shop" on 2 of 2 pages`)
		assert.Contains(t, stdout.String(), ".price")
		assert.Empty(t, stderr.String())
	})

	t.Run("writes wrappers to a file", func(t *testing.T) {
		t.Parallel()

		dir, manifest := trainingDir(t)
		out := filepath.Join(dir, "out", "shop.xml")
		sets := &mock.WrapperSetService{
			SaveWrapperSetFn: func(context.Context, *swi.WrapperSet) error { return nil },
		}

		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
			Sets:       sets,
			NewInducer: newInducer(),
		}

		cmd := &main.TrainCmd{Name: "shop", Manifest: manifest, Out: out}
		require.NoError(t, cmd.Run(deps))

		table, err := fs.ReadWrappers(out)
		require.NoError(t, err)
		assert.Equal(t, []string{"price", "title"}, table.Labels())
	})

	t.Run("skips pages that fail to train", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "p1.html", `<h1>Kettle</h1>`)
		manifest := writeFile(t, dir, "manifest.yaml", `
examples:
  - page: p1.html
    labels: {title: Kettle}
  - page: p2.html
    labels: {title: Toaster}
  - page: p1.html
    labels: {title: ""}
`)
		var saved *swi.WrapperSet
		sets := &mock.WrapperSetService{
			SaveWrapperSetFn: func(_ context.Context, set *swi.WrapperSet) error {
				saved = set
				return nil
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

		cmd := &main.TrainCmd{Name: "shop", Manifest: manifest}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, 1, saved.Examples)
		assert.Contains(t, stderr.String(), "skipped "+filepath.Join(dir, "p2.html"))
		assert.Contains(t, stderr.String(), "empty expected value")
		assert.Contains(t, stdout.String(), "on 1 of 3 pages")
	})

	t.Run("warns about duplicate pages", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, dir, "p1.html", `<h1>Kettle</h1>`)
		manifest := writeFile(t, dir, "manifest.yaml", `
examples:
  - page: p1.html
    labels: {title: Kettle}
  - page: p1.html
    labels: {title: Kettle}
`)
		sets := &mock.WrapperSetService{
			SaveWrapperSetFn: func(context.Context, *swi.WrapperSet) error { return nil },
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Sets:       sets,
			NewInducer: newInducer(),
		}

		cmd := &main.TrainCmd{Name: "shop", Manifest: manifest}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stderr.String(), "looks like a page trained before")
	})

	t.Run("fails when no page trains", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		manifest := writeFile(t, dir, "manifest.yaml", "examples:\n  - page: missing.html\n    labels: {title: Kettle}\n")

		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     &bytes.Buffer{},
			Sets:       &mock.WrapperSetService{},
			NewInducer: newInducer(),
		}

		cmd := &main.TrainCmd{Name: "shop", Manifest: manifest}
		err := cmd.Run(deps)

		assert.Equal(t, swi.ETRAINING, swi.ErrorCode(err))
	})

	t.Run("returns save errors", func(t *testing.T) {
		t.Parallel()

		_, manifest := trainingDir(t)
		sets := &mock.WrapperSetService{
			SaveWrapperSetFn: func(context.Context, *swi.WrapperSet) error {
				return errors.New("disk full")
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

		cmd := &main.TrainCmd{Name: "shop", Manifest: manifest}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}
