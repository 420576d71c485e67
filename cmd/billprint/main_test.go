package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/billprint/billprint/internal/pagination"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func workdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

const bill = `patient:
  name: Asha Kulkarni
  ward: General B
items:
  - kind: hospital
    description: Bed charges
    quantity: 3
    unit_price: 1500
payments:
  - type: advance
    amount: 2000
`

func TestPlan_Dimensions(t *testing.T) {
	workdir(t)

	out, err := run(t, "plan", "--width", "1785", "--height", "12000")
	require.NoError(t, err)

	var view planView
	require.NoError(t, yaml.Unmarshal([]byte(out), &view))
	assert.Equal(t, 2063, view.WindowHeight)
	require.Len(t, view.Pages, 6)
	assert.Equal(t, 1, view.Pages[0].Page)
	assert.Equal(t, 12000-5*2063, view.Pages[5].SourceHeight)
	assert.InDelta(t, 120, view.Pages[0].Y, 1e-9)
}

func TestPlan_JSONFromSource(t *testing.T) {
	dir := workdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bill.yaml"), []byte(bill), 0o644))

	out, err := run(t, "plan", "bill.yaml", "--format", "json", "--scale", "1")
	require.NoError(t, err)
	assert.Contains(t, out, `"width": 595`)
	assert.Contains(t, out, `"pages": [`)
}

func TestPlan_Errors(t *testing.T) {
	workdir(t)

	_, err := run(t, "plan")
	assert.ErrorContains(t, err, "required")

	_, err = run(t, "plan", "--width", "100", "--height", "0")
	assert.ErrorIs(t, err, pagination.ErrEmptySource)

	_, err = run(t, "plan", "--width", "100", "--height", "100", "--margin-top", "900")
	assert.ErrorIs(t, err, pagination.ErrInvalidGeometry)

	_, err = run(t, "plan", "--width", "100", "--height", "100", "--margin-top", "NaN")
	assert.ErrorIs(t, err, pagination.ErrInvalidGeometry)

	_, err = run(t, "plan", "--width", "100", "--height", "100", "--margin-side=-50")
	assert.ErrorIs(t, err, pagination.ErrInvalidGeometry)

	_, err = run(t, "plan", "--width", "100", "--height", "100", "--page-size", "B5")
	assert.ErrorContains(t, err, "unknown page size")
}

func TestStatementAndInspect(t *testing.T) {
	dir := workdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bill.yaml"), []byte(bill), 0o644))

	out, err := run(t, "statement", "bill.yaml", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote bill.pdf (1 pages)")
	assert.FileExists(t, filepath.Join(dir, "bill.pdf"))

	out, err = run(t, "inspect", "bill.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Pages: 1")
	assert.Contains(t, out, "595.28 x 841.89 pt")
}

func TestImage_WithLetterheadFromConfig(t *testing.T) {
	dir := workdir(t)

	writePNG := func(name string, w, h int) {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		defer f.Close()
		require.NoError(t, png.Encode(f, image.NewGray(image.Rect(0, 0, w, h))))
	}
	writePNG("scan.png", 600, 2500)
	writePNG("head.png", 60, 84)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "billprint.yaml"), []byte("letterhead: head.png\n"), 0o644))

	out, err := run(t, "image", "scan.png", "-o", "out/scan.pdf")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote out/scan.pdf")

	out, err = run(t, "inspect", filepath.Join("out", "scan.pdf"))
	require.NoError(t, err)
	assert.Contains(t, out, "Pages: 4")
}

func TestStatement_MissingInput(t *testing.T) {
	workdir(t)
	_, err := run(t, "statement", "nope.yaml")
	assert.ErrorContains(t, err, "failed to load statement")
}

func TestVersionAndInitConfig(t *testing.T) {
	dir := workdir(t)

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "billprint dev")

	out, err = run(t, "init-config")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote billprint.yaml")
	assert.FileExists(t, filepath.Join(dir, "billprint.yaml"))
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, "bill.pdf", defaultOutput("bill.yaml"))
	assert.Equal(t, filepath.Join("a", "b.pdf"), defaultOutput(filepath.Join("a", "b.png")))
	assert.Equal(t, "chart.pdf", defaultOutput("https://example.com/x/chart.svg"))
}
