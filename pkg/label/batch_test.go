package label

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"reflect"
	"sort"
	"testing"

	"github.com/labelmint/labelmint/pkg/table"
)

// flakyRenderer fails on the given 1-based call numbers and returns a tiny
// blank image otherwise.
type flakyRenderer struct {
	calls  int
	failOn map[int]bool
}

func (f *flakyRenderer) Render(_ table.Row, _ Config) (image.Image, error) {
	f.calls++
	if f.failOn[f.calls] {
		return nil, fmt.Errorf("induced failure on row %d", f.calls)
	}
	return image.NewNRGBA(image.Rect(0, 0, 4, 4)), nil
}

func makeRows(n int) []table.Row {
	rows := make([]table.Row, n)
	for i := range rows {
		rows[i] = table.Row{"Name": fmt.Sprintf("item %d", i+1)}
	}
	return rows
}

// archiveEntries lists the entry names in a zip archive, sorted.
func archiveEntries(t *testing.T, archive []byte) []string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// readManifest extracts and decodes manifest.json from an archive.
func readManifest(t *testing.T, archive []byte) manifest {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	f, err := zr.Open("manifest.json")
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode manifest: %v", err)
	}
	return m
}

func TestRenderBatch(t *testing.T) {
	r := &flakyRenderer{failOn: map[int]bool{}}
	result, err := RenderBatch(r, makeRows(3), testConfig())
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if result.Rendered != 3 {
		t.Errorf("Rendered = %d, want 3", result.Rendered)
	}
	if len(result.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", result.Skipped)
	}

	want := []string{"label_0001.png", "label_0002.png", "label_0003.png", "manifest.json"}
	if got := archiveEntries(t, result.Archive); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}
}

func TestRenderBatchSkipsFailedRows(t *testing.T) {
	r := &flakyRenderer{failOn: map[int]bool{3: true}}
	result, err := RenderBatch(r, makeRows(5), testConfig())
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if result.Rendered != 4 {
		t.Errorf("Rendered = %d, want 4", result.Rendered)
	}
	if !reflect.DeepEqual(result.Skipped, []int{3}) {
		t.Errorf("Skipped = %v, want [3]", result.Skipped)
	}

	// The failed row's entry is absent; the survivors keep their original
	// input position in the numbering.
	want := []string{"label_0001.png", "label_0002.png", "label_0004.png", "label_0005.png", "manifest.json"}
	if got := archiveEntries(t, result.Archive); !reflect.DeepEqual(got, want) {
		t.Errorf("entries = %v, want %v", got, want)
	}

	m := readManifest(t, result.Archive)
	if m.Rows != 5 || m.Rendered != 4 || !reflect.DeepEqual(m.Skipped, []int{3}) {
		t.Errorf("manifest = %+v, want rows 5, rendered 4, skipped [3]", m)
	}
	if m.ID == "" || m.CreatedAt == "" {
		t.Error("manifest missing id or timestamp")
	}
}

func TestRenderBatchAllRowsFail(t *testing.T) {
	r := &flakyRenderer{failOn: map[int]bool{1: true, 2: true}}
	result, err := RenderBatch(r, makeRows(2), testConfig())
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if result.Rendered != 0 {
		t.Errorf("Rendered = %d, want 0", result.Rendered)
	}
	if !reflect.DeepEqual(result.Skipped, []int{1, 2}) {
		t.Errorf("Skipped = %v, want [1 2]", result.Skipped)
	}
	if got := archiveEntries(t, result.Archive); !reflect.DeepEqual(got, []string{"manifest.json"}) {
		t.Errorf("entries = %v, want only the manifest", got)
	}
}

func TestRenderBatchEmpty(t *testing.T) {
	result, err := RenderBatch(NewRenderer(), nil, testConfig())
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if result.Rendered != 0 || len(result.Skipped) != 0 {
		t.Errorf("got rendered %d skipped %v for empty input", result.Rendered, result.Skipped)
	}
	if got := archiveEntries(t, result.Archive); !reflect.DeepEqual(got, []string{"manifest.json"}) {
		t.Errorf("entries = %v, want only the manifest", got)
	}
}

func TestRenderBatchEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.BarcodeField = "SKU"

	rows := []table.Row{
		{"Name": "Steel Widget", "SKU": "SKU-001"},
		{"Name": "Brass Widget", "SKU": "SKU-002"},
	}
	result, err := RenderBatch(NewRenderer(), rows, cfg)
	if err != nil {
		t.Fatalf("RenderBatch: %v", err)
	}
	if result.Rendered != 2 {
		t.Fatalf("Rendered = %d, want 2", result.Rendered)
	}

	// Every archived PNG decodes to the configured output size.
	zr, err := zip.NewReader(bytes.NewReader(result.Archive), int64(len(result.Archive)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == "manifest.json" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		img, _, err := image.Decode(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("decode %s: %v", f.Name, err)
		}
		if b := img.Bounds(); b.Dx() != cfg.Width || b.Dy() != cfg.Height {
			t.Errorf("%s is %dx%d, want %dx%d", f.Name, b.Dx(), b.Dy(), cfg.Width, cfg.Height)
		}
	}
}
