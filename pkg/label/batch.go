package label

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"time"

	"github.com/google/uuid"

	"github.com/labelmint/labelmint/pkg/errors"
	"github.com/labelmint/labelmint/pkg/table"
)

// RowRenderer renders one row into a label image. *Renderer satisfies it;
// tests substitute failing implementations to exercise skip handling.
type RowRenderer interface {
	Render(row table.Row, cfg Config) (image.Image, error)
}

// BatchResult is the outcome of a batch render: the completed zip archive,
// the number of rows actually rendered, and the 1-based indices of rows
// that were skipped. Skipped indices match the label_%04d entry numbering,
// so a skipped index names exactly the archive entry that is missing.
type BatchResult struct {
	Archive  []byte
	Rendered int
	Skipped  []int
}

// manifest records what a batch produced. It travels inside the archive as
// manifest.json so the record stays with the labels it describes.
type manifest struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Rows      int    `json:"rows"`
	Rendered  int    `json:"rendered"`
	Skipped   []int  `json:"skipped,omitempty"`
}

// RenderBatch applies r to every row in input order, collecting successful
// renders into a zip archive as label_0001.png, label_0002.png, and so on
// (1-based, numbered by input position). A row that fails to render is
// recorded in Skipped and the batch continues; the batch itself only fails
// on archive-level errors.
func RenderBatch(r RowRenderer, rows []table.Row, cfg Config) (BatchResult, error) {
	var (
		buf    bytes.Buffer
		result BatchResult
	)
	zw := zip.NewWriter(&buf)

	for i, row := range rows {
		img, err := r.Render(row, cfg)
		if err != nil {
			result.Skipped = append(result.Skipped, i+1)
			continue
		}

		name := fmt.Sprintf("label_%04d.png", i+1)
		w, err := zw.Create(name)
		if err != nil {
			return BatchResult{}, errors.Wrap(errors.ErrCodeInternal, err, "create archive entry %s", name)
		}
		if err := png.Encode(w, img); err != nil {
			return BatchResult{}, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", name)
		}
		result.Rendered++
	}

	if err := writeManifest(zw, len(rows), result); err != nil {
		return BatchResult{}, err
	}
	if err := zw.Close(); err != nil {
		return BatchResult{}, errors.Wrap(errors.ErrCodeInternal, err, "finalize archive")
	}

	result.Archive = buf.Bytes()
	return result, nil
}

func writeManifest(zw *zip.Writer, rows int, result BatchResult) error {
	w, err := zw.Create("manifest.json")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create manifest entry")
	}
	m := manifest{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Rows:      rows,
		Rendered:  result.Rendered,
		Skipped:   result.Skipped,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode manifest")
	}
	return nil
}
