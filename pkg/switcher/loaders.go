package switcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/render"
)

// EnvironmentLoader decodes the lighting for a switch.
type EnvironmentLoader func(ctx context.Context, path string) (*render.Environment, error)

// ModelLoader decodes a model file, calling progress as bytes are read.
type ModelLoader func(ctx context.Context, path string, progress func(loaded, total int64)) (*models.Model, error)

// LoadEnvironmentFile decodes a Radiance .hdr file and projects it to
// spherical harmonics.
func LoadEnvironmentFile(ctx context.Context, path string) (*render.Environment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open environment: %w", err)
	}
	defer f.Close()

	img, err := render.DecodeRadiance(&progressReader{ctx: ctx, r: f, p: &progress{}})
	if err != nil {
		return nil, fmt.Errorf("decode environment %s: %w", filepath.Base(path), err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return render.NewEnvironment(img), nil
}

// GLTFModelLoader returns a ModelLoader backed by loader. Progress covers
// the main file plus, for .gltf documents, the external buffers and images
// it references.
func GLTFModelLoader(loader *models.GLTFLoader) ModelLoader {
	return func(ctx context.Context, path string, report func(loaded, total int64)) (*models.Model, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open model: %w", err)
		}
		defer f.Close()

		p := &progress{report: report}
		if st, err := f.Stat(); err == nil {
			p.total = st.Size()
		}
		dir := filepath.Dir(path)
		if strings.EqualFold(filepath.Ext(path), ".gltf") {
			p.total += externalSize(path, dir)
		}

		pr := &progressReader{ctx: ctx, r: f, p: p}
		fsys := progressFS{FS: os.DirFS(dir), ctx: ctx, p: p}
		return loader.Decode(ctx, pr, fsys, filepath.Base(path))
	}
}

// externalSize sums the on-disk size of the files a .gltf document
// references by relative URI. Unreadable documents count as zero; the
// decoder reports the real error.
func externalSize(path, dir string) int64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var doc struct {
		Buffers []struct {
			URI string `json:"uri"`
		} `json:"buffers"`
		Images []struct {
			URI string `json:"uri"`
		} `json:"images"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return 0
	}

	uris := make([]string, 0, len(doc.Buffers)+len(doc.Images))
	for _, b := range doc.Buffers {
		uris = append(uris, b.URI)
	}
	for _, im := range doc.Images {
		uris = append(uris, im.URI)
	}

	var total int64
	for _, uri := range uris {
		if uri == "" || strings.HasPrefix(uri, "data:") {
			continue
		}
		if u, err := url.PathUnescape(uri); err == nil {
			uri = u
		}
		if st, err := os.Stat(filepath.Join(dir, filepath.FromSlash(uri))); err == nil {
			total += st.Size()
		}
	}
	return total
}
