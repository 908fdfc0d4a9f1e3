package switcher

import (
	"context"
	"io"
	"io/fs"
	"math"
	"strconv"
)

// ProgressPrefix labels the loading indicator.
const ProgressPrefix = "Chargement: "

// Percent returns loaded/total as a percentage truncated (not rounded) to
// two decimals. An unknown or zero total reports 0.
func Percent(loaded, total int64) float64 {
	if total <= 0 || loaded <= 0 {
		return 0
	}
	current := float64(loaded) / float64(total) * 100
	return math.Trunc(current*100) / 100
}

// FormatProgress renders the indicator text, e.g. "Chargement: 52.3%".
func FormatProgress(loaded, total int64) string {
	return ProgressPrefix + strconv.FormatFloat(Percent(loaded, total), 'f', -1, 64) + "%"
}

// progress accumulates bytes read across every file of one load.
type progress struct {
	loaded int64
	total  int64
	report func(loaded, total int64)
}

func (p *progress) add(n int) {
	p.loaded += int64(n)
	if p.report != nil {
		p.report(p.loaded, p.total)
	}
}

// progressReader counts bytes read and fails once ctx is done, so a
// superseded decode stops at its next read.
type progressReader struct {
	ctx context.Context
	r   io.Reader
	p   *progress
}

func (r *progressReader) Read(b []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := r.r.Read(b)
	if n > 0 {
		r.p.add(n)
	}
	return n, err
}

// progressFS counts reads of the external files a document pulls in.
type progressFS struct {
	fs.FS
	ctx context.Context
	p   *progress
}

func (f progressFS) Open(name string) (fs.File, error) {
	file, err := f.FS.Open(name)
	if err != nil {
		return nil, err
	}
	return &progressFile{File: file, r: progressReader{ctx: f.ctx, r: file, p: f.p}}, nil
}

type progressFile struct {
	fs.File
	r progressReader
}

func (f *progressFile) Read(b []byte) (int, error) { return f.r.Read(b) }
