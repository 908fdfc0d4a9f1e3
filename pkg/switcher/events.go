package switcher

import (
	"github.com/taigrr/vitrine/pkg/catalog"
	"github.com/taigrr/vitrine/pkg/models"
	"github.com/taigrr/vitrine/pkg/render"
)

// Event is a loader result tagged with the generation of the Switch call
// that produced it.
type Event interface {
	Generation() uint64
}

// Progress reports bytes read from the model file.
type Progress struct {
	Gen    uint64
	Model  catalog.Descriptor
	Loaded int64
	Total  int64
}

// EnvironmentLoaded carries the lighting decoded for a switch. It always
// precedes the matching ModelLoaded.
type EnvironmentLoaded struct {
	Gen         uint64
	Model       catalog.Descriptor
	Environment *render.Environment
}

// ModelLoaded carries the decoded model. It is the last event of a
// successful switch.
type ModelLoaded struct {
	Gen   uint64
	Model catalog.Descriptor
	Asset *models.Model
}

// Failed ends a switch that could not complete.
type Failed struct {
	Gen   uint64
	Model catalog.Descriptor
	Stage Stage
	Err   error
}

// Stage names the step a switch failed in.
type Stage string

const (
	StageEnvironment Stage = "environment"
	StageModel       Stage = "model"
)

func (e Progress) Generation() uint64          { return e.Gen }
func (e EnvironmentLoaded) Generation() uint64 { return e.Gen }
func (e ModelLoaded) Generation() uint64       { return e.Gen }
func (e Failed) Generation() uint64            { return e.Gen }

// Text returns the loader label for this progress report.
func (e Progress) Text() string {
	return FormatProgress(e.Loaded, e.Total)
}
