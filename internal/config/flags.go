package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Only flags the user actually set are
// applied on top of the file configuration.
type Flags struct {
	ConfigPath  string
	Debug       bool
	FPS         int
	NoAntialias bool
	Exposure    float64
	ModelsDir   string
	Environment string
	Catalog     string
	LogFile     string
	Watch       bool

	fs *pflag.FlagSet
}

// Register binds the flags to fs.
func (f *Flags) Register(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "path to config file (yaml or toml)")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging")
	fs.IntVar(&f.FPS, "fps", 0, "target frames per second")
	fs.BoolVar(&f.NoAntialias, "no-antialias", false, "disable supersampling")
	fs.Float64Var(&f.Exposure, "exposure", 0, "tone mapping exposure")
	fs.StringVar(&f.ModelsDir, "models", "", "directory holding model files")
	fs.StringVar(&f.Environment, "env", "", "radiance .hdr environment map")
	fs.StringVar(&f.Catalog, "catalog", "", "catalog file (yaml or toml)")
	fs.StringVar(&f.LogFile, "log-file", "", "log file path")
	fs.BoolVarP(&f.Watch, "watch", "w", false, "reload the story when it changes on disk")
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.changed("fps") {
		cfg.Viewer.FPS = f.FPS
	}
	if f.NoAntialias {
		cfg.Viewer.Antialias = false
	}
	if f.changed("exposure") {
		cfg.Viewer.Exposure = f.Exposure
	}
	if f.ModelsDir != "" {
		cfg.Assets.ModelsDir = f.ModelsDir
	}
	if f.Environment != "" {
		cfg.Assets.Environment = f.Environment
	}
	if f.Catalog != "" {
		cfg.Assets.Catalog = f.Catalog
	}
	if f.LogFile != "" {
		cfg.Logging.LogFile = f.LogFile
	}
	if f.Watch {
		cfg.Sections.Watch = true
	}
}
