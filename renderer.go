package easysynth

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"

	intbuf "github.com/cbegin/easysynth-go/internal/buffer"
	intenc "github.com/cbegin/easysynth-go/internal/encode"
	intinterp "github.com/cbegin/easysynth-go/internal/interp"
	"github.com/cbegin/easysynth-go/internal/logging"
	intscript "github.com/cbegin/easysynth-go/internal/script"
)

type Option func(*renderConfig)

type renderConfig struct {
	sampleRate int
	seed       int64
	encoder    *intenc.Encoder
	outputDir  string
	output     string
}

func defaultRenderConfig() renderConfig {
	return renderConfig{sampleRate: 44100}
}

func WithSampleRate(sr int) Option {
	return func(cfg *renderConfig) {
		cfg.sampleRate = sr
	}
}

// WithSeed fixes the random stream used by randseq and noise. Zero picks a
// time based seed on every render.
func WithSeed(seed int64) Option {
	return func(cfg *renderConfig) {
		cfg.seed = seed
	}
}

// WithEncoder runs cmd after the WAV is written. The command line uses
// {in} and {out} placeholders; ext names the encoded file's extension.
func WithEncoder(cmd, ext string) Option {
	return func(cfg *renderConfig) {
		cfg.encoder = &intenc.Encoder{Command: cmd, Ext: ext}
	}
}

// WithOutputDir places output names derived from the script path in dir.
func WithOutputDir(dir string) Option {
	return func(cfg *renderConfig) {
		cfg.outputDir = dir
	}
}

// WithOutput overrides any output file named by the script.
func WithOutput(path string) Option {
	return func(cfg *renderConfig) {
		cfg.output = path
	}
}

// Result describes a finished render.
type Result struct {
	WAVPath     string
	EncodedPath string
	Frames      int
	// Exited is set when the script stopped early with exit.
	Exited bool
}

type Renderer struct {
	cfg renderConfig
}

func New(opts ...Option) (*Renderer, error) {
	cfg := defaultRenderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}
	return &Renderer{cfg: cfg}, nil
}

func (r *Renderer) seed() int64 {
	if r.cfg.seed != 0 {
		return r.cfg.seed
	}
	return time.Now().UnixNano()
}

func (r *Renderer) run(src intinterp.Source) (*intinterp.Engine, bool, error) {
	eng := intinterp.New(intinterp.Config{SampleRate: r.cfg.sampleRate, Seed: r.seed()}, src)
	err := eng.Run()
	if errors.Is(err, intinterp.ErrExit) {
		return eng, true, nil
	}
	return eng, false, err
}

// RenderFile runs the script at path, writes the WAV file and, when an
// encoder is configured, the encoded copy. Nothing is written if the
// script fails.
func (r *Renderer) RenderFile(ctx context.Context, path string) (*Result, error) {
	src, err := intscript.OpenFile(path)
	if err != nil {
		return nil, err
	}
	eng, exited, err := r.run(src)
	if err != nil {
		return nil, err
	}

	out, err := r.outputPath(path, eng.Finish())
	if err != nil {
		return nil, err
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", out)
	}
	if err := eng.Buffer().WriteWAV(f); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrapf(err, "close %s", out)
	}
	res := &Result{WAVPath: out, Frames: eng.Buffer().Len(), Exited: exited}
	logging.Infof("wrote %s: %d frames at %d Hz", out, res.Frames, r.cfg.sampleRate)

	if r.cfg.encoder != nil {
		if res.EncodedPath, err = r.cfg.encoder.Run(ctx, out); err != nil {
			return nil, err
		}
		logging.Infof("encoded %s", res.EncodedPath)
	}
	return res, nil
}

// outputPath resolves where the WAV goes: the explicit option, then the
// script's output command, then the script name with a .wav extension.
func (r *Renderer) outputPath(scriptPath, requested string) (string, error) {
	out := r.cfg.output
	if out == "" {
		out = requested
	}
	if out == "" {
		out = strings.TrimSuffix(scriptPath, ".e2") + ".wav"
		if r.cfg.outputDir != "" {
			out = filepath.Join(r.cfg.outputDir, filepath.Base(out))
		}
	}
	expanded, err := homedir.Expand(out)
	if err != nil {
		return "", errors.Wrapf(err, "expand %s", out)
	}
	return expanded, nil
}

// RenderString runs script text held in memory and returns the rendered
// buffer. name is used in error messages and to resolve includes.
func (r *Renderer) RenderString(name, src string) (*intbuf.Buffer, error) {
	eng, _, err := r.run(intscript.NewStringSource(name, src))
	if err != nil {
		return nil, err
	}
	return eng.Buffer(), nil
}
