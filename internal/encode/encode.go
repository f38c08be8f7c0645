// Package encode runs an external lossy encoder over a rendered WAV file.
package encode

import (
	"context"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"github.com/pkg/errors"
)

// Encoder describes a command line with {in} and {out} placeholders.
type Encoder struct {
	Command string
	Ext     string
}

// OutputPath swaps the extension of the wav path for the encoder's.
func (e Encoder) OutputPath(wavPath string) string {
	ext := strings.TrimPrefix(e.Ext, ".")
	if i := strings.LastIndexByte(wavPath, '.'); i > strings.LastIndexByte(wavPath, '/') {
		wavPath = wavPath[:i]
	}
	return wavPath + "." + ext
}

// Args splits the command and fills in the placeholders. Paths are
// substituted after splitting so spaces in them survive.
func (e Encoder) Args(in, out string) ([]string, error) {
	args, err := shlex.Split(e.Command)
	if err != nil {
		return nil, errors.Wrapf(err, "parse encoder command %q", e.Command)
	}
	if len(args) == 0 {
		return nil, errors.New("encoder command is empty")
	}
	r := strings.NewReplacer("{in}", in, "{out}", out)
	for i, a := range args {
		args[i] = r.Replace(a)
	}
	return args, nil
}

// Run encodes in and returns the path it wrote.
func (e Encoder) Run(ctx context.Context, in string) (string, error) {
	out := e.OutputPath(in)
	args, err := e.Args(in, out)
	if err != nil {
		return "", err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if msg, err := cmd.CombinedOutput(); err != nil {
		return "", errors.Wrapf(err, "encoder %s: %s", args[0], strings.TrimSpace(string(msg)))
	}
	return out, nil
}
