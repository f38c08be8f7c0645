package script

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
)

type frame struct {
	name  string
	lines []string
	next  int
}

// FileSource feeds lexed lines to the interpreter. Included files are pushed
// on a stack and popped when exhausted; Jump repositions the current file.
type FileSource struct {
	stack []*frame
}

func OpenFile(path string) (*FileSource, error) {
	f, err := readFrame(path)
	if err != nil {
		return nil, err
	}
	return &FileSource{stack: []*frame{f}}, nil
}

func NewStringSource(name, text string) *FileSource {
	return &FileSource{stack: []*frame{{name: name, lines: splitLines(text)}}}
}

func readFrame(path string) (*frame, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "expand %s", path)
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return nil, errors.Wrapf(err, "read script %s", expanded)
	}
	return &frame{name: expanded, lines: splitLines(string(data))}, nil
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// Name is the file currently being read.
func (s *FileSource) Name() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1].name
}

// Next returns the next line with at least one token, or io.EOF.
func (s *FileSource) Next() (*Line, error) {
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		if top.next >= len(top.lines) {
			s.stack = s.stack[:len(s.stack)-1]
			continue
		}
		number := top.next + 1
		text := top.lines[top.next]
		top.next++
		line, err := Lex(text, top.name, number)
		if err != nil {
			return nil, err
		}
		if len(line.Nodes) == 0 {
			continue
		}
		return line, nil
	}
	return nil, io.EOF
}

// Jump resumes reading the current file right after the given line number.
func (s *FileSource) Jump(line int) error {
	if len(s.stack) == 0 {
		return errors.New("jump with no open script")
	}
	top := s.stack[len(s.stack)-1]
	if line < 0 || line > len(top.lines) {
		return errors.Errorf("jump target line %d outside %s", line, top.name)
	}
	top.next = line
	return nil
}

// Include pushes another script; relative paths resolve against the
// directory of the file being read.
func (s *FileSource) Include(path string) error {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return errors.Wrapf(err, "expand %s", path)
	}
	if !filepath.IsAbs(expanded) && len(s.stack) > 0 {
		if dir := filepath.Dir(s.Name()); dir != "" {
			if _, statErr := os.Stat(filepath.Join(dir, expanded)); statErr == nil {
				expanded = filepath.Join(dir, expanded)
			}
		}
	}
	f, err := readFrame(expanded)
	if err != nil {
		return err
	}
	s.stack = append(s.stack, f)
	return nil
}
