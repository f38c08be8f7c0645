// Package logging is a small leveled logger over the standard log package.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

type Level int

const (
	LvlError Level = iota
	LvlWarn
	LvlInfo
	LvlDebug
	LvlTrace
)

var levelNames = []string{"error", "warn", "info", "debug", "trace"}

func (l Level) String() string {
	if l < LvlError || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseLevel accepts a level name or its number.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range levelNames {
		if s == name || s == fmt.Sprint(i) {
			return Level(i), nil
		}
	}
	if s == "warning" {
		return LvlWarn, nil
	}
	return LvlWarn, fmt.Errorf("unknown log level %q", s)
}

var (
	current atomic.Int32
	prefix  string
)

func init() {
	current.Store(int32(LvlWarn))
}

// Init points the standard logger at stderr and tags lines with appName.
func Init(appName string) {
	log.SetOutput(os.Stderr)
	prefix = appName + ": "
	log.SetFlags(log.Ltime | log.Lmicroseconds)
}

// SetOutput redirects log lines, mostly for tests.
func SetOutput(w io.Writer) { log.SetOutput(w) }

func SetLevel(l Level) {
	if l < LvlError {
		l = LvlError
	}
	if l > LvlTrace {
		l = LvlTrace
	}
	current.Store(int32(l))
}

func GetLevel() Level { return Level(current.Load()) }

// Debugf logs when the configured level is at least lvl. Errors and
// warnings are always written.
func Debugf(lvl Level, format string, args ...any) {
	if lvl > LvlWarn && GetLevel() < lvl {
		return
	}
	log.Printf(prefix+"["+lvl.String()+"] "+format, args...)
}

func Infof(format string, args ...any)  { Debugf(LvlInfo, format, args...) }
func Warnf(format string, args ...any)  { Debugf(LvlWarn, format, args...) }
func Errorf(format string, args ...any) { Debugf(LvlError, format, args...) }
