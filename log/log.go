package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	diagFileName     = "diagnostics_log.txt"
	activityFileName = "activity_log.txt"
)

var (
	diagLog      zerolog.Logger
	diagFile     *os.File
	activityFile *os.File
	logMu        sync.Mutex
	logReady     bool
	debug        bool
	pid          int
	dir          string
)

// ResolveDir picks the log directory: flag value, then MNEMO_LOG_PATH, then
// the OS default. Relative paths are resolved against the working directory.
func ResolveDir(flagPath string) (string, error) {
	if flagPath != "" {
		return absPath(flagPath)
	}
	if envPath := os.Getenv("MNEMO_LOG_PATH"); envPath != "" {
		return absPath(envPath)
	}
	return getDefaultDir()
}

func absPath(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

// SetDebug enables debug-level diagnostics (overwrites, unmatched keys).
func SetDebug(on bool) {
	logMu.Lock()
	defer logMu.Unlock()
	debug = on
	if logReady {
		diagLog = diagLog.Level(level())
	}
}

func level() zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	return zerolog.InfoLevel
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()

	var err error

	diagFile, err = os.OpenFile(filepath.Join(dir, diagFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	activityFile, err = os.OpenFile(filepath.Join(dir, activityFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		diagFile.Close()
		return err
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagFile,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).Level(level()).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagFile != nil {
		diagFile.Close()
		diagFile = nil
	}
	if activityFile != nil {
		activityFile.Close()
		activityFile = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Debugf(format string, args ...any) {
	if logReady {
		diagLog.Debug().Msg(fmt.Sprintf(format, args...))
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func SessionStart(policy, activator string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("policy", policy).
		Str("activator", activator).
		Msg("session_start")
}

func SessionEnd(count int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("dispatched", count).
		Msg("session_end")
}

func Visibility(visible bool) {
	if !logReady {
		return
	}
	diagLog.Debug().Bool("visible", visible).Msg("hints")
}

// Dispatch records a fired shortcut in the diagnostics log and appends it to
// the activity log.
func Dispatch(id string, submitted bool) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("id", id).
		Bool("submit", submitted).
		Msg("dispatch")
	Activity(id)
}

func Unmatched(id string) {
	if !logReady {
		return
	}
	diagLog.Debug().Str("id", id).Msg("unmatched")
}

func Overwrite(id string) {
	if !logReady {
		return
	}
	diagLog.Debug().Str("id", id).Msg("shortcut_overwritten")
}

// Activity appends "time\t[pid]\tid" to the activity log.
func Activity(id string) {
	if !logReady {
		return
	}
	logMu.Lock()
	defer logMu.Unlock()
	if activityFile == nil {
		return
	}
	line := fmt.Sprintf("%s\t[%d]\t%s\n", time.Now().Format("2006-01-02 15:04:05"), pid, id)
	activityFile.WriteString(line)
}
