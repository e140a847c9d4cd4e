package providers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"mfd/internal/structures"
)

type TypeEnum int

const (
	TypeApp TypeEnum = iota
	TypeGet
	TypePost
)

type Logger interface {
	Errorf(t TypeEnum, format string, args ...interface{})
	Warnf(t TypeEnum, format string, args ...interface{})
	Infof(t TypeEnum, format string, args ...interface{})
	Debugf(t TypeEnum, format string, args ...interface{})
	Fatalf(t TypeEnum, format string, args ...interface{})
	Close()
}

// LogProvider writes application events to app.log and request-path events to
// access.log under the configured directory.
type LogProvider struct {
	app    zerolog.Logger
	access zerolog.Logger
	files  []*os.File
}

func NewLogProvider(conf *structures.Config) (Logger, error) {
	level, err := zerolog.ParseLevel(conf.Logger.Level)
	if err != nil {
		return nil, err
	}

	mode := os.FileMode(conf.Logger.Mode)
	appFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "app.log"), mode)
	if err != nil {
		return nil, err
	}
	accessFile, err := openLogFile(filepath.Join(conf.Logger.Dir, "access.log"), mode)
	if err != nil {
		appFile.Close()
		return nil, err
	}

	p := &LogProvider{files: []*os.File{appFile, accessFile}}
	p.app = newLogger(appFile, level, conf.Debug)
	p.access = newLogger(accessFile, level, conf.Debug)
	return p, nil
}

func newLogger(file *os.File, level zerolog.Level, debug bool) zerolog.Logger {
	var writer zerolog.LevelWriter = zerolog.MultiLevelWriter(file)
	if debug {
		console := zerolog.ConsoleWriter{Out: os.Stderr}
		writer = zerolog.MultiLevelWriter(file, console)
	}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

func openLogFile(path string, mode os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, mode)
}

func (p *LogProvider) pick(t TypeEnum) *zerolog.Logger {
	if t == TypeApp {
		return &p.app
	}
	return &p.access
}

func (p *LogProvider) Errorf(t TypeEnum, format string, args ...interface{}) {
	p.pick(t).Error().Msgf(format, args...)
}

func (p *LogProvider) Warnf(t TypeEnum, format string, args ...interface{}) {
	p.pick(t).Warn().Msgf(format, args...)
}

func (p *LogProvider) Infof(t TypeEnum, format string, args ...interface{}) {
	p.pick(t).Info().Msgf(format, args...)
}

func (p *LogProvider) Debugf(t TypeEnum, format string, args ...interface{}) {
	p.pick(t).Debug().Msgf(format, args...)
}

func (p *LogProvider) Fatalf(t TypeEnum, format string, args ...interface{}) {
	p.pick(t).Fatal().Msgf(format, args...)
}

func (p *LogProvider) Close() {
	for _, f := range p.files {
		_ = f.Close()
	}
}

func GetLogTypeByRequestType(method string) TypeEnum {
	if method == http.MethodPost {
		return TypePost
	}
	return TypeGet
}
