package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const auditTimeLayout = "02.01.2006 15:04:05.000"

// Auditor accepts a single message and appends it to an audit trail.
type Auditor interface {
	Log(message string)
}

// Sink is an append-only, timestamp-prefixed text log. Writes are serialized
// by the underlying logrus logger and failures never reach the caller.
type Sink struct {
	logger *logrus.Logger
	closer io.Closer
}

type auditFormatter struct{}

func (auditFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	return []byte(fmt.Sprintf("%s | %s\n", entry.Time.Format(auditTimeLayout), entry.Message)), nil
}

// NewSink opens path for appending, creating parent directories as needed.
func NewSink(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, err
	}
	sink := NewSinkWriter(file)
	sink.closer = file
	return sink, nil
}

// NewSinkWriter builds a sink on an arbitrary writer.
func NewSinkWriter(w io.Writer) *Sink {
	return &Sink{
		logger: &logrus.Logger{
			Out:       w,
			Formatter: auditFormatter{},
			Hooks:     make(logrus.LevelHooks),
			Level:     logrus.InfoLevel,
		},
	}
}

func (s *Sink) Log(message string) {
	s.logger.Info(message)
}

func (s *Sink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

type discard struct{}

func (discard) Log(string) {}

// Discard drops every message.
var Discard Auditor = discard{}

// AuditSinks are the audit trails written by the server components.
type AuditSinks struct {
	Server  Auditor
	Client  Auditor
	Request Auditor
	DB      Auditor

	closers []io.Closer
}

// OpenAuditSinks opens the four audit files under dir. A file that cannot be
// opened is replaced by Discard and reported through logger.
func OpenAuditSinks(dir string, logger *logrus.Logger) *AuditSinks {
	sinks := &AuditSinks{}
	open := func(name string) Auditor {
		sink, err := NewSink(filepath.Join(dir, name))
		if err != nil {
			logger.WithError(err).WithField("file", name).Warn("logging.OpenAuditSinks.open failed")
			return Discard
		}
		sinks.closers = append(sinks.closers, sink)
		return sink
	}
	sinks.Server = open("ServerLogs.txt")
	sinks.Client = open("ClientLogs.txt")
	sinks.Request = open("RequestLogs.txt")
	sinks.DB = open("DBLogs.txt")
	return sinks
}

// DiscardAuditSinks returns sinks that drop everything.
func DiscardAuditSinks() *AuditSinks {
	return &AuditSinks{Server: Discard, Client: Discard, Request: Discard, DB: Discard}
}

func (a *AuditSinks) Close() {
	for _, c := range a.closers {
		_ = c.Close()
	}
}
