package adrules

import (
	"fmt"

	syslog "github.com/RackSec/srslog"
	"github.com/sirupsen/logrus"
)

// SyslogHook forwards log entries to a syslog server.
type SyslogHook struct {
	writer *syslog.Writer
	levels []logrus.Level
}

var _ logrus.Hook = &SyslogHook{}

type SyslogOptions struct {
	// "udp", "tcp", "unix". Empty uses the local syslog socket.
	Network string

	// Remote address, defaults to local syslog server
	Address string

	// Priority value as per https://pkg.go.dev/log/syslog#Priority
	Priority int

	// Syslog tag
	Tag string

	// Lowest level that is forwarded, defaults to info.
	Level logrus.Level
}

// NewSyslogHook connects to the syslog server.
func NewSyslogHook(opt SyslogOptions) (*SyslogHook, error) {
	writer, err := syslog.Dial(opt.Network, opt.Address, syslog.Priority(opt.Priority), opt.Tag)
	if err != nil {
		return nil, err
	}
	if opt.Level == 0 {
		opt.Level = logrus.InfoLevel
	}
	var levels []logrus.Level
	for _, l := range logrus.AllLevels {
		if l <= opt.Level {
			levels = append(levels, l)
		}
	}
	return &SyslogHook{writer: writer, levels: levels}, nil
}

func (h *SyslogHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SyslogHook) Fire(entry *logrus.Entry) error {
	line, err := entry.String()
	if err != nil {
		return fmt.Errorf("failed to format syslog message: %w", err)
	}
	switch entry.Level {
	case logrus.PanicLevel, logrus.FatalLevel:
		return h.writer.Crit(line)
	case logrus.ErrorLevel:
		return h.writer.Err(line)
	case logrus.WarnLevel:
		return h.writer.Warning(line)
	case logrus.InfoLevel:
		return h.writer.Info(line)
	default:
		return h.writer.Debug(line)
	}
}

// Close disconnects from the syslog server.
func (h *SyslogHook) Close() error {
	return h.writer.Close()
}
