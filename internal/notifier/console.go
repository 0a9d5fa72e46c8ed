package notifier

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

const (
	successPrefix = "[ok]"
	errorPrefix   = "[error]"
)

// ConsoleNotifier prints notifications to a terminal and mirrors them to the logger.
type ConsoleNotifier struct {
	mu     sync.Mutex
	out    io.Writer
	logger *zap.Logger
}

func NewConsoleNotifier(out io.Writer, logger *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{out: out, logger: logger}
}

func (n *ConsoleNotifier) Success(title string, detail string) {
	n.write(successPrefix, title, detail)
	n.logger.Debug("Notification shown",
		zap.String("kind", "success"),
		zap.String("title", title))
}

func (n *ConsoleNotifier) Error(title string, detail string) {
	n.write(errorPrefix, title, detail)
	n.logger.Debug("Notification shown",
		zap.String("kind", "error"),
		zap.String("title", title),
		zap.String("detail", detail))
}

func (n *ConsoleNotifier) write(prefix string, title string, detail string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	var err error
	if detail == "" {
		_, err = fmt.Fprintf(n.out, "%s %s\n", prefix, title)
	} else {
		_, err = fmt.Fprintf(n.out, "%s %s: %s\n", prefix, title, detail)
	}
	if err != nil {
		n.logger.Warn("Failed to write notification", zap.Error(err))
	}
}
