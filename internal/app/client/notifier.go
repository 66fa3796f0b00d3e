package client

import (
	"io"
	"sync"

	"github.com/fatih/color"

	"boothadmin/internal/domain/collection"
)

// ConsoleNotifier печатает уведомления в терминал (обычно stderr).
type ConsoleNotifier struct {
	mu    sync.Mutex
	w     io.Writer
	quiet bool
}

func NewConsoleNotifier(w io.Writer, quiet bool) *ConsoleNotifier {
	return &ConsoleNotifier{w: w, quiet: quiet}
}

func (n *ConsoleNotifier) Notify(level collection.Level, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch level {
	case collection.LevelSuccess:
		if n.quiet {
			return
		}
		color.New(color.FgGreen).Fprintf(n.w, "✓ %s\n", message)
	case collection.LevelError:
		color.New(color.FgRed).Fprintf(n.w, "✗ %s\n", message)
	default:
		if n.quiet {
			return
		}
		color.New(color.FgCyan).Fprintf(n.w, "• %s\n", message)
	}
}
