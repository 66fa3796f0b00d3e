package client

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"boothadmin/internal/domain/collection"
)

func TestConsoleNotifier(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	tests := []struct {
		name  string
		quiet bool
		level collection.Level
		want  string
	}{
		{name: "success", level: collection.LevelSuccess, want: "✓ готово\n"},
		{name: "error", level: collection.LevelError, want: "✗ готово\n"},
		{name: "info", level: collection.LevelInfo, want: "• готово\n"},
		{name: "quiet success", quiet: true, level: collection.LevelSuccess, want: ""},
		{name: "quiet error", quiet: true, level: collection.LevelError, want: "✗ готово\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewConsoleNotifier(&buf, tt.quiet).Notify(tt.level, "готово")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
