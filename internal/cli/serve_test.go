package cli

import (
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want hclog.Level
	}{
		{"trace", hclog.Trace},
		{"debug", hclog.Debug},
		{"info", hclog.Info},
		{"WARN", hclog.Warn},
		{"error", hclog.Error},
		{"bogus", hclog.Info},
		{"", hclog.Info},
	}
	for _, tt := range tests {
		if got := parseLogLevel(tt.in); got != tt.want {
			t.Errorf("parseLogLevel(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}
