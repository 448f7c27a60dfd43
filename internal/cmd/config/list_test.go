package config

import (
	"testing"

	"github.com/yacchi/mdsummary/internal/config"
)

func TestFormatEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry config.WalkEntry
		want  listEntry
	}{
		{
			name:  "default value",
			entry: config.WalkEntry{Path: "summary.max_length", Value: 200, Layer: config.LayerDefaults, DefaultValue: 200},
			want:  listEntry{line: "summary.max_length=200", comment: "defaults"},
		},
		{
			name:  "overridden value",
			entry: config.WalkEntry{Path: "summary.max_length", Value: 120, Layer: config.LayerUser, DefaultValue: 200},
			want:  listEntry{line: "summary.max_length=120", comment: "user, default: 200"},
		},
		{
			name:  "no default",
			entry: config.WalkEntry{Path: "output.jq", Value: ".summary", Layer: config.LayerEnv},
			want:  listEntry{line: "output.jq=.summary", comment: "env"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatEntry(tt.entry); got != tt.want {
				t.Errorf("formatEntry() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
