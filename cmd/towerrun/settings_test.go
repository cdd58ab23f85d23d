package main

import (
	"testing"

	"github.com/vovakirdan/towerrun/internal/games/towerrun/engine"
)

func TestApplySetting(t *testing.T) {
	base := engine.DefaultSettings()

	tests := []struct {
		name    string
		setting string
		value   string
		want    engine.Settings
		wantErr bool
	}{
		{"sound off", "sound", "false", engine.Settings{Sound: false}, false},
		{"fps on", "show-fps", "true", engine.Settings{Sound: true, ShowFPS: true}, false},
		{"reduce motion", "reduce-motion", "1", engine.Settings{Sound: true, ReduceMotion: true}, false},
		{"bad value", "sound", "loud", base, true},
		{"unknown", "volume", "true", base, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := applySetting(base, tt.setting, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applySetting() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("applySetting() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"localhost:8080": "8080",
		"nonsense":       "nonsense",
	}
	for in, want := range tests {
		if got := portOf(in); got != want {
			t.Errorf("portOf(%q) = %q, want %q", in, got, want)
		}
	}
}
