package server

import (
	"reflect"
	"testing"

	"latticenoise/internal/explorer"
	"latticenoise/internal/noise"
)

func TestParseInput(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want []explorer.Action
	}{
		{"empty", nil, nil},
		{"arrows", []byte("\x1b[A\x1b[B\x1b[C\x1b[D"), []explorer.Action{
			explorer.ActionUp, explorer.ActionDown, explorer.ActionRight, explorer.ActionLeft,
		}},
		{"wasd", []byte("wasd"), []explorer.Action{
			explorer.ActionUp, explorer.ActionLeft, explorer.ActionDown, explorer.ActionRight,
		}},
		{"parameters", []byte("OoPpLlFf"), []explorer.Action{
			explorer.ActionOctavesUp, explorer.ActionOctavesDown,
			explorer.ActionPersistenceUp, explorer.ActionPersistenceDown,
			explorer.ActionLacunarityUp, explorer.ActionLacunarityDown,
			explorer.ActionFrequencyUp, explorer.ActionFrequencyDown,
		}},
		{"zoom and slice", []byte("+-Zz "), []explorer.Action{
			explorer.ActionZoomIn, explorer.ActionZoomOut,
			explorer.ActionSliceForward, explorer.ActionSliceBack,
			explorer.ActionToggleAnimation,
		}},
		{"ctrl-c", []byte{3}, []explorer.Action{explorer.ActionQuit}},
		{"unknown keys ignored", []byte("xyé"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseInput(tt.data)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseInput(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestViewFromFrame(t *testing.T) {
	p := noise.NewPerlin()
	f := explorer.Frame{
		Viewer: explorer.ViewerSnapshot{
			Name: "eve", Source: noise.SourcePerlin, Field: *p,
			Octaves: 6, Frequency: 1, Lacunarity: 2, Persistence: 0.5,
			CenterX: 1, CenterY: 2, Z: 3, Step: 0.05, Palette: "gray",
		},
		Viewers: 3,
	}
	v := viewFromFrame(f)
	if v.ViewerName != "eve" || v.Viewers != 3 || v.Z != 3 || v.Step != 0.05 || v.Field == nil {
		t.Errorf("viewFromFrame = %+v", v)
	}
}
