package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/containerd/errdefs"
	"github.com/google/go-cmp/cmp"
)

func TestAccessors(t *testing.T) {
	cfg := Defaults()

	if cfg.OptLevel() != 2 {
		t.Fatalf("OptLevel() = %d, want 2", cfg.OptLevel())
	}
	if diff := cmp.Diff([]string{"x86", "arm"}, cfg.Targets()); diff != "" {
		t.Fatalf("Targets() mismatch (-want +got):\n%s", diff)
	}
	if !cfg.Feature(FeatureSIMD) {
		t.Fatal("Feature(simd) = false, want true")
	}
	if cfg.Feature(FeatureOpenCL) {
		t.Fatal("Feature(opencl) = true, want false")
	}
	if cfg.Feature("missing") {
		t.Fatal("Feature(missing) = true, want false")
	}
}

func TestOptLevelFromJSONNumber(t *testing.T) {
	cfg := Config{KeyOptLevel: float64(3)}
	if cfg.OptLevel() != 3 {
		t.Fatalf("OptLevel() = %d, want 3", cfg.OptLevel())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		override Config
		wantErr  bool
	}{
		{name: "defaults"},
		{name: "json number", override: Config{KeyOptLevel: float64(1)}},
		{name: "empty targets", override: Config{KeyTargets: []any{}}},
		{name: "negative opt level", override: Config{KeyOptLevel: -1}, wantErr: true},
		{name: "fractional opt level", override: Config{KeyOptLevel: 1.5}, wantErr: true},
		{name: "string opt level", override: Config{KeyOptLevel: "2"}, wantErr: true},
		{name: "scalar targets", override: Config{KeyTargets: "x86"}, wantErr: true},
		{name: "empty target", override: Config{KeyTargets: []any{"x86", ""}}, wantErr: true},
		{name: "numeric target", override: Config{KeyTargets: []any{1}}, wantErr: true},
		{name: "non-bool feature", override: Config{KeyFeatures: map[string]any{"simd": "yes"}}, wantErr: true},
		{name: "scalar features", override: Config{KeyFeatures: true}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Merge(Defaults(), tt.override).Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error %v does not wrap ErrInvalidConfig", err)
			}
			if !errdefs.IsInvalidArgument(err) {
				t.Fatalf("error %v is not classified as invalid argument", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xbuild.yaml")
	data := "opt_level: 3\ntargets: [x86, arm, riscv]\nfeatures:\n  simd: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	override, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cfg := Merge(Defaults(), override)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.OptLevel() != 3 {
		t.Fatalf("OptLevel() = %d, want 3", cfg.OptLevel())
	}
	if diff := cmp.Diff([]string{"x86", "arm", "riscv"}, cfg.Targets()); diff != "" {
		t.Fatalf("Targets() mismatch (-want +got):\n%s", diff)
	}
	if cfg.Feature(FeatureSIMD) {
		t.Fatal("Feature(simd) = true, want false")
	}
	if _, ok := cfg[KeyFeatures].(map[string]any)[FeatureOpenCL]; !ok {
		t.Fatal("opencl default dropped by merge")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, ErrLoad) {
		t.Fatalf("missing file: err = %v, want ErrLoad", err)
	}
	if _, err := Parse([]byte("- just\n- a list\n")); !errors.Is(err, ErrLoad) {
		t.Fatalf("sequence document: err = %v, want ErrLoad", err)
	}

	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("empty document: %v", err)
	}
	if len(cfg) != 0 {
		t.Fatalf("empty document = %v, want empty config", cfg)
	}
}

func TestSet(t *testing.T) {
	cfg := Config{}
	assignments := []string{
		"features.simd=false",
		"opt_level=3",
		"targets=[x86, riscv]",
		"toolchain.cc.path=/opt/bin/clang",
	}
	for _, a := range assignments {
		if err := SetAssignment(cfg, a); err != nil {
			t.Fatalf("SetAssignment(%q): %v", a, err)
		}
	}

	want := Config{
		"features":  map[string]any{"simd": false},
		"opt_level": 3,
		"targets":   []any{"x86", "riscv"},
		"toolchain": map[string]any{"cc": map[string]any{"path": "/opt/bin/clang"}},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSetErrors(t *testing.T) {
	tests := []struct {
		name       string
		assignment string
	}{
		{"missing equals", "features.simd"},
		{"empty segment", "features..simd=true"},
		{"through scalar", "opt_level.x=1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{KeyOptLevel: 2}
			if err := SetAssignment(cfg, tt.assignment); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Encode(Defaults())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	decoded, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if diff := cmp.Diff(Defaults(), decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
