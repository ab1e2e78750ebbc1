package yamlutil_test

// Notes:
// - The Marshal error branch is not tested: goccy/go-yaml only fails on
//   values such as channels or funcs, which callers never pass.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-rfd2pdf/internal/yamlutil"
)

type testConfig struct {
	Owner   string `yaml:"owner"`
	Workers int    `yaml:"workers"`
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Parsing and Input Validation
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		data      []byte
		dest      any
		wantErr   error
		wantAnyEr bool
		want      testConfig
	}{
		{
			name: "valid YAML",
			data: []byte("owner: oxidecomputer\nworkers: 4\n"),
			dest: &testConfig{},
			want: testConfig{Owner: "oxidecomputer", Workers: 4},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("owner: x"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "input too large",
			data:    []byte(strings.Repeat("a", yamlutil.MaxInputSize+1)),
			dest:    &testConfig{},
			wantErr: yamlutil.ErrInputTooLarge,
		},
		{
			name:      "unknown field rejected",
			data:      []byte("owner: x\nunknown: y\n"),
			dest:      &testConfig{},
			wantAnyEr: true,
		},
		{
			name:      "type mismatch",
			data:      []byte("workers: many\n"),
			dest:      &testConfig{},
			wantAnyEr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.UnmarshalStrict(tt.data, tt.dest)

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UnmarshalStrict() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantAnyEr:
				if err == nil {
					t.Fatal("UnmarshalStrict() error = nil, want error")
				}
			default:
				if err != nil {
					t.Fatalf("UnmarshalStrict() error = %v", err)
				}
				if got := *tt.dest.(*testConfig); got != tt.want {
					t.Errorf("UnmarshalStrict() = %+v, want %+v", got, tt.want)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestMarshal - Encoding
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(testConfig{Owner: "oxidecomputer", Workers: 2})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	got := string(out)
	if !strings.Contains(got, "owner: oxidecomputer") || !strings.Contains(got, "workers: 2") {
		t.Errorf("Marshal() = %q", got)
	}
	if strings.Index(got, "owner") > strings.Index(got, "workers") {
		t.Errorf("Marshal() should keep field order, got %q", got)
	}
}
