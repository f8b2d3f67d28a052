package source

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pkg/errors"
)

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name        string
		header      []string
		wantMissing []string
	}{
		{"exact", []string{"Source", "Type", "Content", "Reactions"}, nil},
		{"superset in any order", []string{"Time", "Reactions", "Content", "Asker", "Type", "Source"}, nil},
		{"two missing", []string{"Source", "Type"}, []string{"Content", "Reactions"}},
		{"case matters", []string{"source", "Type", "Content", "Reactions"}, []string{"Source"}},
		{"empty header", nil, []string{"Source", "Type", "Content", "Reactions"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumns(tt.header)
			if tt.wantMissing == nil {
				if err != nil {
					t.Fatalf("ValidateColumns() error = %v, want nil", err)
				}
				return
			}

			var mcErr *MissingColumnsError
			if !errors.As(err, &mcErr) {
				t.Fatalf("ValidateColumns() error = %v, want *MissingColumnsError", err)
			}
			if !reflect.DeepEqual(mcErr.Missing, tt.wantMissing) {
				t.Errorf("Missing = %v, want %v", mcErr.Missing, tt.wantMissing)
			}
			if !errors.Is(err, ErrMalformedSource) {
				t.Error("error does not unwrap to ErrMalformedSource")
			}
			for _, column := range tt.wantMissing {
				if !strings.Contains(err.Error(), column) {
					t.Errorf("error message %q does not name %s", err.Error(), column)
				}
			}
		})
	}
}
