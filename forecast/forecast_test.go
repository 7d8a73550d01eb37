package forecast

import (
	"strings"
	"testing"

	"github.com/finwatch/asset/logger"
	"github.com/finwatch/asset/models"
)

func TestLoadAsset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Asset
		wantErr bool
	}{
		{
			name:  "valid asset",
			input: "property   1000    0.1",
			want:  models.Asset{Name: "property", Capital: 1000.0, Interest: 0.1},
		},
		{
			name:    "malformed asset",
			input:   "property",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadAsset(strings.NewReader(tt.input), logger.NewNop())
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadAsset() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("LoadAsset() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPrintRevenue(t *testing.T) {
	asset := models.Asset{Name: "property", Capital: 1000.0, Interest: 0.1}

	var out strings.Builder
	if err := PrintRevenue(&out, logger.NewNop(), asset, []int{1, 2, 5}); err != nil {
		t.Fatalf("PrintRevenue() error = %v", err)
	}

	// Strip all whitespace so column padding does not matter.
	got := strings.Join(strings.Fields(out.String()), "")
	want := "1:100.0002:210.0005:610.510"
	if got != want {
		t.Errorf("PrintRevenue() output = %q, want %q", got, want)
	}
}

func TestPrintRevenueLinePadding(t *testing.T) {
	asset := models.Asset{Name: "property", Capital: 1000.0, Interest: 0.1}

	var out strings.Builder
	if err := PrintRevenue(&out, logger.NewNop(), asset, []int{1}); err != nil {
		t.Fatalf("PrintRevenue() error = %v", err)
	}
	if got := out.String(); got != "    1:    100.000\n" {
		t.Errorf("PrintRevenue() line = %q", got)
	}
}
