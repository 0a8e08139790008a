package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupCampaignAssignments(t *testing.T) {
	refs := []CampaignRef{
		{ID: "cam-1", Username: "toko_a"},
		{ID: "cam-2", Username: "toko_b"},
		{ID: "cam-3", Username: "toko_a"},
		{ID: "cam-4", Username: ""}, // ownerless, never assignable
	}

	tests := []struct {
		name        string
		campaignIDs []string
		want        map[string][]string
	}{
		{
			"grouped by owner, selection order kept",
			[]string{"cam-3", "cam-2", "cam-1"},
			map[string][]string{
				"toko_a": {"cam-3", "cam-1"},
				"toko_b": {"cam-2"},
			},
		},
		{
			"unknown campaigns dropped",
			[]string{"cam-1", "cam-9", "cam-4"},
			map[string][]string{"toko_a": {"cam-1"}},
		},
		{"empty selection", nil, map[string][]string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupCampaignAssignments(tt.campaignIDs, refs))
		})
	}
}
