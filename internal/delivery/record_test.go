package delivery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCSV(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		want    []ShotRecord
		wantErr error
	}{
		{
			name: "with header",
			csv:  "shot,version,artist,date,vendor,notes\nBSA_010,v002,kaeli,2026-08-28,blacksmith,final comp\n",
			want: []ShotRecord{
				{Shot: "BSA_010", Version: "v002", Artist: "kaeli", Date: "2026-08-28", Vendor: "blacksmith", Notes: "final comp"},
			},
		},
		{
			name: "without header",
			csv:  "BSA_020,v001\nBSA_030,v003,marcus\n",
			want: []ShotRecord{
				{Shot: "BSA_020", Version: "v001"},
				{Shot: "BSA_030", Version: "v003", Artist: "marcus"},
			},
		},
		{
			name: "trailing columns omitted",
			csv:  "BSA_040\n",
			want: []ShotRecord{{Shot: "BSA_040"}},
		},
		{
			name:    "empty shot",
			csv:     "shot,version\n,v001\n",
			wantErr: ErrEmptyShot,
		},
		{
			name: "empty input",
			csv:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseCSV(strings.NewReader(tt.csv))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, records)
		})
	}
}
