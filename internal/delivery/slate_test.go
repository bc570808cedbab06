package delivery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blacksmith/atlas/internal/compress"
)

func TestBlockLine(t *testing.T) {
	tests := []struct {
		name   string
		record ShotRecord
		want   string
	}{
		{
			name:   "full record",
			record: ShotRecord{Shot: "bsa_010", Version: "v002", Date: "2026-08-28"},
			want:   "BSA_010_v002_2026-08-28",
		},
		{
			name:   "default version",
			record: ShotRecord{Shot: "BSA_020", Date: "2026-08-28"},
			want:   "BSA_020_v001_2026-08-28",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BlockLine(tt.record))
		})
	}
}

func TestRenderSlate(t *testing.T) {
	renderer, err := NewRenderer("")
	assert.NoError(t, err)

	slate, err := renderer.RenderSlate(ShotRecord{
		Shot:    "bsa_010",
		Version: "v002",
		Artist:  "kaeli",
		Date:    "2026-08-28",
		Vendor:  "blacksmith",
	})
	assert.NoError(t, err)

	assert.Contains(t, slate, "SHOT:     BSA_010")
	assert.Contains(t, slate, "VERSION:  v002")
	assert.Contains(t, slate, "VENDOR:   BLACKSMITH")
	assert.Contains(t, slate, EncodeASCII("BSA_010_v002_2026-08-28"))
}

func TestRenderSlate_TemplateDirOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "SLATE {{ upper .Shot }}"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "slate.txt"), []byte(custom), 0644))

	renderer, err := NewRenderer(dir)
	assert.NoError(t, err)

	slate, err := renderer.RenderSlate(ShotRecord{Shot: "bsa_030"})
	assert.NoError(t, err)
	assert.Equal(t, "SLATE BSA_030", slate)
}

func TestArchiveRoundTrip(t *testing.T) {
	renderer, err := NewRenderer("")
	assert.NoError(t, err)

	slates, err := renderer.RenderAll([]ShotRecord{
		{Shot: "BSA_010", Date: "2026-08-28"},
		{Shot: "BSA_020", Date: "2026-08-28"},
	})
	assert.NoError(t, err)
	assert.Len(t, slates, 2)

	codec := compress.NewLz4()
	data, err := BuildArchive(slates, codec)
	assert.NoError(t, err)

	opened, err := OpenArchive(data, codec)
	assert.NoError(t, err)
	assert.Len(t, opened, 2)
	for i, slate := range slates {
		assert.Equal(t, strings.TrimRight(slate, "\n"), opened[i])
	}
}
