package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blacksmith/atlas/internal/compress"
	"github.com/blacksmith/atlas/internal/delivery"
)

func newTestDeliveryService(t *testing.T) *DeliveryService {
	t.Helper()

	renderer, err := delivery.NewRenderer("")
	assert.NoError(t, err)

	return NewDeliveryService(renderer, compress.NewLz4())
}

func TestDeliveryService_GenerateFromCSV(t *testing.T) {
	service := newTestDeliveryService(t)

	csv := "shot,version,artist,date,vendor\nbsa_010,v002,kaeli,2026-08-28,blacksmith\nbsa_020,,marcus,2026-08-28,blacksmith\n"

	slates, err := service.GenerateFromCSV(context.TODO(), strings.NewReader(csv), false)
	assert.NoError(t, err)
	assert.Len(t, slates, 2)

	assert.Equal(t, "bsa_010", slates[0].Shot)
	assert.Equal(t, "BSA_010_v002_2026-08-28", slates[0].Block)
	assert.Contains(t, slates[0].Text, "SHOT:     BSA_010")

	// a missing version falls back to v001 in the block line
	assert.Equal(t, "BSA_020_v001_2026-08-28", slates[1].Block)
}

func TestDeliveryService_GenerateEncoded(t *testing.T) {
	service := newTestDeliveryService(t)

	csv := "bsa_010,v002,kaeli,2026-08-28,blacksmith\n"

	slates, err := service.GenerateFromCSV(context.TODO(), strings.NewReader(csv), true)
	assert.NoError(t, err)
	assert.Len(t, slates, 1)

	decoded, err := delivery.DecodeASCII(slates[0].Text)
	assert.NoError(t, err)
	assert.Contains(t, decoded, "SHOT:     BSA_010")
}

func TestDeliveryService_Archive(t *testing.T) {
	service := newTestDeliveryService(t)

	data, err := service.Archive(context.TODO(), []delivery.ShotRecord{
		{Shot: "BSA_010", Date: "2026-08-28"},
		{Shot: "BSA_020", Date: "2026-08-28"},
	})
	assert.NoError(t, err)

	slates, err := delivery.OpenArchive(data, compress.NewLz4())
	assert.NoError(t, err)
	assert.Len(t, slates, 2)
}

func TestDeliveryService_BadCSV(t *testing.T) {
	service := newTestDeliveryService(t)

	_, err := service.GenerateFromCSV(context.TODO(), strings.NewReader("shot\n,\n"), false)
	assert.ErrorIs(t, err, delivery.ErrEmptyShot)
}
