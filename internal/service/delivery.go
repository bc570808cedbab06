package service

import (
	"context"
	"io"

	"github.com/blacksmith/atlas/internal/compress"
	"github.com/blacksmith/atlas/internal/delivery"
)

// Slate is one rendered delivery slate.
type Slate struct {
	Shot  string `json:"shot"`
	Block string `json:"block"`
	Text  string `json:"text"`
}

// NewDeliveryService creates a new DeliveryService.
func NewDeliveryService(renderer *delivery.Renderer, codec compress.Compress) *DeliveryService {
	return &DeliveryService{
		renderer: renderer,
		codec:    codec,
	}
}

// DeliveryService turns shot list CSVs into delivery slates.
type DeliveryService struct {
	renderer *delivery.Renderer
	codec    compress.Compress
}

// GenerateFromCSV parses the shot list and renders a slate per row.
// When encode is set the whole slate text is returned in its ASCII
// code point form.
func (s *DeliveryService) GenerateFromCSV(ctx context.Context, r io.Reader, encode bool) ([]Slate, error) {
	records, err := delivery.ParseCSV(r)
	if err != nil {
		return nil, err
	}

	return s.Generate(ctx, records, encode)
}

// Generate renders a slate per record.
func (s *DeliveryService) Generate(ctx context.Context, records []delivery.ShotRecord, encode bool) ([]Slate, error) {
	slates := make([]Slate, 0, len(records))

	for _, record := range records {
		text, err := s.renderer.RenderSlate(record)
		if err != nil {
			return nil, err
		}

		if encode {
			text = delivery.EncodeASCII(text)
		}

		slates = append(slates, Slate{
			Shot:  record.Shot,
			Block: delivery.BlockLine(record),
			Text:  text,
		})
	}

	return slates, nil
}

// Archive renders every record and packs the slates into one
// compressed delivery document.
func (s *DeliveryService) Archive(ctx context.Context, records []delivery.ShotRecord) ([]byte, error) {
	slates, err := s.Generate(ctx, records, false)
	if err != nil {
		return nil, err
	}

	texts := make([]string, 0, len(slates))
	for _, slate := range slates {
		texts = append(texts, slate.Text)
	}

	return delivery.BuildArchive(texts, s.codec)
}

// Templates lists the slate templates the service can render.
func (s *DeliveryService) Templates() []string {
	return []string{"slate"}
}
