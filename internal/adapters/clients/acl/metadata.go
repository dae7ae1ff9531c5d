package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/nishantarora/portfolio/internal/domain"
)

// recordDTO is one entry of posts.json or projects.json.
type recordDTO struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt,omitempty"`
	Description string   `json:"description,omitempty"`
	Date        string   `json:"date,omitempty"`
	File        string   `json:"file"`
	Tags        []string `json:"tags,omitempty"`
	Tech        []string `json:"tech,omitempty"`
	Image       string   `json:"image,omitempty"`
}

// DecodeRecords reads a metadata list. Records keep their authored order.
func DecodeRecords(r io.Reader, kind domain.Kind) ([]domain.Record, error) {
	var dtos []recordDTO
	if err := json.NewDecoder(r).Decode(&dtos); err != nil {
		return nil, fmt.Errorf("decoding %s metadata: %w", kind, err)
	}

	records, err := TranslateSlice(dtos, recordTranslator(kind))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Record, len(records))
	for i, rec := range records {
		out[i] = *rec
	}

	return out, nil
}

func recordTranslator(kind domain.Kind) Translator[recordDTO, domain.Record] {
	return func(dto *recordDTO) (*domain.Record, error) {
		if err := ValidateRequired(dto.ID, "id"); err != nil {
			return nil, err
		}

		return &domain.Record{
			Kind:        kind,
			ID:          dto.ID,
			Title:       dto.Title,
			Excerpt:     dto.Excerpt,
			Description: dto.Description,
			Date:        strings.TrimSpace(dto.Date),
			File:        dto.File,
			Tags:        dto.Tags,
			Tech:        dto.Tech,
			Image:       dto.Image,
		}, nil
	}
}
