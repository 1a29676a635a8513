// Package catalogfile loads the static product catalog supplied at
// startup. It is the validation boundary: the core assumes the records
// it returns are well formed.
package catalogfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/greencart/storefront/internal/core/domain"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	ErrDuplicateID       = errors.New("duplicate product id")
	ErrNoImage           = errors.New("product has no image")
	ErrNegativePrice     = errors.New("negative price")
)

type (
	productRecord struct {
		ID                  int           `json:"id" csv:"id"`
		Name                string        `json:"name" csv:"name"`
		Description         string        `json:"description" csv:"description"`
		Category            string        `json:"category" csv:"category"`
		Price               float64       `json:"price" csv:"price"`
		SustainabilityScore float64       `json:"sustainabilityScore" csv:"sustainability_score"`
		CarbonFootprint     float64       `json:"carbonFootprint" csv:"carbon_footprint"`
		Certifications      []string      `json:"certifications" csv:"-"`
		CertificationsCSV   string        `json:"-" csv:"certifications"`
		Image               string        `json:"image" csv:"image"`
		Images              []imageRecord `json:"images" csv:"-"`
	}

	imageRecord struct {
		URL string `json:"url"`
		Alt string `json:"alt"`
	}
)

// Load reads a product catalog from a .json or .csv file.
func Load(path string) ([]domain.Product, error) {
	const op = "catalogfile.Load"
	log := slog.With("op", op)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	var records []productRecord
	switch ext := filepath.Ext(path); ext {
	case ".json":
		err = json.NewDecoder(f).Decode(&records)
	case ".csv":
		err = gocsv.UnmarshalFile(f, &records)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := toDomain(records)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("catalog loaded", "path", path, "nProducts", len(ps))
	return ps, nil
}

func toDomain(records []productRecord) ([]domain.Product, error) {
	seen := make(map[int]struct{}, len(records))
	ps := make([]domain.Product, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}

		if rec.Price < 0 {
			return nil, fmt.Errorf("%w: product %d", ErrNegativePrice, rec.ID)
		}

		images, err := resolveImages(rec)
		if err != nil {
			return nil, err
		}

		ps = append(ps, domain.Product{
			ID:                  rec.ID,
			Name:                rec.Name,
			Description:         rec.Description,
			Category:            rec.Category,
			Price:               rec.Price,
			SustainabilityScore: rec.SustainabilityScore,
			CarbonFootprint:     rec.CarbonFootprint,
			Certifications:      certifications(rec),
			Images:              images,
		})
	}
	return ps, nil
}

// resolveImages normalizes the legacy single image field into the
// images sequence, so downstream code never branches on which field
// was populated.
func resolveImages(rec productRecord) ([]domain.ProductImage, error) {
	if len(rec.Images) > 0 {
		images := make([]domain.ProductImage, len(rec.Images))
		for i, img := range rec.Images {
			images[i] = domain.ProductImage{URL: img.URL, Alt: img.Alt}
		}
		return images, nil
	}
	if rec.Image != "" {
		return []domain.ProductImage{{URL: rec.Image, Alt: rec.Name}}, nil
	}
	return nil, fmt.Errorf("%w: product %d", ErrNoImage, rec.ID)
}

func certifications(rec productRecord) []string {
	if len(rec.Certifications) > 0 {
		return rec.Certifications
	}
	if rec.CertificationsCSV == "" {
		return nil
	}
	parts := strings.Split(rec.CertificationsCSV, ";")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
