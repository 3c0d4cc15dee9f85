package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"listing-service/internal/core/domain"
)

const (
	outputJSON = "json"
	outputYAML = "yaml"
)

type listingRow struct {
	ID         int      `json:"id" yaml:"id"`
	Name       string   `json:"name" yaml:"name"`
	Prefecture string   `json:"prefecture" yaml:"prefecture"`
	Station    string   `json:"station" yaml:"station"`
	Type       string   `json:"type" yaml:"type"`
	Layout     string   `json:"layout" yaml:"layout"`
	Area       float64  `json:"area" yaml:"area"`
	Price      float64  `json:"price" yaml:"price"`
	Age        string   `json:"age" yaml:"age"`
	Badge      string   `json:"badge,omitempty" yaml:"badge,omitempty"`
	Features   []string `json:"features,omitempty" yaml:"features,omitempty"`
}

func toListingRows(listings []domain.Listing) []listingRow {
	rows := make([]listingRow, 0, len(listings))
	for _, l := range listings {
		rows = append(rows, listingRow{
			ID:         l.ID,
			Name:       l.Name,
			Prefecture: l.Prefecture,
			Station:    l.Station,
			Type:       l.Type,
			Layout:     l.Layout,
			Area:       l.Area,
			Price:      l.Price,
			Age:        l.Age,
			Badge:      l.Badge,
			Features:   l.Features,
		})
	}
	return rows
}

func writeOutput(w io.Writer, format string, v interface{}) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
}
