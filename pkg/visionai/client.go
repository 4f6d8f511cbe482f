// Package visionai is the cloud-vision fallback glyph source: scanned
// card PDFs carry no text layer, so their glyph runs come from Google
// Document AI OCR instead of the PDF content stream. The output is the
// same positioned glyph-run model the local reconstructor produces,
// which keeps the rest of the pipeline indifferent to the source.
package visionai

import (
	"context"
	"fmt"
	"os"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"
)

// Config identifies the Document AI processor to call.
type Config struct {
	ProjectID   string `yaml:"project_id"`
	Location    string `yaml:"location"`
	ProcessorID string `yaml:"processor_id"`
}

// Enabled reports whether the config is complete enough to call out.
func (c *Config) Enabled() bool {
	return c != nil && c.ProjectID != "" && c.Location != "" && c.ProcessorID != ""
}

// ProcessDocument sends PDF bytes to Document AI for OCR and returns
// the raw Document proto response.
func ProcessDocument(ctx context.Context, pdfBytes []byte, cfg *Config) (*documentaipb.Document, error) {
	endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", cfg.Location)

	// Credentials come from the environment, same as every other
	// Google client in this deployment.
	client, err := documentai.NewDocumentProcessorClient(
		ctx,
		option.WithEndpoint(endpoint),
		option.WithCredentialsFile(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Document AI client: %w", err)
	}
	defer client.Close()

	name := fmt.Sprintf(
		"projects/%s/locations/%s/processors/%s",
		cfg.ProjectID, cfg.Location, cfg.ProcessorID,
	)

	req := &documentaipb.ProcessRequest{
		Name: name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  pdfBytes,
				MimeType: "application/pdf",
			},
		},
		SkipHumanReview: true,
	}

	resp, err := client.ProcessDocument(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to process document: %w", err)
	}
	return resp.Document, nil
}
