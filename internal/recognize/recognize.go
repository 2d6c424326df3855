// Package recognize turns an uploaded certificate file into a raw text
// blob: PDFs are read locally, images go through the Google Vision API.
// Recognition failures are reported here, before the extraction and
// scoring core is ever invoked.
package recognize

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	vision "cloud.google.com/go/vision/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/ledongthuc/pdf"
	"google.golang.org/api/option"
)

// Service extracts text from certificate files.
type Service struct {
	credentialsFile string
}

// New returns a recognition service. credentialsFile may be empty, in which
// case the Vision client falls back to application default credentials.
func New(credentialsFile string) *Service {
	return &Service{credentialsFile: credentialsFile}
}

// ExtractText returns the full recognized text of the file at path.
// Supported inputs are PDF, JPEG and PNG.
func (s *Service) ExtractText(ctx context.Context, path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDFText(path)
	case ".jpg", ".jpeg", ".png":
		return s.extractImageText(ctx, path)
	default:
		return "", fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func extractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	if buf.Len() == 0 {
		return "", fmt.Errorf("no text found in pdf %s", filepath.Base(path))
	}
	return buf.String(), nil
}

func (s *Service) extractImageText(ctx context.Context, path string) (string, error) {
	imgBytes, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}

	var opts []option.ClientOption
	if s.credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentialsFile))
	}
	client, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("init vision client: %w", err)
	}
	defer client.Close()

	img := &visionpb.Image{Content: imgBytes}
	anns, err := client.DetectTexts(ctx, img, nil, 1)
	if err != nil {
		return "", fmt.Errorf("detect text: %w", err)
	}
	if len(anns) == 0 || anns[0].Description == "" {
		return "", fmt.Errorf("no text found in image %s", filepath.Base(path))
	}
	return anns[0].Description, nil
}
