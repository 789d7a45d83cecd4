package adapters

import (
	"context"

	"offer_generator_backend/internal/adapters/storage"
	draftshandler "offer_generator_backend/internal/drafts/handler"
	offershandler "offer_generator_backend/internal/offers/handler"
	"offer_generator_backend/platform/logger"
)

// LogoPresigner generates presigned download URLs for company logos.
type LogoPresigner struct {
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
}

// NewLogoPresigner creates a new logo presigner adapter.
func NewLogoPresigner(storageSvc storage.StorageService, bucket string, log *logger.Logger) *LogoPresigner {
	return &LogoPresigner{storage: storageSvc, bucket: bucket, log: log}
}

// LogoURL returns a presigned URL for fileKey, or "" when none can be made.
func (p *LogoPresigner) LogoURL(ctx context.Context, fileKey string) string {
	if p == nil || p.storage == nil || fileKey == "" {
		return ""
	}
	presigned, err := p.storage.GenerateDownloadURL(ctx, p.bucket, fileKey)
	if err != nil {
		p.log.Warn("failed to presign company logo", "error", err, "key", fileKey)
		return ""
	}
	return presigned.URL
}

// Compile-time checks that LogoPresigner implements both resolvers.
var (
	_ draftshandler.LogoURLResolver = (*LogoPresigner)(nil)
	_ offershandler.LogoURLResolver = (*LogoPresigner)(nil)
)
