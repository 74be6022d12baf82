package media

import (
	"context"
	"io"

	"github.com/imagekit-developer/imagekit-go"
	"github.com/imagekit-developer/imagekit-go/api/uploader"
	"go.uber.org/zap"

	"profilehub_backend/internal/common"
	"profilehub_backend/internal/config"
	"profilehub_backend/internal/shared"
)

// uploadFn matches the ImageKit uploader signature. Held as a field so tests
// can exercise the normalization rules without touching the network.
type uploadFn func(ctx context.Context, file interface{}, param uploader.UploadParam) (*uploader.UploadResponse, error)

// Service uploads profile images to ImageKit.
//
// There is no local transaction around an upload: if persistence fails after a
// successful upload, the remote object is orphaned. Accepted limitation.
type Service struct {
	folder string
	upload uploadFn
	logger *zap.Logger
}

var _ shared.MediaService = (*Service)(nil)

// NewService creates a media Service backed by the configured ImageKit account.
func NewService(cfg *config.Config, logger *zap.Logger) *Service {
	ik := imagekit.NewFromParams(imagekit.NewParams{
		PrivateKey:  cfg.ImageKitPrivateKey,
		PublicKey:   cfg.ImageKitPublicKey,
		UrlEndpoint: cfg.ImageKitURLEndpoint,
	})
	return &Service{
		folder: cfg.ImageKitProfileFolder,
		upload: ik.Uploader.Upload,
		logger: logger,
	}
}

// Upload stores the file under the configured profile folder and returns the
// hosted asset. Transport failures and success responses lacking a URL both
// collapse into the single upload error, so callers need one branch only.
func (s *Service) Upload(ctx context.Context, file io.Reader, fileName string) (*shared.MediaAsset, error) {
	useUniqueFileName := false

	resp, err := s.upload(ctx, file, uploader.UploadParam{
		FileName:          fileName,
		Folder:            s.folder,
		UseUniqueFileName: &useUniqueFileName,
	})
	if err != nil {
		s.logger.Error("ImageKit upload failed", zap.Error(err), zap.String("fileName", fileName))
		return nil, common.ErrUploadFailed
	}
	if resp == nil || resp.Data.Url == "" {
		s.logger.Error("ImageKit upload returned no URL", zap.String("fileName", fileName))
		return nil, common.ErrUploadFailed
	}

	s.logger.Info("Profile image uploaded",
		zap.String("fileName", fileName),
		zap.String("url", resp.Data.Url),
	)
	return &shared.MediaAsset{
		URL:    resp.Data.Url,
		FileID: resp.Data.FileId,
		Name:   resp.Data.Name,
	}, nil
}
