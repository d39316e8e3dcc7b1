package cloudinary

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type Uploader struct {
	cld *cld.Cloudinary
}

func NewUploader(cloud *cld.Cloudinary) *Uploader {
	return &Uploader{cld: cloud}
}

// Upload stores the stream under a collision-free public ID and returns the
// secure URL. Videos get the video resource type; everything else is stored
// as an image.
func (u *Uploader) Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error) {
	resourceType := "image"
	if isVideo(filename) {
		resourceType = "video"
	}

	publicID := uuid.NewString()
	if base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)); base != "" {
		publicID = base + "-" + publicID
	}

	res, err := u.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		ResourceType: resourceType,
	})
	if err != nil {
		return "", err
	}
	return res.SecureURL, nil
}

func isVideo(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4", ".mov", ".webm", ".mkv":
		return true
	}
	return false
}
