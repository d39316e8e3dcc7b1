package cloudinary

import (
	"github.com/cloudinary/cloudinary-go/v2"
)

// New reads CLOUDINARY_URL from the environment.
func New() (*cloudinary.Cloudinary, error) {
	return cloudinary.New()
}

// NewFromURL builds a client from an explicit cloudinary:// URL.
func NewFromURL(url string) (*cloudinary.Cloudinary, error) {
	if url == "" {
		return cloudinary.New()
	}
	return cloudinary.NewFromURL(url)
}
