package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/showroom-api/internal/domain/entity"
	"github.com/jhoicas/showroom-api/internal/infrastructure/media"
)

// Firma mínima de PNG: suficiente para la detección por magic number.
var pngBlob = entity.Image{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func TestIsImage(t *testing.T) {
	assert.True(t, media.IsImage(pngBlob))
	assert.False(t, media.IsImage(entity.Image("just text")))
	assert.False(t, media.IsImage(nil))
	assert.Equal(t, "image/png", media.ContentType(pngBlob))
	assert.Equal(t, "png", media.Extension(pngBlob))
}

func TestCoverOrPlaceholder(t *testing.T) {
	body, ct := media.CoverOrPlaceholder(&entity.Product{})
	assert.Equal(t, media.PlaceholderSVG, body)
	assert.Equal(t, media.PlaceholderContentType, ct)

	body, ct = media.CoverOrPlaceholder(&entity.Product{Images: []entity.Image{entity.Image("bogus"), pngBlob}})
	assert.Equal(t, media.PlaceholderSVG, body, "portada malformada se reemplaza sin error")
	assert.Equal(t, media.PlaceholderContentType, ct)

	body, ct = media.CoverOrPlaceholder(&entity.Product{Images: []entity.Image{pngBlob}})
	assert.Equal(t, []byte(pngBlob), body)
	assert.Equal(t, "image/png", ct)
}
