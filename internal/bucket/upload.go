package bucket

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"

	"github.com/minio/minio-go/v7"

	"github.com/hidecraft/hidecraft-manager/internal/entity"
)

const contentTypeWebpMIME = "image/webp"

// UploadContentImage decodes a raw base64 image, encodes a full size webp and
// a thumbnail, uploads both and returns the media row to persist.
func (b *Bucket) UploadContentImage(ctx context.Context, rawB64Image, folder, imageName string) (*entity.MediaInsert, error) {
	img, err := imageFromString(rawB64Image)
	if err != nil {
		return nil, fmt.Errorf("can't decode base64 image: %w", err)
	}
	return b.uploadImageObj(ctx, img, folder, imageName)
}

func (b *Bucket) uploadImageObj(ctx context.Context, img image.Image, folder, imageName string) (*entity.MediaInsert, error) {
	hash, err := blurHashFor(img)
	if err != nil {
		return nil, fmt.Errorf("can't compute blurhash: %w", err)
	}

	fullSizeURL, err := b.uploadWebp(ctx, img, 90, folder, imageName+"-full")
	if err != nil {
		return nil, fmt.Errorf("can't upload full size image: %w", err)
	}

	thumb := resizeToWidth(img, b.ThumbnailWidth)
	thumbnailURL, err := b.uploadWebp(ctx, thumb, 75, folder, imageName+"-thumb")
	if err != nil {
		return nil, fmt.Errorf("can't upload thumbnail: %w", err)
	}

	return &entity.MediaInsert{
		FullSizeMediaURL:  fullSizeURL,
		FullSizeWidth:     img.Bounds().Dx(),
		FullSizeHeight:    img.Bounds().Dy(),
		ThumbnailMediaURL: thumbnailURL,
		ThumbnailWidth:    thumb.Bounds().Dx(),
		ThumbnailHeight:   thumb.Bounds().Dy(),
		BlurHash:          hash,
	}, nil
}

func (b *Bucket) uploadWebp(ctx context.Context, img image.Image, quality float32, folder, imageName string) (string, error) {
	var buf bytes.Buffer
	if err := encodeWEBP(&buf, img, quality); err != nil {
		return "", fmt.Errorf("can't encode webp: %w", err)
	}

	fp := b.constructFullPath(folder, imageName, "webp")
	_, err := b.Client.PutObject(ctx, b.S3BucketName, fp, &buf,
		int64(buf.Len()), minio.PutObjectOptions{
			ContentType:  contentTypeWebpMIME,
			CacheControl: "max-age=31536000",
			UserMetadata: map[string]string{"x-amz-acl": "public-read"},
		},
	)
	if err != nil {
		return "", fmt.Errorf("can't put object: %w", err)
	}
	return b.getCDNURL(fp), nil
}

func (b *Bucket) constructFullPath(folder, fileName, ext string) string {
	return path.Clean(path.Join(b.BaseFolder, folder, fileName) + "." + ext)
}

func (b *Bucket) getCDNURL(filePath string) string {
	return fmt.Sprintf("https://%s.%s/%s", b.S3BucketName, b.S3Endpoint, filePath)
}
