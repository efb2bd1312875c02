package bucket

import (
	"context"
	"fmt"
	"strings"

	"log/slog"

	"github.com/minio/minio-go/v7"
)

func toRemoveCh(keys []string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	go func() {
		for _, key := range keys {
			ch <- minio.ObjectInfo{Key: key}
		}
		close(ch)
	}()
	return ch
}

// DeleteFromBucket deletes objects from the bucket.
func (b *Bucket) DeleteFromBucket(ctx context.Context, objectKeys []string) error {
	var errMsgs []string

	errorCh := b.Client.RemoveObjects(ctx, b.S3BucketName, toRemoveCh(objectKeys), minio.RemoveObjectsOptions{})
	for dErr := range errorCh {
		slog.Default().ErrorContext(ctx, "can't delete object from s3 bucket",
			slog.String("object_key", dErr.ObjectName),
			slog.String("err", dErr.Err.Error()),
		)
		errMsgs = append(errMsgs, dErr.Err.Error())
	}

	if len(errMsgs) > 0 {
		return fmt.Errorf("errors during deletion: %s", strings.Join(errMsgs, "; "))
	}
	return nil
}
