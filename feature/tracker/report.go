package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"rank-tracker/core/storage"
	"rank-tracker/feature/tracker/models"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// reportPrefix is where pass reports live inside the bucket.
const reportPrefix = "reports/"

// Archiver uploads pass summaries to object storage and prunes old ones.
// Archiving is best-effort: the caller logs failures and moves on, a pass
// never fails because its report could not be stored.
type Archiver struct {
	client    storage.Client
	bucket    string
	retention int
	logger    *zap.Logger
}

// NewArchiver creates an Archiver keeping the newest retention reports.
func NewArchiver(client storage.Client, bucket string, retention int, logger *zap.Logger) *Archiver {
	if retention <= 0 {
		retention = 200
	}
	return &Archiver{
		client:    client,
		bucket:    bucket,
		retention: retention,
		logger:    logger,
	}
}

// Archive stores the summary as JSON and prunes reports beyond retention.
func (a *Archiver) Archive(ctx context.Context, summary *models.PassSummary) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check report bucket: %w", err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create report bucket: %w", err)
		}
	}

	payload, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode pass report: %w", err)
	}

	name := reportObjectName(summary)
	_, err = a.client.PutObject(ctx, a.bucket, name,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload pass report: %w", err)
	}

	return a.prune(ctx)
}

// reportObjectName keys reports by start time so lexicographic order is
// chronological order.
func reportObjectName(summary *models.PassSummary) string {
	return fmt.Sprintf("%s%s-%s.json",
		reportPrefix,
		summary.StartedAt.UTC().Format(time.RFC3339),
		summary.PassID,
	)
}

// prune removes the oldest reports beyond the retention limit.
func (a *Archiver) prune(ctx context.Context) error {
	var names []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{
		Prefix:    reportPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return fmt.Errorf("failed to list pass reports: %w", obj.Err)
		}
		names = append(names, obj.Key)
	}

	if len(names) <= a.retention {
		return nil
	}

	sort.Strings(names)
	excess := names[:len(names)-a.retention]
	for _, name := range excess {
		if err := a.client.RemoveObject(ctx, a.bucket, name, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to prune pass report %s: %w", name, err)
		}
		a.logger.Debug("Pruned archived pass report", zap.String("object", name))
	}
	return nil
}
