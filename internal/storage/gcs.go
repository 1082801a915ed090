package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"weathercast/internal/logger"
)

// GCSReportStore writes report artifacts to a Google Cloud Storage bucket,
// for deployments that publish reports instead of keeping them on disk.
type GCSReportStore struct {
	client *storage.Client
	bucket string
}

// NewGCSReportStore creates a client for the bucket using the ambient
// credentials.
func NewGCSReportStore(ctx context.Context, bucketName string) (*GCSReportStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSReportStore{
		client: client,
		bucket: bucketName,
	}, nil
}

// Close closes the GCS client.
func (g *GCSReportStore) Close() error {
	return g.client.Close()
}

// StoreFile uploads one artifact into the report folder for the timestamp.
func (g *GCSReportStore) StoreFile(ctx context.Context, fileData []byte, filename string, timestamp time.Time) error {
	objectPath := GenerateReportFolderPath(timestamp) + "/" + filename

	logger.Debug("Storing file to GCS", map[string]interface{}{
		"bucket": g.bucket,
		"object": objectPath,
	})

	obj := g.client.Bucket(g.bucket).Object(objectPath)
	writer := obj.NewWriter(ctx)

	writer.ContentType = GetContentType(filename)
	writer.CacheControl = "public, max-age=3600" // Cache for 1 hour
	writer.Metadata = map[string]string{
		"generated-at": timestamp.Format(time.RFC3339),
		"filename":     filename,
	}

	if _, err := writer.Write(fileData); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write file to GCS: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize GCS file upload: %w", err)
	}

	logger.Debug("File successfully stored", map[string]interface{}{"filename": filename})
	return nil
}

// GetFile retrieves an artifact from the bucket.
func (g *GCSReportStore) GetFile(ctx context.Context, filePath string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(filePath)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for file %s: %w", filePath, err)
	}
	defer reader.Close()

	fileData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return fileData, nil
}

// ListReports lists report pages in the bucket, newest first, up to limit.
func (g *GCSReportStore) ListReports(ctx context.Context, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{})

	var reportPaths []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if strings.HasSuffix(attrs.Name, "/"+ReportPageName) {
			reportPaths = append(reportPaths, attrs.Name)
		}
	}

	// Folder names embed the timestamp, so lexical order is chronological.
	sort.Strings(reportPaths)
	for i, j := 0, len(reportPaths)-1; i < j; i, j = i+1, j-1 {
		reportPaths[i], reportPaths[j] = reportPaths[j], reportPaths[i]
	}

	if limit > 0 && limit < len(reportPaths) {
		reportPaths = reportPaths[:limit]
	}
	return reportPaths, nil
}

// GetLatestReport returns the path of the most recent report page.
func (g *GCSReportStore) GetLatestReport(ctx context.Context) (string, error) {
	reports, err := g.ListReports(ctx, 1)
	if err != nil {
		return "", err
	}
	if len(reports) == 0 {
		return "", fmt.Errorf("no reports found")
	}
	return reports[0], nil
}

var _ ReportStore = (*GCSReportStore)(nil)
