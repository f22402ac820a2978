package adapters

import (
	"context"
	"encoding/json"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/config"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"io"
)

const manifestContentType = "application/x-ndjson"

type s3ManifestPublisher struct {
	logger   outbound.LoggerPort
	uploader *s3manager.Uploader
	s3Config *config.S3Config
}

func NewS3ManifestPublisher(logger outbound.LoggerPort, s3Svc *s3.S3, s3Config *config.S3Config) outbound.RenderManifestPublisherPort {
	return &s3ManifestPublisher{
		logger:   logger,
		uploader: s3manager.NewUploaderWithClient(s3Svc),
		s3Config: s3Config,
	}
}

// Publish streams descriptors as JSON lines straight into a multipart upload,
// so an export never holds its whole manifest in memory.
func (s *s3ManifestPublisher) Publish(ctx context.Context, req outbound.PublishManifestRequest) (*outbound.PublishManifestResponse, error) {
	itemPath := s.getS3ItemPath(req)

	pr, pw := io.Pipe()
	frames := 0
	done := make(chan struct{})

	go func() {
		defer close(done)
		enc := json.NewEncoder(pw)
		for {
			select {
			case <-ctx.Done():
				pw.CloseWithError(ctx.Err())
				return
			case descriptor, ok := <-req.Descriptors:
				if !ok {
					pw.Close()
					return
				}
				if err := enc.Encode(descriptor); err != nil {
					pw.CloseWithError(err)
					return
				}
				frames++
			}
		}
	}()

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(itemPath),
		Body:        pr,
		ContentType: aws.String(manifestContentType),
	})
	if err != nil {
		pr.CloseWithError(err)
		<-done
		s.logger.ErrorWithFields(err, "Failed to upload manifest to S3", map[string]interface{}{
			"bucket": s.s3Config.BucketName,
			"key":    itemPath,
		})
		return nil, err
	}
	<-done

	s.logger.DebugWithFields("Successfully uploaded manifest to S3", map[string]interface{}{
		"key":    itemPath,
		"frames": frames,
	})

	return &outbound.PublishManifestResponse{
		ManifestKey: itemPath,
		StoreRegion: s.s3Config.Region,
		Frames:      frames,
	}, nil
}

func (s *s3ManifestPublisher) getS3ItemPath(req outbound.PublishManifestRequest) string {
	key := fmt.Sprintf("user/%s/project/%s/%s/manifest.jsonl", req.UserID, req.ProjectID, req.ExportID)
	if s.s3Config.ManifestPrefix == "" {
		return key
	}
	return s.s3Config.ManifestPrefix + "/" + key
}
