package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"studio-backend/internal/models"
	"studio-backend/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"
)

// ObjectPutter is the part of the S3 client used for snapshots
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures the snapshot bucket client
type S3Options struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// NewS3Client builds an S3 client. Static keys and a custom endpoint are
// optional; without them the default AWS credential chain is used.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" && opts.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// Snapshot is the exported store content. Admin records are never included.
type Snapshot struct {
	Photos           []models.Photo          `json:"photos"`
	BookingInquiries []models.BookingInquiry `json:"bookingInquiries"`
	SystemSettings   models.SystemSettings   `json:"systemSettings"`
	Timestamp        string                  `json:"timestamp"`
}

// BackupResult describes a finished backup
type BackupResult struct {
	Snapshot *Snapshot `json:"data"`
	Location string    `json:"location,omitempty"`
}

// BackupService exports the site data
type BackupService struct {
	photoRepo    *repository.PhotoRepository
	inquiryRepo  *repository.InquiryRepository
	settingsRepo *repository.SettingsRepository
	s3Client     ObjectPutter
	bucket       string
	prefix       string
}

// NewBackupService creates a new backup service. s3Client may be nil, in
// which case snapshots are only returned to the caller.
func NewBackupService(
	photoRepo *repository.PhotoRepository,
	inquiryRepo *repository.InquiryRepository,
	settingsRepo *repository.SettingsRepository,
	s3Client ObjectPutter,
	bucket, prefix string,
) *BackupService {
	return &BackupService{
		photoRepo:    photoRepo,
		inquiryRepo:  inquiryRepo,
		settingsRepo: settingsRepo,
		s3Client:     s3Client,
		bucket:       bucket,
		prefix:       strings.Trim(prefix, "/"),
	}
}

// Create builds a snapshot, stamps lastBackup and uploads it when a bucket is
// configured.
func (s *BackupService) Create(ctx context.Context) (*BackupResult, error) {
	photos, err := s.photoRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	inquiries, err := s.inquiryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	timestamp := models.Now()
	settings, err := s.settingsRepo.Update(ctx, repository.SettingsPatch{LastBackup: &timestamp})
	if err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		Photos:           photos,
		BookingInquiries: inquiries,
		SystemSettings:   *settings,
		Timestamp:        timestamp,
	}
	result := &BackupResult{Snapshot: snapshot}

	if s.s3Client == nil || s.bucket == "" {
		return result, nil
	}

	body, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	key := path.Join(s.prefix, fmt.Sprintf("backup-%s.json", strings.NewReplacer(":", "-", ".", "-").Replace(timestamp)))
	_, err = s.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload snapshot: %w", err)
	}

	result.Location = fmt.Sprintf("s3://%s/%s", s.bucket, key)
	log.Info().Str("location", result.Location).Int("photos", len(photos)).Msg("Backup uploaded")
	return result, nil
}
