package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/Raju11sui/Outreacher-ai/internal/config"
	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

const (
	defaultPrefix = "exports"
	defaultRegion = "us-east-1"
)

type Config struct {
	Endpoint      string
	Region        string
	AccessKey     string
	SecretKey     string
	Bucket        string
	PublicBaseURL string
	UsePathStyle  bool
	Prefix        string
}

func ConfigFrom(cfg config.Config) Config {
	return Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		Bucket:        cfg.S3Bucket,
		PublicBaseURL: cfg.S3PublicBaseURL,
		UsePathStyle:  cfg.S3UsePathStyle,
		Prefix:        cfg.S3Prefix,
	}
}

// Exporter writes campaign snapshots to an S3-compatible bucket.
type Exporter struct {
	cfg    Config
	client *s3.Client
	now    func() time.Time
}

func NewExporter(cfg Config) (*Exporter, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("s3 credentials are required")
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	if cfg.Prefix == "" {
		cfg.Prefix = defaultPrefix
	}

	options := s3.Options{
		Region:       cfg.Region,
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		UsePathStyle: cfg.UsePathStyle,
		// S3-compatible stores often reject the default trailing checksums.
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
	}
	if cfg.Endpoint != "" {
		options.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return &Exporter{
		cfg:    cfg,
		client: s3.New(options),
		now:    time.Now,
	}, nil
}

// Document is the exported JSON body.
type Document struct {
	Campaign   models.Campaign  `json:"campaign"`
	Messages   []models.Message `json:"messages"`
	ExportedAt time.Time        `json:"exportedAt"`
}

func (e *Exporter) ExportCampaign(ctx context.Context, campaign models.Campaign, messages []models.Message) (string, error) {
	if messages == nil {
		messages = []models.Message{}
	}
	now := e.now().UTC()
	body, err := json.MarshalIndent(Document{Campaign: campaign, Messages: messages, ExportedAt: now}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	return e.upload(ctx, e.campaignKey(campaign.ID, now, "application/json"), body, "application/json")
}

func (e *Exporter) upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(e.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}
	if e.cfg.PublicBaseURL != "" {
		input.ACL = types.ObjectCannedACLPublicRead
	}
	if _, err := e.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("upload to s3: %w", err)
	}
	return e.objectURL(key), nil
}

func (e *Exporter) objectURL(key string) string {
	if e.cfg.PublicBaseURL == "" {
		return "s3://" + e.cfg.Bucket + "/" + key
	}
	return strings.TrimRight(e.cfg.PublicBaseURL, "/") + "/" + key
}

func (e *Exporter) campaignKey(campaignID int64, now time.Time, contentType string) string {
	prefix := strings.Trim(e.cfg.Prefix, "/")
	return path.Join(prefix, "campaigns", fmt.Sprint(campaignID),
		fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day()),
		uuid.NewString()+extensionFromContentType(contentType))
}

func extensionFromContentType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "application/json":
		return ".json"
	default:
		return ".bin"
	}
}
