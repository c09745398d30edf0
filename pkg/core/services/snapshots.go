package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wadjakorntonsri/landing-console/pkg/core/domain"
	"github.com/wadjakorntonsri/landing-console/pkg/observe"
)

const DefaultSnapshotDescription = "Landing page configuration"

// UploadSnapshot publishes the current local configuration under a new share code
func (s *EditorService) UploadSnapshot(ctx context.Context, description string) (string, error) {
	if s.remote == nil {
		return "", domain.ErrCloudUnavailable
	}
	if strings.TrimSpace(description) == "" {
		description = DefaultSnapshotDescription
	}

	code, err := s.remote.UploadSnapshot(ctx, s.config.LocalConfig(ctx), description)
	if err != nil {
		observe.Snapshots.WithLabelValues("upload", "error").Inc()
		s.logger.Error("snapshot upload failed", "error", err)
		return "", fmt.Errorf("uploading snapshot: %w", err)
	}
	observe.Snapshots.WithLabelValues("upload", "ok").Inc()
	s.logger.Info("snapshot uploaded", "share_code", code)
	return code, nil
}

// DownloadSnapshot fetches a snapshot by code and makes it the live configuration
func (s *EditorService) DownloadSnapshot(ctx context.Context, code string) (*domain.Snapshot, error) {
	if s.remote == nil {
		return nil, domain.ErrCloudUnavailable
	}
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: share code", domain.ErrMissingField)
	}

	snap, err := s.remote.DownloadSnapshot(ctx, code)
	if err != nil {
		observe.Snapshots.WithLabelValues("download", "error").Inc()
		return nil, fmt.Errorf("downloading snapshot: %w", err)
	}
	observe.Snapshots.WithLabelValues("download", "ok").Inc()

	if _, err := s.Replace(ctx, snap.Configuration); err != nil {
		return nil, err
	}
	s.logger.Info("snapshot applied", "share_code", snap.ShareCode, "access_count", snap.AccessCount)
	return snap, nil
}

// ValidateShareCode reports whether code exists without counting an access
func (s *EditorService) ValidateShareCode(ctx context.Context, code string) bool {
	if s.remote == nil || strings.TrimSpace(code) == "" {
		return false
	}
	_, err := s.remote.LookupSnapshot(ctx, code)
	return err == nil
}
