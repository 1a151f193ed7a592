package application

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sngm3741/hairline-directory/api/internal/directory/domain"
	apperrors "github.com/sngm3741/hairline-directory/api/pkg/errors"
)

// UploadFile stores locally encoded image data and returns its reference.
func (s *Service) UploadFile(ctx context.Context, data string) (_ string, err error) {
	defer s.observe(OpUploadFile, time.Now(), &err)
	if !domain.IsLocalImageData(data) {
		return "", apperrors.NewValidationError("upload expects a data URL")
	}
	if err = s.wait(ctx, s.latency.Upload); err != nil {
		return "", err
	}
	return s.upload(ctx, data)
}

// uploadLocal passes hosted references through untouched.
func (s *Service) uploadLocal(ctx context.Context, value string) (string, error) {
	if !domain.IsLocalImageData(value) {
		return value, nil
	}
	if err := s.wait(ctx, s.latency.Upload); err != nil {
		return "", err
	}
	return s.upload(ctx, value)
}

// uploadConcurrency caps parallel uploads within one batch.
const uploadConcurrency = 4

// uploadBatch uploads every locally encoded value concurrently and returns
// references in input order. The upload latency is paid once per batch.
func (s *Service) uploadBatch(ctx context.Context, values []string) ([]string, error) {
	out := make([]string, len(values))
	copy(out, values)

	pending := 0
	for _, v := range values {
		if domain.IsLocalImageData(v) {
			pending++
		}
	}
	if pending == 0 {
		return out, nil
	}
	if err := s.wait(ctx, s.latency.Upload); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uploadConcurrency)
	for i, v := range values {
		if !domain.IsLocalImageData(v) {
			continue
		}
		g.Go(func() error {
			ref, err := s.upload(gctx, v)
			if err != nil {
				return err
			}
			out[i] = ref
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) upload(ctx context.Context, data string) (string, error) {
	ref, err := s.media.Upload(ctx, data)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}
	return ref, nil
}
