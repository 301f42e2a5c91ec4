// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/storage"
	"github.com/tribes-music/session-service/internal/tracing"
	"github.com/tribes-music/session-service/internal/types"
)

type Service struct {
	storage StorageInterface
	idp     IdpClientInterface
	cache   CacheInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	storage StorageInterface,
	idp IdpClientInterface,
	cache CacheInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage: storage,
		idp:     idp,
		cache:   cache,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleRegistration provisions a profile for a freshly registered identity.
// Redelivery of the same event is a no-op.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email string) error {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	s.logger.Debugf("Handling registration for identity %s", identityID)

	if identityID == "" {
		return fmt.Errorf("identity ID is empty")
	}

	if email == "" {
		e, err := s.idp.GetIdentityEmail(ctx, identityID)
		if err != nil {
			return fmt.Errorf("failed to resolve email for identity %s: %w", identityID, err)
		}
		email = e
	}

	profile := &types.Profile{
		IdentityID:   identityID,
		Email:        email,
		PlatformRole: types.PlatformRoleClient,
		Status:       types.ProfileStatusActive,
	}

	if _, err := s.storage.CreateProfile(ctx, profile); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Debugf("Profile for identity %s already exists", identityID)
			return nil
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	s.cache.Invalidate(identityID)

	s.logger.Infof("Provisioned profile for identity %s", identityID)
	return nil
}

// HandleIdentityChange drops any resolved session for the identity so the
// next request re-resolves against fresh identity data.
func (s *Service) HandleIdentityChange(ctx context.Context, identityID string) error {
	_, span := s.tracer.Start(ctx, "webhooks.Service.HandleIdentityChange")
	defer span.End()

	if identityID == "" {
		return fmt.Errorf("identity ID is empty")
	}

	s.cache.Invalidate(identityID)

	s.logger.Debugf("Invalidated session snapshot for identity %s", identityID)
	return nil
}
