// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package idp

import (
	"context"
	"fmt"

	ory "github.com/ory/client-go"

	"github.com/tribes-music/session-service/internal/logging"
	"github.com/tribes-music/session-service/internal/monitoring"
	"github.com/tribes-music/session-service/internal/tracing"
)

type ClientInterface interface {
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
	GetIdentityEmail(ctx context.Context, id string) (string, error)
}

// Client talks to the Kratos admin API of the identity provider.
type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(adminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: adminURL}}
	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (c *Client) GetIdentity(ctx context.Context, id string) (*ory.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "idp.GetIdentity")
	defer span.End()

	identity, _, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}

// GetIdentityEmail extracts the email trait of an identity, empty if absent.
func (c *Client) GetIdentityEmail(ctx context.Context, id string) (string, error) {
	identity, err := c.GetIdentity(ctx, id)
	if err != nil {
		return "", err
	}

	if traits, ok := identity.Traits.(map[string]interface{}); ok {
		if e, ok := traits["email"].(string); ok {
			return e, nil
		}
	}

	return "", nil
}
