// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
)

// SecurityLogger writes structured audit events on a dedicated "security"
// channel so they can be routed separately from application logs.
type SecurityLogger struct {
	l *zap.Logger
}

func (s *SecurityLogger) event(event string, fields ...zap.Field) {
	fields = append([]zap.Field{zap.String("event", event), zap.String("channel", "security")}, fields...)
	s.l.Info("security_event", fields...)
}

func (s *SecurityLogger) SystemStartup() {
	s.event("system_startup")
}

func (s *SecurityLogger) SystemShutdown() {
	s.event("system_shutdown")
}

func (s *SecurityLogger) AuthSuccess(subject string) {
	s.event("auth_success", zap.String("subject", subject))
}

func (s *SecurityLogger) AuthFailure(subject, reason string) {
	s.event("auth_failure", zap.String("subject", subject), zap.String("reason", reason))
}

func (s *SecurityLogger) AuthzFailure(subject, action string) {
	s.event("authz_failure", zap.String("subject", subject), zap.String("action", action))
}
