// Copyright 2026 Tribes Music Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

func TestAPI_Registration(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		setupMocks func(*MockServiceInterface)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"id": "identity-1", "traits": {"email": "artist@example.com"}}`,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "identity-1", "artist@example.com").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid body",
			body:       `not json`,
			setupMocks: func(*MockServiceInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			body: `{"id": "identity-1", "traits": {"email": "artist@example.com"}}`,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleRegistration(gomock.Any(), "identity-1", "artist@example.com").Return(errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockServiceInterface(ctrl)
			api := NewAPI(mockSvc)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			tc.setupMocks(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/registration", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}

func TestAPI_IdentityChange(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		setupMocks func(*MockServiceInterface)
		wantStatus int
	}{
		{
			name: "success",
			body: `{"id": "identity-1"}`,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleIdentityChange(gomock.Any(), "identity-1").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid body",
			body:       `{`,
			setupMocks: func(*MockServiceInterface) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "service error",
			body: `{"id": "identity-1"}`,
			setupMocks: func(mockSvc *MockServiceInterface) {
				mockSvc.EXPECT().HandleIdentityChange(gomock.Any(), "identity-1").Return(errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockServiceInterface(ctrl)
			api := NewAPI(mockSvc)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			tc.setupMocks(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/identity", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Errorf("expected status %d, got %d", tc.wantStatus, rec.Code)
			}
		})
	}
}
