// Package mocks provides gomock-generated mocks of the console's ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	api := mocks.NewMockSessionAPI(ctrl)
//	api.EXPECT().DeleteUser(gomock.Any(), "u1").Return(nil)
//
// Hand-written in-memory stores live in internal/mocks/memory.
package mocks

// Generate mocks for the remote API ports.
// This creates MockAPIClient (Login, Register, ForSession) and MockSessionAPI
// (CurrentUser plus the user and category endpoints).
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=api_mock.go github.com/Rushil0704/auth-client-1/internal/ports APIClient,SessionAPI

// Generate mock for ObjectStore: Put, PresignGet.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=object_store_mock.go github.com/Rushil0704/auth-client-1/internal/ports ObjectStore
