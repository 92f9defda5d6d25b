// Package mocks provides gomock implementations of the console's ports.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our port interfaces.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	slot := mocks.NewMockTokenSlot(ctrl)
//	slot.EXPECT().Load(gomock.Any()).Return("tok", nil)
package mocks

// Generate mock for TokenSlot interface from internal/ports package.
// This creates MockTokenSlot with methods for all TokenSlot interface methods:
// Load, Save, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=token_slot_mock.go github.com/target/mmk-rag-console/internal/ports TokenSlot
