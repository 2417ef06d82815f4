// Copyright (c) 2026 UniPortal. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package mocks holds gomock doubles for the repository contracts.
//
// Regenerate with `go generate ./internal/mocks`.
package mocks

//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=principal_repository_mock.go github.com/taibuivan/uniportal/internal/users/auth PrincipalRepository
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/taibuivan/uniportal/internal/users/session Store
