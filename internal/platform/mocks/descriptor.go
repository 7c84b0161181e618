// Package mocks provides testify mocks for platform interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/thoreinstein/mcplat/internal/host"
)

// MockDescriptor is a testify mock satisfying platform.Descriptor.
type MockDescriptor struct {
	mock.Mock
}

// NewMockDescriptor creates a mock and registers its expectations to be
// asserted when the test ends.
func NewMockDescriptor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDescriptor {
	m := &MockDescriptor{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Name provides a mock function.
func (m *MockDescriptor) Name() string {
	args := m.Called()
	return args.String(0)
}

// IsSupported provides a mock function.
func (m *MockDescriptor) IsSupported() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

// Version provides a mock function.
func (m *MockDescriptor) Version() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// MappingNamespaces provides a mock function.
func (m *MockDescriptor) MappingNamespaces() []string {
	args := m.Called()
	if v, ok := args.Get(0).([]string); ok {
		return v
	}
	return nil
}

// Loader provides a mock function.
func (m *MockDescriptor) Loader() host.Loader {
	args := m.Called()
	if v, ok := args.Get(0).(host.Loader); ok {
		return v
	}
	return nil
}
