package mocks

import (
	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of storage.Client
type Client struct {
	mock.Mock
}

func (m *Client) Exists(path string) (bool, error) {
	args := m.Called(path)
	return args.Bool(0), args.Error(1)
}

func (m *Client) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) CheckWritable(path string) error {
	args := m.Called(path)
	return args.Error(0)
}

func (m *Client) WriteFile(path string, data []byte) error {
	args := m.Called(path, data)
	return args.Error(0)
}
