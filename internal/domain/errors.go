package domain

import "errors"

var (
	// ErrBotNotFound is returned when a bot identity is not found
	ErrBotNotFound = errors.New("bot not found")

	// ErrBotAlreadyExists is returned when a bot token is already registered
	ErrBotAlreadyExists = errors.New("bot already exists")

	// ErrChannelNotFound is returned when a channel is not found
	ErrChannelNotFound = errors.New("channel not found")

	// ErrArtifactNotFound is returned when an artifact is not found
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrDatabaseOperation is returned when a database operation fails
	ErrDatabaseOperation = errors.New("database operation failed")
)
