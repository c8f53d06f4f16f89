package server

import "errors"

var (
	ErrPlaylistNotFound = errors.New("playlist not found")
	ErrTrackNotFound    = errors.New("track not found")
	ErrUploadTooLarge   = errors.New("upload too large")
)
