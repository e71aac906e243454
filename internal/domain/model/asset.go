package model

import "io"

// Asset references a stored file: where to fetch it and how to delete it.
type Asset struct {
	URL    string
	Handle string
}

// Upload is a single file received with a request.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}
