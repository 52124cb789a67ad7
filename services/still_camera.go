package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
)

// StillCamera adapts a single uploaded photo to the CameraSource
// contract so the HTTP capture flow reuses the same session machinery
// as an on-device camera. Its "stream" serves the uploaded frame.
type StillCamera struct {
	jpegBytes []byte
}

func NewStillCamera(jpegBytes []byte) *StillCamera {
	return &StillCamera{jpegBytes: jpegBytes}
}

func (c *StillCamera) Acquire(ctx context.Context) (VideoStream, error) {
	if len(c.jpegBytes) == 0 {
		return nil, errors.New("no frame provided")
	}
	frame, err := jpeg.Decode(bytes.NewReader(c.jpegBytes))
	if err != nil {
		return nil, err
	}
	return &stillStream{frame: frame}, nil
}

type stillStream struct {
	frame image.Image
}

func (s *stillStream) Frame() (image.Image, error) {
	return s.frame, nil
}

func (s *stillStream) Stop() {}
