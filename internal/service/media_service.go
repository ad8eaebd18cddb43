package service

import (
	"context"

	"lessoncraft-be/internal/dto"
)

// MediaGenerator produces songs and videos for a lesson. The built-in
// implementation returns canned results until a real backend is wired.
type MediaGenerator interface {
	GenerateSong(ctx context.Context, req *dto.GenerateSongRequest) (*dto.SongResponse, error)
	GenerateVideo(ctx context.Context, req *dto.GenerateVideoRequest) (*dto.VideoResponse, error)
}

type placeholderMedia struct{}

func NewMediaService() MediaGenerator {
	return placeholderMedia{}
}

func (placeholderMedia) GenerateSong(ctx context.Context, req *dto.GenerateSongRequest) (*dto.SongResponse, error) {
	return &dto.SongResponse{
		SongURL:  "https://example.com/generated-song.mp3",
		Title:    "Generated Song",
		Duration: 120,
	}, nil
}

func (placeholderMedia) GenerateVideo(ctx context.Context, req *dto.GenerateVideoRequest) (*dto.VideoResponse, error) {
	return &dto.VideoResponse{
		VideoURL: "https://example.com/generated-video.mp4",
		Title:    "Generated Video",
		Duration: 30,
	}, nil
}
