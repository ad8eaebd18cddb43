package dto

type GenerateSongRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Style  string `json:"style"`
}

type SongResponse struct {
	SongURL  string `json:"song_url"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

type GenerateVideoRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Style  string `json:"style"`
}

type VideoResponse struct {
	VideoURL string `json:"video_url"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}
