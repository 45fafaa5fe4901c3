package dto

type LoadInput struct {
	Location string
	Policy   string
}

type ChapterOutput struct {
	Title string
	Lines []string
}

type BookOutput struct {
	ID            string
	Location      string
	Title         string
	Description   string
	Author        string
	VideoID       string
	EmbedURL      string
	Chapters      []ChapterOutput
	TotalChapters int
	AverageLines  int
}

type WatchInput struct {
	Location string
}
