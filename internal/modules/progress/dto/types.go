package dto

type ChapterKey struct {
	BookID string
	Title  string
}

type AggregateInput struct {
	BookID string
	Titles []string
}
