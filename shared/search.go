package shared

import "github.com/google/uuid"

type WebSearchRequest struct {
	UserId uuid.UUID `json:"userId"`
	Query  string    `json:"query"`
}

type WebSearchResponse struct {
	Results []*WebSearchResult `json:"results"`
}

type WebSearchResult struct {
	Title   string `json:"title"`
	Url     string `json:"url"`
	Snippet string `json:"snippet"`
}
