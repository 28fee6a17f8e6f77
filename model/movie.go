package model

type Movie struct {
	Id          string   `json:"id"`
	Title       string   `json:"title"`
	Genre       []string `json:"genre"`
	Rating      float64  `json:"rating"`
	Duration    string   `json:"duration"`
	PosterUrl   string   `json:"posterUrl"`
	BackdropUrl string   `json:"backdropUrl"`
	Description string   `json:"description"`
	IsPremiere  bool     `json:"isPremiere"`
	Tags        []string `json:"tags"`
}
