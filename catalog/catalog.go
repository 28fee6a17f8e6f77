// Package catalog holds the static movie catalog and showtime schedule.
// There is no backend behind this app; the catalog is the seed data the
// rest of the flow browses.
package catalog

import (
	"fmt"
	"time"

	"cinesphere/model"
)

var movies = []model.Movie{
	{
		Id:          "1",
		Title:       "Interstellar Horizons",
		Genre:       []string{"Sci-Fi", "Adventure"},
		Rating:      4.8,
		Duration:    "2h 45m",
		PosterUrl:   "https://picsum.photos/seed/interstellar/400/600",
		BackdropUrl: "https://picsum.photos/seed/interstellar-bg/1200/600",
		Description: "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		IsPremiere:  true,
		Tags:        []string{"IMAX", "Dolby Atmos"},
	},
	{
		Id:          "2",
		Title:       "The Last Duelist",
		Genre:       []string{"Action", "History"},
		Rating:      4.5,
		Duration:    "2h 12m",
		PosterUrl:   "https://picsum.photos/seed/duel/400/600",
		BackdropUrl: "https://picsum.photos/seed/duel-bg/1200/600",
		Description: "Two knights settle their differences in a battle that will determine the fate of the kingdom.",
		IsPremiere:  false,
		Tags:        []string{"Standard"},
	},
	{
		Id:          "3",
		Title:       "Neon Nights",
		Genre:       []string{"Thriller", "Neo-Noir"},
		Rating:      4.2,
		Duration:    "1h 55m",
		PosterUrl:   "https://picsum.photos/seed/neon/400/600",
		BackdropUrl: "https://picsum.photos/seed/neon-bg/1200/600",
		Description: "In a city that never sleeps, a detective hunts a shadow from his past.",
		IsPremiere:  true,
		Tags:        []string{"4DX", "Premiere"},
	},
	{
		Id:          "4",
		Title:       "Whispers of the Forest",
		Genre:       []string{"Fantasy", "Animation"},
		Rating:      4.9,
		Duration:    "1h 40m",
		PosterUrl:   "https://picsum.photos/seed/forest/400/600",
		BackdropUrl: "https://picsum.photos/seed/forest-bg/1200/600",
		Description: "An ancient spirit awakens to protect the woods from industrial encroachment.",
		IsPremiere:  false,
		Tags:        []string{"Family", "3D"},
	},
}

var showtimes = []string{"10:30 AM", "1:45 PM", "5:00 PM", "8:30 PM"}

// Movies returns the full catalog in display order.
func Movies() []model.Movie {
	out := make([]model.Movie, len(movies))
	copy(out, movies)
	return out
}

// FindByID looks a movie up by its id.
func FindByID(id string) (model.Movie, bool) {
	for _, movie := range movies {
		if movie.Id == id {
			return movie, true
		}
	}
	return model.Movie{}, false
}

// Premieres returns the movies flagged for featured placement.
func Premieres() []model.Movie {
	var out []model.Movie
	for _, movie := range movies {
		if movie.IsPremiere {
			out = append(out, movie)
		}
	}
	return out
}

// NowShowing returns the non-premiere part of the catalog.
func NowShowing() []model.Movie {
	var out []model.Movie
	for _, movie := range movies {
		if !movie.IsPremiere {
			out = append(out, movie)
		}
	}
	return out
}

// Showtimes returns the fixed daily schedule.
func Showtimes() []string {
	out := make([]string, len(showtimes))
	copy(out, showtimes)
	return out
}

// Dates returns the selectable booking dates relative to now: today,
// tomorrow, and the day after labeled by weekday.
func Dates(now time.Time) []string {
	after := now.AddDate(0, 0, 2)
	return []string{
		"Today",
		"Tomorrow",
		fmt.Sprintf("%s %d", after.Format("Mon"), after.Day()),
	}
}
