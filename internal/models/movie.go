package models

// Movie is a catalog entry as returned by the movies endpoints.
type Movie struct {
	MovieID       int        `json:"MovieID"`
	Title         string     `json:"Title"`
	ReleaseYear   *int       `json:"ReleaseYear"`
	Duration      *int       `json:"Duration"`
	Genre         *string    `json:"Genre"`
	Language      *string    `json:"Language"`
	Country       *string    `json:"Country"`
	Synopsis      *string    `json:"Synopsis"`
	AverageRating float64    `json:"AverageRating"`
	RatingCount   int        `json:"RatingCount"`
	CoverURL      *string    `json:"CoverURL"`
	Actors        []Actor    `json:"actors,omitempty"`
	Directors     []Director `json:"directors,omitempty"`
}

// Cover returns the server-relative cover path, or "" when unset.
func (m *Movie) Cover() string {
	if m == nil || m.CoverURL == nil {
		return ""
	}
	return *m.CoverURL
}

// MovieInput is the editable part of a movie, used for create and update.
type MovieInput struct {
	Title       string  `json:"Title" validate:"required,max=255"`
	ReleaseYear *int    `json:"ReleaseYear" validate:"omitempty,min=1870,max=2100"`
	Genre       *string `json:"Genre"`
	Synopsis    *string `json:"Synopsis,omitempty"`
	Country     *string `json:"Country,omitempty"`
	Language    *string `json:"Language,omitempty"`
	Duration    *int    `json:"Duration,omitempty" validate:"omitempty,min=0"`
	ActorIDs    []int   `json:"actor_ids,omitempty"`
	DirectorIDs []int   `json:"director_ids,omitempty"`
}

// Sort orders accepted by the movie listing.
const (
	SortRatingDesc      = "rating_desc"
	SortReleaseYearDesc = "release_year_desc"
)

// MovieQuery holds the listing filters. Zero values are omitted from the query string.
type MovieQuery struct {
	Search    string
	Genre     string
	SortBy    string
	Year      *int
	MinRating *float64
}
