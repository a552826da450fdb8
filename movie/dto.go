package movie

const dateLayout = "2006-01-02"

type MovieDTO struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	ReleaseYear int        `json:"releaseYear"`
	Genre       string     `json:"genre"`
	Actors      []ActorDTO `json:"actors"`
}

type ActorDTO struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
}

// Project shapes movies into transfer records. actorsByMovie must hold the
// actors of every movie in the window, keyed by movie id; a movie without an
// entry gets an empty actor list. Movie order is preserved.
func Project(movies []Movie, actorsByMovie map[int][]Actor) []MovieDTO {
	out := make([]MovieDTO, len(movies))
	for i, m := range movies {
		out[i] = MovieDTO{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			ReleaseYear: m.ReleaseYear,
			Genre:       m.Genre,
			Actors:      projectActors(actorsByMovie[m.ID]),
		}
	}
	return out
}

func projectActors(actors []Actor) []ActorDTO {
	out := make([]ActorDTO, len(actors))
	for i, a := range actors {
		out[i] = ActorDTO{
			ID:          a.ID,
			Name:        a.Name,
			DateOfBirth: a.DateOfBirth.UTC().Format(dateLayout),
		}
	}
	return out
}

// MovieIDs lists the ids of movies in order.
func MovieIDs(movies []Movie) []int {
	ids := make([]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
	}
	return ids
}
