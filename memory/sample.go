package memory

import (
	"time"

	"moviesearch/movie"
)

func dob(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// SampleCatalog returns the demo catalog: 8 movies, 18 actors and 2-4
// actors per movie.
func SampleCatalog() Catalog {
	return Catalog{
		Actors: []movie.Actor{
			{ID: 1, Name: "Tom Hanks", DateOfBirth: dob(1956, time.July, 9)},
			{ID: 2, Name: "Leonardo DiCaprio", DateOfBirth: dob(1974, time.November, 11)},
			{ID: 3, Name: "Meryl Streep", DateOfBirth: dob(1949, time.June, 22)},
			{ID: 4, Name: "Brad Pitt", DateOfBirth: dob(1963, time.December, 18)},
			{ID: 5, Name: "Emma Stone", DateOfBirth: dob(1988, time.November, 6)},
			{ID: 6, Name: "Robert Downey Jr.", DateOfBirth: dob(1965, time.April, 4)},
			{ID: 7, Name: "Robin Wright", DateOfBirth: dob(1966, time.April, 8)},
			{ID: 8, Name: "Gary Sinise", DateOfBirth: dob(1955, time.March, 17)},
			{ID: 9, Name: "Tom Hardy", DateOfBirth: dob(1977, time.September, 15)},
			{ID: 10, Name: "Anne Hathaway", DateOfBirth: dob(1982, time.November, 12)},
			{ID: 11, Name: "Ryan Gosling", DateOfBirth: dob(1980, time.November, 12)},
			{ID: 12, Name: "Edward Norton", DateOfBirth: dob(1969, time.August, 18)},
			{ID: 13, Name: "Gwyneth Paltrow", DateOfBirth: dob(1972, time.September, 27)},
			{ID: 14, Name: "Jeff Bridges", DateOfBirth: dob(1949, time.December, 4)},
			{ID: 15, Name: "Marion Cotillard", DateOfBirth: dob(1975, time.September, 30)},
			{ID: 16, Name: "Helen Hunt", DateOfBirth: dob(1963, time.June, 15)},
			{ID: 17, Name: "Ellen Page", DateOfBirth: dob(1987, time.February, 21)},
			{ID: 18, Name: "Emily Blunt", DateOfBirth: dob(1983, time.February, 23)},
		},
		Movies: []movie.Movie{
			{ID: 1, Title: "Forrest Gump", ReleaseYear: 1994, Genre: "Drama",
				Description: "The presidencies of Kennedy and Johnson, the events of Vietnam, Watergate, and other historical events unfold from the perspective of an Alabama man with an IQ of 75."},
			{ID: 2, Title: "The Revenant", ReleaseYear: 2015, Genre: "Adventure",
				Description: "A frontiersman on a fur trading expedition in the 1820s fights for survival after being mauled by a bear."},
			{ID: 3, Title: "The Devil Wears Prada", ReleaseYear: 2006, Genre: "Comedy",
				Description: "A smart but sensible new graduate lands a job as an assistant to Miranda Priestly, the demanding editor-in-chief of a high-fashion magazine."},
			{ID: 4, Title: "Fight Club", ReleaseYear: 1999, Genre: "Drama",
				Description: "An insomniac office worker and a devil-may-care soapmaker form an underground fight club that evolves into something much bigger."},
			{ID: 5, Title: "La La Land", ReleaseYear: 2016, Genre: "Musical",
				Description: "While navigating their careers in Los Angeles, a pianist and an actress fall in love while attempting to reconcile their aspirations for the future."},
			{ID: 6, Title: "Iron Man", ReleaseYear: 2008, Genre: "Action",
				Description: "After being held captive in an Afghan cave, billionaire engineer Tony Stark creates a unique weaponized suit of armor to fight evil."},
			{ID: 7, Title: "Cast Away", ReleaseYear: 2000, Genre: "Drama",
				Description: "A FedEx executive undergoes a physical and emotional transformation after crash landing on a deserted island."},
			{ID: 8, Title: "Inception", ReleaseYear: 2010, Genre: "Sci-Fi",
				Description: "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O."},
		},
		Links: []movie.MovieActorLink{
			{MovieID: 1, ActorID: 1}, {MovieID: 1, ActorID: 7}, {MovieID: 1, ActorID: 8},
			{MovieID: 2, ActorID: 2}, {MovieID: 2, ActorID: 9}, {MovieID: 2, ActorID: 4},
			{MovieID: 3, ActorID: 3}, {MovieID: 3, ActorID: 10}, {MovieID: 3, ActorID: 18}, {MovieID: 3, ActorID: 13},
			{MovieID: 4, ActorID: 4}, {MovieID: 4, ActorID: 12}, {MovieID: 4, ActorID: 13},
			{MovieID: 5, ActorID: 5}, {MovieID: 5, ActorID: 11},
			{MovieID: 6, ActorID: 6}, {MovieID: 6, ActorID: 13}, {MovieID: 6, ActorID: 14}, {MovieID: 6, ActorID: 18},
			{MovieID: 7, ActorID: 1}, {MovieID: 7, ActorID: 16},
			{MovieID: 8, ActorID: 2}, {MovieID: 8, ActorID: 9}, {MovieID: 8, ActorID: 15}, {MovieID: 8, ActorID: 17},
		},
	}
}
