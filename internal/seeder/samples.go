package seeder

// SamplePNG is a 1x1 transparent PNG.
var SamplePNG = []byte{
	0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0x00, 0x00, 0x0d,
	0x49, 0x48, 0x44, 0x52, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4, 0x89, 0x00, 0x00, 0x00,
	0x0d, 0x49, 0x44, 0x41, 0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
	0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00, 0x00, 0x00, 0x00, 0x49,
	0x45, 0x4e, 0x44, 0xae, 0x42, 0x60, 0x82,
}

// SampleMP4 is an ftyp box; enough for content sniffing.
var SampleMP4 = []byte{
	0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2',
	0x00, 0x00, 0x00, 0x00, 'm', 'p', '4', '2', 'i', 's', 'o', 'm',
}

var categoryNames = []string{
	"Drama", "Comedy", "Documentary", "Animation", "Horror",
	"Romance", "Science Fiction", "Thriller", "Family", "Music",
}

var genreNames = []string{
	"Action", "Adventure", "Crime", "Fantasy", "Mystery",
	"War", "Western", "Biography", "History", "Sport",
	"Musical", "Noir", "Satire", "Superhero", "Teen",
}

var firstNames = []string{"Ana", "Bruno", "Carla", "Diego", "Elisa", "Felipe", "Gabi", "Hugo"}

var lastNames = []string{"Silva", "Souza", "Costa", "Lima", "Rocha", "Alves", "Pereira", "Gomes"}

var titleWords = []string{"Horizon", "Echoes", "Midnight", "Harbor", "Signal", "Ember", "Atlas", "Drift"}
