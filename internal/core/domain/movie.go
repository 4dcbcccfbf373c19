package domain

// Platform names used by the catalog.
const (
	PlatformNetflix = "Netflix"
	PlatformMarvel  = "Marvel"
	PlatformDisney  = "Disney+"
)

// Movie is a catalog entry.
type Movie struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Poster   string `json:"poster"`
	Platform string `json:"platform"`
}

// DefaultCatalog returns a fresh copy of the demo titles.
func DefaultCatalog() []Movie {
	return []Movie{
		{ID: "1", Title: "The Night Agent", Poster: "https://images.unsplash.com/photo-1536440136628-849c177e76a1?w=400", Platform: PlatformNetflix},
		{ID: "2", Title: "Stranger Things", Poster: "https://images.unsplash.com/photo-1626814026160-2237a95fc5a0?w=400", Platform: PlatformNetflix},
		{ID: "3", Title: "The Crown", Poster: "https://images.unsplash.com/photo-1485846234645-a62644f84728?w=400", Platform: PlatformNetflix},
		{ID: "4", Title: "Squid Game", Poster: "https://images.unsplash.com/photo-1534447677768-be436bb09401?w=400", Platform: PlatformNetflix},
		{ID: "5", Title: "Wednesday", Poster: "https://images.unsplash.com/photo-1509281373149-e957c6296406?w=400", Platform: PlatformNetflix},
		{ID: "6", Title: "Avengers: Endgame", Poster: "https://images.unsplash.com/photo-1635805737707-575885ab0820?w=400", Platform: PlatformMarvel},
		{ID: "7", Title: "Spider-Man: No Way Home", Poster: "https://images.unsplash.com/photo-1608889825103-eb5ed706fc64?w=400", Platform: PlatformMarvel},
		{ID: "8", Title: "Black Panther", Poster: "https://images.unsplash.com/photo-1559583109-3e7968136c99?w=400", Platform: PlatformMarvel},
		{ID: "9", Title: "Iron Man", Poster: "https://images.unsplash.com/photo-1560169897-fc0cdbdfa4d5?w=400", Platform: PlatformMarvel},
		{ID: "10", Title: "Thor: Ragnarok", Poster: "https://images.unsplash.com/photo-1509347528160-9a9e33742cdb?w=400", Platform: PlatformMarvel},
		{ID: "11", Title: "Encanto", Poster: "https://images.unsplash.com/photo-1534809027769-b00d750a6bac?w=400", Platform: PlatformDisney},
		{ID: "12", Title: "Moana", Poster: "https://images.unsplash.com/photo-1516589091380-5d8e87df6999?w=400", Platform: PlatformDisney},
		{ID: "13", Title: "Coco", Poster: "https://images.unsplash.com/photo-1518834107812-67b0b7c58434?w=400", Platform: PlatformDisney},
		{ID: "14", Title: "Frozen", Poster: "https://images.unsplash.com/photo-1492684223066-81342ee5ff30?w=400", Platform: PlatformDisney},
		{ID: "15", Title: "The Lion King", Poster: "https://images.unsplash.com/photo-1534188753412-3e26d0d618d6?w=400", Platform: PlatformDisney},
	}
}
