package appstore

// lookupResponse is the envelope shared by the iTunes search and lookup
// endpoints.
type lookupResponse struct {
	ResultCount int         `json:"resultCount"`
	Results     []appResult `json:"results"`
}

type appResult struct {
	TrackID                   int64   `json:"trackId"`
	TrackName                 string  `json:"trackName"`
	SellerName                string  `json:"sellerName"`
	PrimaryGenreName          string  `json:"primaryGenreName"`
	AverageUserRating         float64 `json:"averageUserRating"`
	UserRatingCount           int64   `json:"userRatingCount"`
	CurrentVersionReleaseDate string  `json:"currentVersionReleaseDate"`
	ReleaseDate               string  `json:"releaseDate"`
	Price                     float64 `json:"price"`
	Currency                  string  `json:"currency"`
}

// reviewFeed is the customer-reviews RSS feed in its json rendering.
// Every scalar in the feed is wrapped in a {"label": ...} object.
type reviewFeed struct {
	Feed struct {
		Entry []feedEntry `json:"entry"`
	} `json:"feed"`
}

type feedEntry struct {
	Author struct {
		Name label `json:"name"`
	} `json:"author"`
	Updated label `json:"updated"`
	Rating  label `json:"im:rating"`
	Version label `json:"im:version"`
	Title   label `json:"title"`
	Content label `json:"content"`
}

type label struct {
	Label string `json:"label"`
}
