package openlibrary

// bookData is the wire shape of one record from the Open Library books
// endpoint (jscmd=data). The response maps bibkeys like "ISBN:..." to these.
type bookData struct {
	Title         string      `json:"title"`
	PublishDate   string      `json:"publish_date"`
	NumberOfPages int         `json:"number_of_pages"`
	Authors       []namedLink `json:"authors"`
	Publishers    []namedLink `json:"publishers"`
	Cover         coverLinks  `json:"cover"`
	Identifiers   identifiers `json:"identifiers"`
}

type namedLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type coverLinks struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

type identifiers struct {
	ISBN10 []string `json:"isbn_10"`
	ISBN13 []string `json:"isbn_13"`
}

// searchResponse is the wire shape of the Open Library search endpoint.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

type searchDoc struct {
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	FirstPublishYear    int      `json:"first_publish_year"`
	ISBN                []string `json:"isbn"`
	Publisher           []string `json:"publisher"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	CoverID             int      `json:"cover_i"`
}
