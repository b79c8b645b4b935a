package api

// ListName is one entry of the lists/names.json catalog.
type ListName struct {
	ListName            string `json:"list_name"`
	DisplayName         string `json:"display_name"`
	ListNameEncoded     string `json:"list_name_encoded"`
	OldestPublishedDate string `json:"oldest_published_date"`
	NewestPublishedDate string `json:"newest_published_date"`
	Updated             string `json:"updated"`
}

// BuyLink is a retailer link attached to a bestseller.
type BuyLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListBook is a book as it appears in a dated bestseller list.
type ListBook struct {
	Rank          *int      `json:"rank"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	BookImage     string    `json:"book_image"`
	BuyLinks      []BuyLink `json:"buy_links"`
	WeeksOnList   int       `json:"weeks_on_list"`
	PrimaryISBN13 string    `json:"primary_isbn13"`
}

// BestSellerList is the results object of a dated list response.
type BestSellerList struct {
	ListName      string     `json:"list_name"`
	PublishedDate string     `json:"published_date"`
	Books         []ListBook `json:"books"`
}

type listNamesResponse struct {
	Status  string     `json:"status"`
	Results []ListName `json:"results"`
}

type bestSellersResponse struct {
	Status  string          `json:"status"`
	Results *BestSellerList `json:"results"`
}
