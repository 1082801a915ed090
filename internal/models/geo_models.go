package models

// NominatimPlace is one result from the Nominatim search API. Coordinates come
// back as strings and are parsed during normalization.
type NominatimPlace struct {
	PlaceID     int64   `json:"place_id"`
	DisplayName string  `json:"display_name"`
	Lat         string  `json:"lat"`
	Lon         string  `json:"lon"`
	Class       string  `json:"class"`
	Type        string  `json:"type"`
	Importance  float64 `json:"importance"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		State       string `json:"state"`
		Country     string `json:"country"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// GeocodeEntry is a resolved place plus the moment it entered the cache.
type GeocodeEntry struct {
	Query       string  `json:"query"`
	DisplayName string  `json:"display_name"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Country     string  `json:"country,omitempty"`
	CachedAt    string  `json:"cached_at,omitempty"`
}

// IPAPIResponse is the ipapi.co/json document.
type IPAPIResponse struct {
	IP          string  `json:"ip"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	CountryName string  `json:"country_name"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Error       bool    `json:"error,omitempty"`
	Reason      string  `json:"reason,omitempty"`
}

// IPFallbackResponse is the ip-api.com/json document.
type IPFallbackResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message,omitempty"`
	City       string  `json:"city"`
	RegionName string  `json:"regionName"`
	Country    string  `json:"country"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
}
