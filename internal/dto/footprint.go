package dto

// FootprintCreateRequest uses pointer fields so missing values can be told
// apart from zero values. PublishedAt is an ISO-8601 timestamp string, parsed
// by the service.
type FootprintCreateRequest struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	PublishedAt *string  `json:"published_at"`
	DeviceID    *string  `json:"device_id"`
}

type FootprintPatchRequest struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	PublishedAt *string  `json:"published_at"`
	DeviceID    *string  `json:"device_id"`
}

// FootprintQuery holds the raw list-filter query parameters. Empty strings
// mean the bound is absent.
type FootprintQuery struct {
	StartDate string
	EndDate   string
}
