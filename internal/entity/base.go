package entity

// Meta carries pagination information for list responses.
type Meta struct {
	Total    int64 `json:"total"`
	Page     int64 `json:"page"`
	PageSize int64 `json:"page_size"`
}

// BaseParams are the common query parameters for paginated listings.
type BaseParams struct {
	Page     int64 `json:"page" form:"page" query:"page"`
	PageSize int64 `json:"page_size" form:"page_size" query:"page_size"`
}

// Response is the generic success envelope.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
