package common

type SuccessResponse struct {
	Data interface{} `json:"data"`
}

func NewSuccessResponse(data interface{}) *SuccessResponse {
	return &SuccessResponse{
		Data: data,
	}
}

type ErrorResponse struct {
	Message string `json:"message"`
	// Code is a stable machine-readable reason, e.g. "not_found".
	Code string `json:"code,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

func NewCodedErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Message: message, Code: code}
}

type Pagination struct {
	Total  int64 `json:"total"`
	Limit  int   `json:"limit,omitempty"`
	Offset int   `json:"offset,omitempty"`
}

type SearchResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

func NewSearchResponse(data interface{}, total int64) *SearchResponse {
	return &SearchResponse{
		Data: data,
		Pagination: Pagination{
			Total: total,
		},
	}
}

func NewPagedResponse(data interface{}, total int64, limit, offset int) *SearchResponse {
	return &SearchResponse{
		Data:       data,
		Pagination: Pagination{Total: total, Limit: limit, Offset: offset},
	}
}
