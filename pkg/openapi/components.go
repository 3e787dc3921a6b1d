package openapi

func errorResponse(description string) *Response {
	return &Response{
		Description: description,
		Content: map[string]*MediaType{
			"application/json": {Schema: SchemaRef("ErrorEnvelope")},
		},
	}
}

// NewComponents creates Components with the response envelopes, the page
// envelope, the shared error responses, and the session security schemes.
func NewComponents() *Components {
	return &Components{
		Schemas: map[string]*Schema{
			"Envelope": {
				Type: "object",
				Properties: map[string]*Schema{
					"statusCode": {Type: "integer", Example: 200},
					"data":       {Description: "Operation result"},
					"message":    {Type: "string"},
					"success":    {Type: "boolean", Example: true},
				},
				Required: []string{"statusCode", "data", "message", "success"},
			},
			"ErrorEnvelope": {
				Type: "object",
				Properties: map[string]*Schema{
					"statusCode": {Type: "integer", Example: 400},
					"message":    {Type: "string"},
					"success":    {Type: "boolean", Example: false},
					"errors":     {Type: "array", Items: &Schema{Type: "string"}},
				},
				Required: []string{"statusCode", "message", "success", "errors"},
			},
			"Page": {
				Type: "object",
				Properties: map[string]*Schema{
					"docs":       {Type: "array", Items: &Schema{Type: "object"}},
					"page":       {Type: "integer", Example: 1},
					"limit":      {Type: "integer", Example: 10},
					"totalCount": {Type: "integer", Example: 42},
					"totalPages": {Type: "integer", Example: 5},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":   errorResponse("Invalid request"),
			"Unauthorized": errorResponse("Missing, invalid, or expired credentials"),
			"Forbidden":    errorResponse("Caller does not own the resource"),
			"NotFound":     errorResponse("Resource not found"),
			"Conflict":     errorResponse("Duplicate username or email"),
			"Internal":     errorResponse("Unexpected server error"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
			"cookie": {Type: "apiKey", In: "cookie", Name: "accessToken"},
		},
	}
}

// PageParams returns the query parameters accepted by every paginated listing.
func PageParams() []*Parameter {
	return []*Parameter{
		QueryParam("page", "integer", "Page number (1-based). Values below 1 read as 1.", false),
		QueryParam("limit", "integer", "Results per page. Values below 1 use the default; values above the maximum are clamped.", false),
		QueryParam("query", "string", "Case-insensitive substring filter", false),
		QueryParam("sortBy", "string", "Field to sort by", false),
		QueryParam("sortType", "string", "asc or desc (default desc)", false),
		QueryParam("sort", "string", "Comma-separated sort fields. Prefix with - for descending.", false),
	}
}
