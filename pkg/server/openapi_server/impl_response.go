package openapi_server

// ImplResponse defines an implementation response with an error code and the associated body
type ImplResponse struct {
	Code int
	Body interface{}
}

// Response returns an ImplResponse struct filled
func Response(code int, body interface{}) ImplResponse {
	return ImplResponse{
		Code: code,
		Body: body,
	}
}
