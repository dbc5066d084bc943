package request

// ByIDRequest is a common struct for endpoints that take a numeric ID path parameter.
type ByIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}
