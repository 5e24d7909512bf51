package http

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Location  string `json:"location" validate:"required"`
	LineItems string `json:"line_items"`
}

// SubmitBidRequest is the body of POST /api/v1/orders/:id/bids.
type SubmitBidRequest struct {
	Value string `json:"value" validate:"required"`
}

// ReviewRequest is the body of the customer-service and accounting review
// endpoints. A rejection must carry a reason; the note is optional.
type ReviewRequest struct {
	Approved      bool   `json:"approved"`
	Reason        string `json:"reason" validate:"required_if=Approved false"`
	Note          string `json:"note"`
	AttachmentURL string `json:"attachment_url" validate:"omitempty,url"`
}

// RouteBackRequest is the body of POST /api/v1/orders/:id/route.
type RouteBackRequest struct {
	Route string `json:"route" validate:"required,oneof=RouteTransfer RouteDelete RouteReopen"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreatedResponse carries the identity of a newly created resource.
type CreatedResponse struct {
	ID int64 `json:"id"`
}
