package constvars

const (
	MethodGet  = "GET"
	MethodPost = "POST"
)

const (
	MIMEApplicationJSON     = "application/json"
	MIMEApplicationPDF      = "application/pdf"
	MIMETextHTMLCharsetUTF8 = "text/html; charset=utf-8"
)

const (
	StatusOK                  = 200
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusConflict            = 409
	StatusTooManyRequests     = 429
	StatusInternalServerError = 500
	StatusGatewayTimeout      = 504
)

const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-ID"
)
