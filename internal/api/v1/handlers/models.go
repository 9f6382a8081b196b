package handlers

type ErrorResponse struct {
	Message string `json:"message"`
}

const (
	msgAddressRequired   = "address is required field."
	msgLatitudeRequired  = "latitude is required field."
	msgLongitudeRequired = "longitude is required field."
	msgDateInvalid       = "date is invalid."

	msgLanguageMissing      = "Language is missing."
	msgLanguageInvalid      = "Language is invalid."
	msgLanguageNotSupported = "Language is not supported."

	msgNotFound         = "not found"
	msgMethodNotAllowed = "method not allowed"
	msgUpstreamFailed   = "upstream service failed."
	msgUpstreamTimeout  = "upstream service timed out."
	msgInternalError    = "internal server error."
)
