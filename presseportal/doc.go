// Package presseportal provides a client for the presseportal.de news API.
//
// presseportal is a press release service run by news aktuell. This package maps
// its REST endpoints into typed Go values: stories published by companies and
// public service offices, and company/office search results. An API key from
// https://api.presseportal.de is required.
//
// # Usage
//
//	client, err := presseportal.NewClient("your-api-key", zerolog.Nop())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	stories, err := client.GetStoriesByTopic(ctx, "umwelt",
//		presseportal.WithMedia("image"),
//		presseportal.Limit(10),
//	)
//
// Optional parameters that are not passed are not sent, so the API applies its
// own defaults.
//
// # Validation
//
// Media types, regions, topics, keywords, investor relations categories, search
// terms and search entities are checked against allow-lists before any request
// is made. Rejected values produce an *ArgumentError.
//
// # Error Handling
//
//   - *APIKeyError: malformed API key (ErrInvalidAPIKey)
//   - *ArgumentError: value outside an allow-list (ErrInvalidArgument plus ErrInvalidMedia, ErrInvalidRegion, ...)
//   - *ConnectionError: the API could not be reached (ErrConnection)
//   - *APIError: the API reported an error code and message
//   - *DataError: malformed response or missing required fields (ErrInvalidData)
//   - ErrUnknownEnvelope: response is neither a success nor an error
//
//	var apiErr *presseportal.APIError
//	if errors.As(err, &apiErr) && apiErr.IsUnauthorized() {
//		// Handle auth failure
//	}
package presseportal
