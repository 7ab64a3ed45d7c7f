// utils/http.go
package utils

import (
	"net/http"
	"time"
)

// HTTPClient is shared by outbound identity-service calls.
var HTTPClient = &http.Client{
	Timeout: 10 * time.Second,
}
