// Copyright 2025 S&P Global Commodity Insights

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package spgci

import (
	"os"
	"time"
)

// Version of the client library, reported in the User-Agent header.
const Version = "0.1.0"

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.platts.com"

// Config holds the credentials and HTTP behavior of a Client.
type Config struct {
	Username string
	Password string
	AppKey   string // optional, older accounts only

	BaseURL   string        // default: DefaultBaseURL
	UserAgent string        // default: "spgci-go/<version>"
	Timeout   time.Duration // per-request; default: 30s

	// Transport-level retries for transient failures. RetryAttempts = 0
	// disables retrying.
	RetryAttempts int
	RetryBackoff  time.Duration // initial backoff; default in ConfigFromEnv: 100ms
	MaxBackoff    time.Duration // backoff cap; default in ConfigFromEnv: 30s
}

// ConfigFromEnv creates a Config from the SPGCI_USERNAME, SPGCI_PASSWORD and
// SPGCI_APPKEY environment variables, with default retry settings.
func ConfigFromEnv() Config {
	return Config{
		Username:      os.Getenv("SPGCI_USERNAME"),
		Password:      os.Getenv("SPGCI_PASSWORD"),
		AppKey:        os.Getenv("SPGCI_APPKEY"),
		RetryAttempts: 3,
		RetryBackoff:  100 * time.Millisecond,
		MaxBackoff:    30 * time.Second,
	}
}
