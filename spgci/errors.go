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
	"fmt"
	"net/http"
	"strconv"
)

const bodySnippetLen = 512

func bodySnippet(body []byte) string {
	if len(body) > bodySnippetLen {
		return string(body[:bodySnippetLen]) + "..."
	}
	return string(body)
}

// AuthError indicates invalid or rejected credentials: either the token
// exchange failed, or a data request came back 401/403 after a token refresh.
type AuthError struct {
	Body string
}

func (e *AuthError) Error() string {
	return "invalid username, password or appkey: " + e.Body
}

// PerSecondLimitError indicates that the per-second request rate was
// exceeded; the request may be retried after a short delay.
type PerSecondLimitError struct{}

func (e *PerSecondLimitError) Error() string {
	return "you have exceeded the API per-second rate limit"
}

// DailyLimitError indicates that the daily request quota is exhausted.
type DailyLimitError struct{}

func (e *DailyLimitError) Error() string {
	return "you have exceeded the API daily request limit"
}

// StatusError is any other non-2xx API response.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error %s: %s", e.Status, e.Body)
}

// rateLimitError classifies a 429 response using the remaining daily quota
// header. A missing or unparseable header is treated as the daily limit.
func rateLimitError(h http.Header) error {
	remaining, err := strconv.Atoi(h.Get("x-ratelimit-remaining-day"))
	if err == nil && remaining > 0 {
		return &PerSecondLimitError{}
	}
	return &DailyLimitError{}
}
