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
	"net/http"
	"net/http/httptest"
	"net/url"
)

// TestServer simulates the API in tests. Queue the canned responses in
// ResponseBody (and optionally ResponseStatus); each incoming request
// consumes the next element, and the last element repeats when the queue
// runs out. The fields of the most recent request are captured for
// inspection.
//
// Usage:
//
//	server := NewTestServer()
//	defer server.Close()
//	server.ResponseBody = []string{`{"access_token": "tok"}`, page1, page2}
//	client, _ := NewClient(Config{
//	  Username: "u", Password: "p", BaseURL: server.URL()})
type TestServer struct {
	ResponseBody   []string
	ResponseStatus []int       // parallel to ResponseBody; default 200
	ResponseHeader http.Header // extra headers set on every response

	RequestPath   string
	RequestQuery  url.Values
	RequestHeader http.Header
	RequestForm   url.Values // parsed form of the latest POST
	RequestCount  int

	server *httptest.Server
}

// NewTestServer creates and starts a TestServer.
func NewTestServer() *TestServer {
	ts := &TestServer{}
	ts.server = httptest.NewServer(http.HandlerFunc(ts.handler))
	return ts
}

// URL of the server, to be used as the client's BaseURL.
func (ts *TestServer) URL() string { return ts.server.URL }

// Close shuts down the server.
func (ts *TestServer) Close() { ts.server.Close() }

func (ts *TestServer) handler(w http.ResponseWriter, r *http.Request) {
	ts.RequestPath = r.URL.Path
	ts.RequestQuery = r.URL.Query()
	ts.RequestHeader = r.Header.Clone()
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			ts.RequestForm = r.PostForm
		}
	}
	i := ts.RequestCount
	ts.RequestCount++

	status := http.StatusOK
	if len(ts.ResponseStatus) > 0 {
		if i >= len(ts.ResponseStatus) {
			status = ts.ResponseStatus[len(ts.ResponseStatus)-1]
		} else {
			status = ts.ResponseStatus[i]
		}
	}
	body := ""
	if len(ts.ResponseBody) > 0 {
		if i >= len(ts.ResponseBody) {
			body = ts.ResponseBody[len(ts.ResponseBody)-1]
		} else {
			body = ts.ResponseBody[i]
		}
	}
	w.Header().Set("Content-Type", "application/json")
	for k, vs := range ts.ResponseHeader {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(status)
	w.Write([]byte(body))
}
