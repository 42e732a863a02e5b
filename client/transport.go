package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Transport is an http.RoundTripper that attaches the stored access token
// to every request and, on a 401, refreshes the token and replays the
// request exactly once. Non-401 responses pass through untouched.
type Transport struct {
	// Base is the underlying transport, http.DefaultTransport if nil
	Base http.RoundTripper

	// Store supplies and receives credentials
	Store SessionStore

	// RefreshURL is the absolute URL of the token refresh endpoint
	RefreshURL string
}

// NewTransport creates a refreshing transport around base
func NewTransport(base http.RoundTripper, store SessionStore, refreshURL string) *Transport {
	return &Transport{Base: base, Store: store, RefreshURL: refreshURL}
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Replays need a rewindable body
	var bodyCopy []byte
	if req.Body != nil {
		var err error
		bodyCopy, err = io.ReadAll(req.Body)
		req.Body.Close()
		if err != nil {
			return nil, err
		}
		req.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}

	resp, err := t.send(req, bodyCopy)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	// One refresh attempt per logical request
	refreshToken := t.Store.RefreshToken()
	if refreshToken == "" {
		t.Store.Clear()
		return resp, nil
	}

	if err := t.refresh(req, refreshToken); err != nil {
		resp.Body.Close()
		t.Store.Clear()
		return nil, err
	}

	resp.Body.Close()
	retry := req.Clone(req.Context())
	if bodyCopy != nil {
		retry.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}
	retryResp, err := t.send(retry, bodyCopy)
	if err != nil {
		return nil, err
	}
	// A 401 on a freshly refreshed token means the credentials are no
	// good at all. End the session and pass the response through.
	if retryResp.StatusCode == http.StatusUnauthorized {
		t.Store.Clear()
	}
	return retryResp, nil
}

// send attaches the current access token and performs one attempt. The
// token is read per attempt so a refresh between attempts takes effect.
func (t *Transport) send(req *http.Request, bodyCopy []byte) (*http.Response, error) {
	attempt := req.Clone(req.Context())
	if bodyCopy != nil {
		attempt.Body = io.NopCloser(bytes.NewReader(bodyCopy))
	}
	if token := t.Store.AccessToken(); token != "" {
		attempt.Header.Set("Authorization", "Bearer "+token)
	}
	return t.base().RoundTrip(attempt)
}

type refreshResponse struct {
	Data struct {
		AccessToken string `json:"access_token"`
	} `json:"data"`
}

func (t *Transport) refresh(orig *http.Request, refreshToken string) error {
	req, err := http.NewRequestWithContext(orig.Context(), http.MethodPost, t.RefreshURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := t.base().RoundTrip(req)
	if err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token refresh failed: status %d", resp.StatusCode)
	}

	var out refreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}
	if out.Data.AccessToken == "" {
		return fmt.Errorf("token refresh failed: empty access token")
	}

	t.Store.SetAccessToken(out.Data.AccessToken)
	return nil
}

var _ http.RoundTripper = (*Transport)(nil)
