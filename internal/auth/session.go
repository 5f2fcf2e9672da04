// Package auth verifies a joining player's session against Mojang's session
// server, the online-mode collaborator the login handshake calls after the
// shared secret is established.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const defaultSessionServerURL = "https://sessionserver.mojang.com/session/minecraft/hasJoined"

// PlayerProfile is the verified identity returned by a successful join check.
type PlayerProfile struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
}

type Property struct {
	Name      string `json:"name"`
	Value     string `json:"value"`
	Signature string `json:"signature,omitempty"`
}

// Verifier checks a username + server id hash against Mojang's session server.
type Verifier struct {
	client  http.Client
	baseURL string
}

func NewVerifier(timeout time.Duration) *Verifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Verifier{
		client:  http.Client{Timeout: timeout},
		baseURL: defaultSessionServerURL,
	}
}

// VerifySession performs the hasJoined check. A nil profile with a nil error
// never happens: the session server's 204 "no such session" response is
// surfaced as an error so callers never mistake it for success.
func (v *Verifier) VerifySession(ctx context.Context, username, serverIDHash string) (*PlayerProfile, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("serverId", serverIDHash)
	reqURL := v.baseURL + "?" + query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build session verification request")
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "session server request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, errors.New("session server reports no such session")
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, errors.Errorf("session server returned status %d: %s", resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read session server response")
	}

	var profile PlayerProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, errors.Wrap(err, "parse session server response")
	}
	if profile.Name != username {
		return nil, fmt.Errorf("session server returned profile for %q, expected %q", profile.Name, username)
	}
	return &profile, nil
}
