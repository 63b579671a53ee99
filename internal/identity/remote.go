package identity

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/taskforge/backend/domain"
)

const defaultVerifyTimeout = 5 * time.Second

// RemoteVerifier hands the token to the identity provider's verification
// endpoint. A definitive rejection (4xx) maps to Unauthorized; provider
// outages and timeouts map to an upstream failure so the gateway can
// distinguish the two.
type RemoteVerifier struct {
	endpoint string
	client   *http.Client
	logger   *zap.Logger
}

func NewRemoteVerifier(endpoint string, timeout time.Duration, logger *zap.Logger) *RemoteVerifier {
	if timeout <= 0 {
		timeout = defaultVerifyTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RemoteVerifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

func (v *RemoteVerifier) Verify(ctx context.Context, token string) (*Claims, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, nil)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "identity provider request failed", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error("identity provider unreachable", zap.Error(err))
		return nil, domain.WrapError(domain.ErrCodeUpstream, "identity provider unreachable", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "identity provider response unreadable", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, domain.ErrUnauthorized
	default:
		v.logger.Error("identity provider error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body))
		return nil, domain.NewError(domain.ErrCodeUpstream, "identity provider error")
	}

	var claims Claims
	if err := json.Unmarshal(body, &claims); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUpstream, "identity provider response malformed", err)
	}
	if claims.SubjectID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &claims, nil
}
