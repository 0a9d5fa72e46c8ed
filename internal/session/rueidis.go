package session

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"authflow/internal/configuration"
	"authflow/internal/models"

	"github.com/redis/rueidis"
)

// RueidisPersister keeps remembered sessions in Redis or Valkey until the access token expires.
type RueidisPersister struct {
	client rueidis.Client
}

func NewRedisPersister(config models.RedisSessionConfiguration) (*RueidisPersister, error) {
	return newRueidisPersister(config.Hosts, config.Password, config.TLSEnabled, config.TLSServerName, "redis")
}

func NewValkeyPersister(config models.ValkeySessionConfiguration) (*RueidisPersister, error) {
	return newRueidisPersister(config.Hosts, config.Password, config.TLSEnabled, config.TLSServerName, "valkey")
}

func newRueidisPersister(
	hosts []string,
	password string,
	tlsEnabled bool,
	tlsServerName,
	errorContext string,
) (*RueidisPersister, error) {
	clientOption := rueidis.ClientOption{
		InitAddress: hosts,
		Password:    password,
	}

	if tlsEnabled {
		clientOption.TLSConfig = &tls.Config{
			ServerName: tlsServerName,
			MinVersion: tls.VersionTLS12,
		}
	}

	client, err := rueidis.NewClient(clientOption)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", errorContext, err)
	}
	return &RueidisPersister{client: client}, nil
}

func sessionKey(email string) string {
	return fmt.Sprintf(configuration.CacheRememberedSessionKey, strings.ToLower(email))
}

// sessionTTL returns the remaining lifetime in seconds, or 0 when already expired.
func sessionTTL(session models.AuthSession, now time.Time) int64 {
	if session.ExpiresAt.IsZero() {
		return configuration.RememberedSessionFallbackTTL
	}
	ttl := int64(session.ExpiresAt.Sub(now).Seconds())
	if ttl <= 0 {
		return 0
	}
	return ttl
}

func (r *RueidisPersister) Save(ctx context.Context, session models.AuthSession) error {
	ttl := sessionTTL(session, time.Now())
	if ttl == 0 {
		return r.Delete(ctx, session.Email)
	}

	content, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return r.client.Do(ctx,
		r.client.B().Set().Key(sessionKey(session.Email)).Value(string(content)).ExSeconds(ttl).Build(),
	).Error()
}

func (r *RueidisPersister) Load(ctx context.Context, email string) (models.AuthSession, bool, error) {
	content, err := r.client.Do(ctx, r.client.B().Get().Key(sessionKey(email)).Build()).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return models.AuthSession{}, false, nil
		}
		return models.AuthSession{}, false, err
	}

	var session models.AuthSession
	if err = json.Unmarshal([]byte(content), &session); err != nil {
		return models.AuthSession{}, false, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, true, nil
}

func (r *RueidisPersister) Delete(ctx context.Context, email string) error {
	return r.client.Do(ctx, r.client.B().Del().Key(sessionKey(email)).Build()).Error()
}

func (r *RueidisPersister) Close() error {
	r.client.Close()
	return nil
}
