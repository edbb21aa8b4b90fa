package authsdk

import (
	"context"
	"net/http"
)

// restore decides which session, if any, to resume. The precedence is:
//
//  1. no cache, or the cached session expired: adopt what the provider
//     reports for this client
//  2. cache younger than the trust window: adopt it without a request
//  3. otherwise ask the provider. Its answer wins; if it cannot be reached
//     and the cache is younger than the offline window, adopt the cache
//  4. anything else leaves the client signed out
//
// restore never returns an error.
func (c *SDKClient) restore(ctx context.Context) {
	now := c.now()
	cached, ok := c.sessions.Load(ctx)

	if !ok {
		client, err := c.fetchClient(ctx)
		if err != nil {
			c.logger.InfoContext(ctx, "no session restored", "reason", "client fetch failed", "error", err)
			return
		}
		if s := client.ActiveSession(now); s != nil {
			c.adoptSession(ctx, s)
			return
		}
		c.logger.DebugContext(ctx, "no session restored", "reason", "no active session on client")
		return
	}

	age := now.Sub(cached.CachedAt)
	if age < c.trustWindow {
		c.logger.DebugContext(ctx, "restoring trusted cached session", "session_id", cached.Session.ID, "age", age)
		c.adoptSession(ctx, cached.Session)
		return
	}

	client, err := c.fetchClient(ctx)
	if err != nil {
		if IsUnavailable(err) && age < c.offlineWindow {
			c.logger.InfoContext(ctx, "provider unavailable, restoring cached session",
				"session_id", cached.Session.ID, "age", age, "error", err)
			c.adoptSession(ctx, cached.Session)
			return
		}
		c.logger.InfoContext(ctx, "discarding cached session", "session_id", cached.Session.ID, "error", err)
		c.discardCached(ctx, cached.Session.ID)
		return
	}

	if s := client.SessionByID(cached.Session.ID); s.IsActive(now) {
		c.adoptSession(ctx, s)
		return
	}
	if s := client.ActiveSession(now); s != nil {
		c.logger.InfoContext(ctx, "provider reports a different active session",
			"cached_session_id", cached.Session.ID, "session_id", s.ID)
		c.tokens.Clear(ctx, cached.Session.ID)
		c.adoptSession(ctx, s)
		return
	}

	c.logger.InfoContext(ctx, "cached session no longer active", "session_id", cached.Session.ID)
	c.discardCached(ctx, cached.Session.ID)
}

func (c *SDKClient) discardCached(ctx context.Context, sessionID string) {
	c.sessions.Clear(ctx)
	c.tokens.Clear(ctx, sessionID)
	c.clearSession(ctx)
}

// fetchClient reads this device's client record.
func (c *SDKClient) fetchClient(ctx context.Context) (*ClientRecord, error) {
	env, err := c.transport.Request(ctx, Request{Method: http.MethodGet, Path: "/client"})
	if err != nil {
		return nil, err
	}
	if len(env.Response) == 0 || string(env.Response) == "null" {
		return &ClientRecord{}, nil
	}
	return decodeResource[ClientRecord](env.Response)
}
