/*
Package authsdk is a client for a hosted authentication provider's frontend
API. It signs users in and up, keeps the resulting session alive, mints
session tokens for calling your own backend, and survives process restarts
by persisting its state through a small key-value store.

# SDKClient

An SDKClient owns the authentication state of one device. Create it from a
publishable key (or a frontend API domain) and call Load before use:

	client, err := authsdk.New(authsdk.Config{
		PublishableKey: "pk_test_...",
		Storage:        store, // any kvstore.Store; defaults to memory
	})
	if err != nil {
		return err
	}
	defer client.Dispose()

	if err := client.Load(ctx); err != nil {
		return err
	}

	if client.IsSignedIn() {
		fmt.Println("hello", client.User().PrimaryEmailAddress())
	}

# Session Restoration

Load resumes a persisted session without a round trip when it was written
within the trust window (6h by default). Older entries are checked against
the provider, whose answer always wins. When the provider cannot be reached,
an entry younger than the offline window (24h) is still adopted. Load never
fails because of restoration; at worst the client starts signed out.

# Sign-in and Sign-up

Flows are step-by-step state machines. Each step returns the provider's
latest attempt record; when an attempt completes, the created session is
adopted and SessionCreated fires:

	flow := client.SignIn()
	if _, err := flow.Create(ctx, "ada@example.com"); err != nil {
		return err
	}
	si, err := flow.AttemptFirstFactor(ctx, authsdk.AttemptParams{
		Strategy: authsdk.StrategyPassword,
		Password: password,
	})
	if authsdk.ErrorCode(err) == authsdk.ErrorCodePasswordIncorrect {
		// ask again
	}
	if si.Status == authsdk.SignInNeedsSecondFactor {
		si, err = flow.AttemptSecondFactor(ctx, authsdk.AttemptParams{
			Strategy: authsdk.StrategyTOTP,
			Code:     code,
		})
	}

Calling a step out of order returns a *PreconditionError without touching
the network.

# Session Tokens

GetToken returns a short-lived JWT for the current session, optionally
minted with a template. Tokens are cached per session and template and
served until they come within the safety margin (5m) of expiry.

# Background Refresh

While a session is active the client touches it every five minutes. A
session the provider rejects is cleared and SessionDestroyed fires; other
failures are reported on the Error signal.

# Errors

Failures are typed:

  - *ProviderError: the provider answered with status >= 400. Code and
    Message come from the first entry of the provider's error list.
  - *NetworkError: no response at all. Status is 0.
  - *MalformedResponseError: a response arrived but could not be decoded.
  - *PreconditionError: a step was called out of order. Use errors.Is with
    ErrAttemptNotCreated, ErrStrategyNotSupported, ErrVerificationNotPrepared,
    ErrNoActiveSession or ErrDisposed.

IsSessionInvalid and IsUnavailable classify errors for retry decisions.
*/
package authsdk
