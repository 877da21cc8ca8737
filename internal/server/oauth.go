package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/smorcillor/spotify-profile-dump-cli/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// Scopes requested for a full library export.
var Scopes = []string{
	"user-read-private",
	"user-read-email",
	"user-library-read",
	"user-follow-read",
	"playlist-read-private",
	"playlist-read-collaborative",
}

// NewOAuthConfig builds the authorization-code flow configuration for the
// Spotify accounts service.
func NewOAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}
}

// OAuthResult contains the result of an OAuth authorization flow.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error {
	return o.err
}

// OAuthHandler handles the OAuth2 authorization-code callback.
// Implements the Handler interface for registration with a Router.
type OAuthHandler struct {
	config      *oauth2.Config
	state       string
	resultChan  chan OAuthResult
	once        sync.Once
	callbackHit bool
	mu          sync.Mutex
}

// NewOAuthHandler creates a new OAuth handler with the given OAuth2 config and state token.
// The state token should be cryptographically random for CSRF protection.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:     config,
		state:      state,
		resultChan: make(chan OAuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP handles the OAuth callback request.
//
// Validates the state parameter, exchanges the authorization code for a
// token, and sends the result through the result channel.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Only handle callback once
	h.mu.Lock()
	if h.callbackHit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.callbackHit = true
	h.mu.Unlock()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Send(OAuthResult{err: fmt.Errorf("%w: %s", shared.ErrAuthFailed, errParam)})
		h.respond(w, "Authorization denied. You can close this tab.")
		return
	}

	state := r.URL.Query().Get("state")
	if state != h.state {
		h.Send(OAuthResult{err: fmt.Errorf("%w: state mismatch", shared.ErrAuthFailed)})
		h.respond(w, "State mismatch error. You can close this tab.")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Send(OAuthResult{err: fmt.Errorf("%w: no authorization code received", shared.ErrAuthFailed)})
		h.respond(w, "No code received. You can close this tab.")
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.Send(OAuthResult{err: fmt.Errorf("token exchange failed: %w", err)})
		http.Error(w, "Token exchange failed", http.StatusInternalServerError)
		return
	}

	h.Send(OAuthResult{Token: token})
	h.respond(w, "Authorization successful! You can close this tab and return to the terminal.")
}

func (h *OAuthHandler) respond(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "<html><body><h2>%s</h2></body></html>", message)
}

// Send sends the OAuth result through the channel (only once).
func (h *OAuthHandler) Send(result OAuthResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving OAuth flow completion.
//
// The channel receives exactly one result and is then closed.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.resultChan
}

// Authorize runs the local OAuth flow end to end: starts the callback
// listener on addr, opens the browser to the authorization URL, and waits
// for the exchanged token or context cancellation.
func Authorize(ctx context.Context, config *oauth2.Config, addr string, logger *log.Logger) (*oauth2.Token, error) {
	state := shared.GenerateState()
	handler := NewOAuthHandler(config, state)

	router := NewCallbackRouter()
	router.Use(RequestLogger(logger))
	router.Handler(handler)

	srv := &http.Server{Addr: addr, Handler: router}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			handler.Send(OAuthResult{err: fmt.Errorf("callback server failed: %w", err)})
		}
	}()
	defer srv.Shutdown(context.Background())

	authURL := config.AuthCodeURL(state)
	if err := shared.OpenBrowser(authURL); err != nil {
		logger.Warn("could not open browser", "err", err)
		logger.Info("open this URL to authorize", "url", authURL)
	}

	select {
	case result := <-handler.Result():
		if err := result.Error(); err != nil {
			return nil, err
		}
		return result.Token, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
