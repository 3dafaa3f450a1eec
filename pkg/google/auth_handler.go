package google

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paydivvy/paydivvy/internal/config"
	"github.com/paydivvy/paydivvy/internal/utils"
	"github.com/paydivvy/paydivvy/pkg/user"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2v2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

const nonceTTL = 10 * time.Minute

type googleAuthRedirect struct {
	RedirectUrl string `json:"redirectUrl"`
}

// GoogleAuth implements the Google sign-in code flow: the login endpoint
// hands the client a consent URL, the callback exchanges the returned code,
// reads the Google profile and provisions (or looks up) the local account.
type GoogleAuth struct {
	userService user.Service
	oauthConfig *oauth2.Config
	clock       utils.Clock

	// Sign-in starts before any session exists, so pending nonces live in
	// memory instead of a user-scoped row.
	mu     sync.Mutex
	nonces map[string]time.Time
}

func NewGoogleAuth(userService user.Service, cfg config.Application) *GoogleAuth {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Google.ClientId,
		ClientSecret: cfg.Google.ClientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  cfg.Host + "/api/auth/google/callback",
		Scopes:       []string{oauth2v2.UserinfoEmailScope, oauth2v2.UserinfoProfileScope},
	}

	return &GoogleAuth{
		userService: userService,
		oauthConfig: oauthConfig,
		clock:       &utils.SystemClock{},
		nonces:      make(map[string]time.Time),
	}
}

func (g *GoogleAuth) OAuthLogin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	stateNonce := uuid.New().String()
	finalUrl := r.URL.Query().Get("finalUrl")

	g.mu.Lock()
	for nonce, issuedAt := range g.nonces {
		if g.clock.Now().Sub(issuedAt) > nonceTTL {
			delete(g.nonces, nonce)
		}
	}
	g.nonces[stateNonce] = g.clock.Now()
	g.mu.Unlock()

	log.Tracef("Redirecting to Google auth URL with nonce: %s", stateNonce)
	u := g.oauthConfig.AuthCodeURL(finalUrl + "|" + stateNonce)

	w.WriteHeader(http.StatusOK)
	encodeErr := json.NewEncoder(w).Encode(googleAuthRedirect{
		RedirectUrl: u,
	})
	if encodeErr != nil {
		http.Error(w, encodeErr.Error(), http.StatusInternalServerError)
	}
}

func (g *GoogleAuth) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	state := r.FormValue("state")

	parts := strings.SplitN(state, "|", 2)
	if len(parts) != 2 {
		http.Error(w, "invalid state", http.StatusBadRequest)
		return
	}
	finalUrl := parts[0]
	nonce := parts[1]

	if !g.consumeNonce(nonce) {
		log.Warnf("unknown or expired Google auth nonce: %s", nonce)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	token, err := g.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		err := fmt.Errorf("unable to exchange code for token: %v", err)
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	oauthService, err := oauth2v2.NewService(r.Context(), option.WithTokenSource(g.oauthConfig.TokenSource(r.Context(), token)))
	if err != nil {
		err := fmt.Errorf("unable to create Google oauth service: %v", err)
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}
	userInfo, err := oauthService.Userinfo.Get().Do()
	if err != nil {
		err := fmt.Errorf("unable to fetch Google user info: %v", err)
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	_, sessionToken, err := g.userService.GetOrCreateGoogleUser(r.Context(), userInfo.Id, userInfo.Email, userInfo.Name)
	if err != nil {
		err := fmt.Errorf("unable to provision Google user: %v", err)
		log.Error(err)
		http.Redirect(w, r, finalUrl+"?success=false", http.StatusFound)
		return
	}

	log.Debugf("Google sign-in completed for %s", userInfo.Email)
	http.Redirect(w, r, finalUrl+"?token="+url.QueryEscape(sessionToken), http.StatusFound)
}

func (g *GoogleAuth) consumeNonce(nonce string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	issuedAt, ok := g.nonces[nonce]
	if !ok {
		return false
	}
	delete(g.nonces, nonce)
	return g.clock.Now().Sub(issuedAt) <= nonceTTL
}
