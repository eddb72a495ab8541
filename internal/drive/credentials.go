package drive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	drive "google.golang.org/api/drive/v3"
)

// Credentials authenticate as a Google service account with read-only Drive access.
type Credentials struct {
	config *jwt.Config
	// Origin describes where the credentials were loaded from, for logging.
	Origin string
}

// ClientEmail returns the service account email.
func (c *Credentials) ClientEmail() string {
	return c.config.Email
}

// TokenSource returns a token source backed by the service account.
func (c *Credentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	return c.config.TokenSource(ctx)
}

// LoadCredentials loads service account credentials from the JSON key at path,
// falling back to a client email and PEM private key pair. Literal "\n"
// sequences in privateKey are turned into newlines so the key can live on a
// single env line. An unreadable or invalid key file is logged and skipped.
// It returns nil and no error when neither source is available.
func LoadCredentials(path, clientEmail, privateKey string) (*Credentials, error) {
	if path != "" {
		creds, err := credentialsFromFile(path)
		switch {
		case err == nil:
			return creds, nil
		case errors.Is(err, os.ErrNotExist):
		default:
			slog.Warn("ignoring unusable service account file", "path", path, "error", err)
		}
	}

	if clientEmail != "" && privateKey != "" {
		return &Credentials{
			config: &jwt.Config{
				Email:      clientEmail,
				PrivateKey: []byte(strings.ReplaceAll(privateKey, `\n`, "\n")),
				Scopes:     []string{drive.DriveReadonlyScope},
				TokenURL:   google.JWTTokenURL,
			},
			Origin: "env",
		}, nil
	}
	if clientEmail != "" || privateKey != "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_EMAIL and GOOGLE_PRIVATE_KEY must be set together")
	}

	return nil, nil
}

func credentialsFromFile(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := google.JWTConfigFromJSON(data, drive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account file: %w", err)
	}
	if cfg.Email == "" || len(cfg.PrivateKey) == 0 {
		return nil, fmt.Errorf("service account file is missing client_email or private_key")
	}
	return &Credentials{config: cfg, Origin: path}, nil
}
