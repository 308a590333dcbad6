// Package firebase owns the process-wide Firebase Admin SDK handles. A Client
// that could not be initialised stays usable and reports itself not ready.
package firebase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	fb "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/firetemplate/items-api/internal/config"
	"github.com/firetemplate/items-api/internal/models"
	"github.com/firetemplate/items-api/pkg/logger"
	"google.golang.org/api/option"
)

var ErrNotInitialized = errors.New("firebase not initialized")

// Client bundles the auth and Firestore handles. All methods are safe for concurrent use.
type Client struct {
	auth *auth.Client
	db   *firestore.Client
}

type serviceAccount struct {
	Type      string `json:"type"`
	ProjectID string `json:"project_id"`
}

// New initialises the Admin SDK from the configured service-account file.
// It never fails: problems are logged and a disabled Client is returned.
func New(ctx context.Context, cfg config.FirebaseConfig) *Client {
	c, err := initialize(ctx, cfg)
	if err != nil {
		logger.Warnf("Firebase not initialized: %v", err)
		return &Client{}
	}
	logger.Infof("Firebase initialized")
	return c
}

func initialize(ctx context.Context, cfg config.FirebaseConfig) (*Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, errors.New("FIREBASE_CREDENTIALS_PATH not set")
	}
	data, err := os.ReadFile(cfg.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}
	var sa serviceAccount
	if err := json.Unmarshal(data, &sa); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if sa.Type != "service_account" {
		return nil, fmt.Errorf("credentials file is not a service account (type %q)", sa.Type)
	}

	projectID := cfg.ProjectID
	if projectID == "" {
		projectID = sa.ProjectID
	}
	app, err := fb.NewApp(ctx, &fb.Config{ProjectID: projectID}, option.WithCredentialsJSON(data))
	if err != nil {
		return nil, fmt.Errorf("init app: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init auth: %w", err)
	}
	db, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firestore: %w", err)
	}
	return &Client{auth: authClient, db: db}, nil
}

func (c *Client) Ready() bool { return c != nil && c.auth != nil && c.db != nil }

// Firestore returns the shared database handle, or nil when not ready.
func (c *Client) Firestore() *firestore.Client {
	if !c.Ready() {
		return nil
	}
	return c.db
}

func (c *Client) Name() string { return "firebase" }

// Verify checks a Firebase ID token.
func (c *Client) Verify(ctx context.Context, raw string) (*models.Caller, error) {
	if !c.Ready() {
		return nil, ErrNotInitialized
	}
	tok, err := c.auth.VerifyIDToken(ctx, raw)
	if err != nil {
		return nil, err
	}
	caller := &models.Caller{UID: tok.UID, Source: c.Name()}
	caller.Email, _ = tok.Claims["email"].(string)
	caller.Name, _ = tok.Claims["name"].(string)
	if tok.Expires > 0 {
		caller.ExpiresAt = time.Unix(tok.Expires, 0)
	}
	return caller, nil
}

// VerifyToken is Verify without the error: nil means the token was not accepted.
func (c *Client) VerifyToken(ctx context.Context, raw string) *models.Caller {
	caller, err := c.Verify(ctx, raw)
	if err != nil {
		logger.Warnf("Error verifying token: %v", err)
		return nil
	}
	return caller
}

// GetProfile looks the user up in Firebase Auth.
func (c *Client) GetProfile(ctx context.Context, uid string) (*models.Profile, error) {
	if !c.Ready() {
		return nil, ErrNotInitialized
	}
	u, err := c.auth.GetUser(ctx, uid)
	if err != nil {
		return nil, err
	}
	return models.NewProfile(u.UID, u.Email, u.DisplayName), nil
}

func (c *Client) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}
