// Package firebase sets up the Firebase Auth client used for federated sign-in.
package firebase

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

// NewAuthClient returns an Auth client for the service account at credentialsPath.
// An empty path means federated sign-in is off and yields a nil client.
func NewAuthClient(ctx context.Context, credentialsPath string) (*auth.Client, error) {
	if credentialsPath == "" {
		return nil, nil
	}
	if _, err := os.Stat(credentialsPath); err != nil {
		return nil, errors.Wrapf(err, "firebase credentials file %s", credentialsPath)
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "error initializing firebase app")
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "error getting firebase auth client")
	}
	return client, nil
}
