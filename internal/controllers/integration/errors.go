package integrationController

import (
	"errors"
	"fmt"

	. "resumehub/internal/models"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrReconcileFailed   = errors.New("failed to update resume from integrations")
)

type credentialKind struct {
	name    string
	secret  bool
	message string
}

var credentialKinds = map[Platform]credentialKind{
	PlatformGitHub:   {name: "username", message: "GitHub username is required"},
	PlatformDevfolio: {name: "username", message: "Devfolio username is required"},
	PlatformCoursera: {
		name:    "apiKey",
		secret:  true,
		message: "API key is required. Please provide your Coursera API key.",
	},
}

func credentialFor(platform Platform) credentialKind {
	if kind, ok := credentialKinds[platform]; ok {
		return kind
	}
	return credentialKind{
		name:    "credential",
		message: fmt.Sprintf("%s credential is required", platform),
	}
}

// CredentialParam is the query parameter a platform's credential is read from.
func CredentialParam(platform Platform) string {
	return credentialFor(platform).name
}

type MissingCredentialError struct {
	Platform   Platform
	Credential string
	message    string
}

func newMissingCredential(platform Platform) *MissingCredentialError {
	kind := credentialFor(platform)
	return &MissingCredentialError{
		Platform:   platform,
		Credential: kind.name,
		message:    kind.message,
	}
}

func (e *MissingCredentialError) Error() string {
	return e.message
}

func (e *MissingCredentialError) Is(target error) bool {
	return target == ErrMissingCredential
}
