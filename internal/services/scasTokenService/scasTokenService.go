package scastokenservice

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/RobsonDevCode/vareport/internal/clients"
	"github.com/RobsonDevCode/vareport/internal/exitcodes"
)

type ScasTokenService interface {
	IssueOfflineToken(ctx context.Context, username string, password string) (*OfflineToken, error)
	PromptPassword(username string) (string, error)
}

type OfflineToken struct {
	Token     string
	RevokeUrl string
}

type ScasTokenIssuer struct {
	client     clients.ScasClientService
	accountUrl string
}

func NewScasTokenIssuer(client clients.ScasClientService, accountUrl string) *ScasTokenIssuer {
	return &ScasTokenIssuer{
		client:     client,
		accountUrl: accountUrl,
	}
}

func (s *ScasTokenIssuer) IssueOfflineToken(ctx context.Context, username string, password string) (*OfflineToken, error) {
	token, err := s.client.GetOfflineToken(ctx, username, password)
	if err != nil {
		return nil, exitcodes.New(exitcodes.RemoteFailed,
			fmt.Errorf("error getting the 'offline access token' from SCAS site: %w", err))
	}

	return &OfflineToken{
		Token:     token,
		RevokeUrl: s.accountUrl,
	}, nil
}

func (s *ScasTokenIssuer) PromptPassword(username string) (string, error) {
	prompt := &survey.Password{
		Message: fmt.Sprintf("SCAS password for %s:", username),
	}

	var password string
	if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
		fmt.Print("password prompt cancelled")
		return "", exitcodes.New(exitcodes.Usage, fmt.Errorf("password prompt error: %w", err))
	}

	return password, nil
}
