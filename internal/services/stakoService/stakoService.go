package stakoservice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/RobsonDevCode/vareport/internal/clients"
	"github.com/RobsonDevCode/vareport/internal/exitcodes"
	"github.com/fatih/color"
)

const (
	gavSeparator = ":"
	csvSeparator = ","
)

var gavValidator = regexp.MustCompile("^([^" + gavSeparator + "]*" + gavSeparator + "){2}[^" + gavSeparator + "]*$")

type StakoService interface {
	Authenticate(ctx context.Context) (string, error)
	LookupGav(ctx context.Context, accessToken string, gav string) (string, error)
	LookupGavFile(ctx context.Context, accessToken string, path string) (string, error)
	WriteResult(result string, path string) error
}

type StakoLookup struct {
	client          clients.ScasClientService
	offlineTokenEnv string
}

func NewStakoLookup(client clients.ScasClientService, offlineTokenEnv string) *StakoLookup {
	return &StakoLookup{
		client:          client,
		offlineTokenEnv: offlineTokenEnv,
	}
}

// ValidateGav accepts group:artifact:version and :artifact:version.
func ValidateGav(gav string) bool {
	return gavValidator.MatchString(strings.TrimSpace(gav))
}

// Authenticate turns the offline token held in the environment into a
// validated access token.
func (s *StakoLookup) Authenticate(ctx context.Context) (string, error) {
	offlineToken, ok := os.LookupEnv(s.offlineTokenEnv)
	if !ok || offlineToken == "" {
		return "", exitcodes.Newf(exitcodes.Usage, "token is not set in environment variable '%s'", s.offlineTokenEnv)
	}

	accessToken, err := s.client.RefreshAccessToken(ctx, offlineToken)
	if err != nil {
		var tokenErr *clients.TokenError
		if errors.As(err, &tokenErr) {
			return "", exitcodes.New(exitcodes.Rejected, err)
		}
		return "", exitcodes.New(exitcodes.Usage, err)
	}

	valid, err := s.client.ValidateToken(ctx, accessToken)
	if err != nil {
		return "", exitcodes.New(exitcodes.RemoteFailed, err)
	}

	if !valid {
		return "", exitcodes.Newf(exitcodes.Usage, "ERROR! Offline access token expired! Need to create a new offline access token")
	}

	return accessToken, nil
}

// LookupGav returns "stako,group,artifact,version" for gav.
func (s *StakoLookup) LookupGav(ctx context.Context, accessToken string, gav string) (string, error) {
	if !ValidateGav(gav) {
		return "", exitcodes.Newf(exitcodes.Usage,
			"GAV not correctly passed.\nAccepted values are:\n\tgroup:artifact:version\n\t:artifact:version")
	}

	parts := strings.Split(gav, gavSeparator)
	artifact := strings.TrimSpace(parts[1])
	version := strings.TrimSpace(parts[2])

	stakoCode, err := s.client.SearchStakoCode(ctx, accessToken, artifact, version)
	if err != nil {
		return "", exitcodes.New(exitcodes.RemoteFailed, err)
	}

	return strings.ReplaceAll(stakoCode+gavSeparator+gav, gavSeparator, csvSeparator), nil
}

// LookupGavFile looks up every GAV line of path. Blank lines are skipped
// and lines that are not a GAV are reported and skipped.
func (s *StakoLookup) LookupGavFile(ctx context.Context, accessToken string, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", exitcodes.Newf(exitcodes.LoadFailure, "error on reading file: '%s'. Reason: %w", path, err)
	}
	defer file.Close()

	var results []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}

		if !ValidateGav(line) {
			fmt.Print(color.YellowString("Error processing line: '%s'.\n Reason: not a valid GAV (group:artifact:version) value!\n", line))
			continue
		}

		result, err := s.LookupGav(ctx, accessToken, line)
		if err != nil {
			return "", err
		}
		results = append(results, result)
	}

	if err := scanner.Err(); err != nil {
		return "", exitcodes.Newf(exitcodes.LoadFailure, "error on reading file: '%s'. Reason: %w", path, err)
	}

	return strings.Join(results, "\n"), nil
}

func (s *StakoLookup) WriteResult(result string, path string) error {
	if err := os.WriteFile(path, []byte(result), 0644); err != nil {
		return exitcodes.Newf(exitcodes.WriteFailure, "error on writing file: '%s'. Reason: %w", path, err)
	}
	return nil
}
