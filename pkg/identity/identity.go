package identity

import (
	"errors"
	"os"

	"github.com/tmcfarlane/goninja/pkg/file"
)

// ErrMissingAccessToken is returned when the credentials file carries no
// access token; every hub call requires one.
var ErrMissingAccessToken = errors.New("credentials file has no access token")

// Credentials holds what the library needs to talk to one hub: the block's
// identifier and the user access token issued for it.
type Credentials struct {
	BlockID     string `json:"block_id,omitempty"`
	AccessToken string `json:"access_token"`
}

// CredentialsProvider defines methods for loading and reading hub credentials.
type CredentialsProvider interface {
	Load() error
	SaveAccessToken(token string) error
	AccessToken() string
	BlockID() string
}

// CredentialsStore manages hub credentials backed by a JSON file.
type CredentialsStore struct {
	CredentialsFile string
	credentials     Credentials
	fileOps         file.FileOperations
}

// NewCredentialsStore initializes a new CredentialsStore.
func NewCredentialsStore(filePath string, fileOps file.FileOperations) *CredentialsStore {
	return &CredentialsStore{
		CredentialsFile: filePath,
		fileOps:         fileOps,
	}
}

// Load reads the credentials file and validates the access token.
func (c *CredentialsStore) Load() error {
	if err := c.fileOps.ReadJsonFile(c.CredentialsFile, &c.credentials); err != nil {
		if os.IsNotExist(err) {
			c.credentials = Credentials{}
			return ErrMissingAccessToken
		}
		return err
	}

	if c.credentials.AccessToken == "" {
		return ErrMissingAccessToken
	}
	return nil
}

// SaveAccessToken updates the access token and writes the file back.
func (c *CredentialsStore) SaveAccessToken(token string) error {
	c.credentials.AccessToken = token
	return c.fileOps.WriteJsonFile(c.CredentialsFile, c.credentials)
}

// AccessToken returns the loaded access token.
func (c *CredentialsStore) AccessToken() string {
	return c.credentials.AccessToken
}

// BlockID returns the loaded block identifier.
func (c *CredentialsStore) BlockID() string {
	return c.credentials.BlockID
}
