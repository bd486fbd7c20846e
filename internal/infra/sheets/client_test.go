package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type tokenSourceFunc func() (*oauth2.Token, error)

func (f tokenSourceFunc) Token() (*oauth2.Token, error) {
	return f()
}

type persistRecorder struct {
	calls        int
	accessToken  string
	refreshToken string
	expiresAt    time.Time
	err          error
}

func (r *persistRecorder) persist(_ context.Context, accessToken, refreshToken string, expiresAt time.Time) error {
	r.calls++
	r.accessToken = accessToken
	r.refreshToken = refreshToken
	r.expiresAt = expiresAt

	return r.err
}

func createTestTokenSource(inner oauth2.TokenSource, storedAccess string, recorder *persistRecorder) *persistingTokenSource {
	return &persistingTokenSource{
		ctx:        context.Background(),
		inner:      inner,
		lastAccess: storedAccess,
		persist:    recorder.persist,
	}
}

func TestPersistingTokenSource_PersistsRotatedTokenOnce(t *testing.T) {
	storedExpiry := time.Now().Add(-time.Minute)
	rotated := &oauth2.Token{
		AccessToken:  "rotated-access",
		RefreshToken: "refresh-1",
		Expiry:       time.Now().Add(time.Hour),
	}
	recorder := &persistRecorder{}
	source := createTestTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
		return rotated, nil
	}), "stored-access", recorder)

	token, err := source.Token()

	require.NoError(t, err)
	assert.Equal(t, "rotated-access", token.AccessToken)
	require.Equal(t, 1, recorder.calls)
	assert.Equal(t, "rotated-access", recorder.accessToken)
	assert.Equal(t, "refresh-1", recorder.refreshToken)
	assert.Equal(t, rotated.Expiry, recorder.expiresAt)
	assert.True(t, recorder.expiresAt.After(storedExpiry))

	// The rotated token is now the known one; a second resolution must not
	// write again.
	token, err = source.Token()

	require.NoError(t, err)
	assert.Equal(t, "rotated-access", token.AccessToken)
	assert.Equal(t, 1, recorder.calls)
}

func TestPersistingTokenSource_UnchangedTokenSkipsPersist(t *testing.T) {
	recorder := &persistRecorder{}
	source := createTestTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
		return &oauth2.Token{
			AccessToken: "stored-access",
			Expiry:      time.Now().Add(time.Hour),
		}, nil
	}), "stored-access", recorder)

	token, err := source.Token()

	require.NoError(t, err)
	assert.Equal(t, "stored-access", token.AccessToken)
	assert.Equal(t, 0, recorder.calls)
}

func TestPersistingTokenSource_PersistFailureBlocksToken(t *testing.T) {
	recorder := &persistRecorder{err: errors.New("write timeout")}
	source := createTestTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
		return &oauth2.Token{
			AccessToken: "rotated-access",
			Expiry:      time.Now().Add(time.Hour),
		}, nil
	}), "stored-access", recorder)

	_, err := source.Token()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to persist rotated Google token")
	require.Equal(t, 1, recorder.calls)

	// The failed write must not mark the token as durable; the next
	// resolution retries the write and succeeds.
	recorder.err = nil

	token, err := source.Token()

	require.NoError(t, err)
	assert.Equal(t, "rotated-access", token.AccessToken)
	assert.Equal(t, 2, recorder.calls)
}

func TestPersistingTokenSource_InnerFailurePropagates(t *testing.T) {
	recorder := &persistRecorder{}
	source := createTestTokenSource(tokenSourceFunc(func() (*oauth2.Token, error) {
		return nil, errors.New("invalid_grant")
	}), "stored-access", recorder)

	_, err := source.Token()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to obtain Google token")
	assert.Equal(t, 0, recorder.calls)
}
