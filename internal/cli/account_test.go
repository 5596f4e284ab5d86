package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupThenLogin(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "", "--db", db, "signup", "--name", "Ada", "--email", "ada@mooj.tech", "--password", "Secret#123")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Account created for Ada <ada@mooj.tech> (Mooj-Tech Logistics)")

	// Credentials survive across invocations.
	out, err = execute(t, "", "--db", db, "login", "--email", "ada@mooj.tech", "--password", "Secret#123")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Signed in as Ada <ada@mooj.tech>")
}

func TestSignup_WeakPassword(t *testing.T) {
	out, err := execute(t, "", "--db", tempDB(t), "signup", "--name", "Ada", "--email", "ada@mooj.tech", "--password", "short")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [E_WEAK_PASSWORD]")
	assert.Contains(t, out, "at least 8 characters")
}

func TestSignup_WeakPasswordJSON(t *testing.T) {
	out, err := execute(t, "", "--db", tempDB(t), "--format", "json", "signup", "--name", "Ada", "--email", "ada@mooj.tech", "--password", "alllowercase1!")
	require.Error(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeWeakPassword, resp.Error.Code)
	assert.Equal(t, map[string]any{"rule": "uppercase"}, resp.Error.Details)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, "", "--db", db, "signup", "--name", "Ada", "--email", "ada@mooj.tech", "--password", "Secret#123")
	require.NoError(t, err)

	out, err := execute(t, "", "--db", db, "signup", "--name", "Bob", "--email", "ada@mooj.tech", "--password", "Other#456")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error [ALREADY_EXISTS]")
}

func TestLogin_Failures(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, "", "--db", db, "signup", "--name", "Ada", "--email", "ada@mooj.tech", "--password", "Secret#123")
	require.NoError(t, err)

	wrongPassword, err := execute(t, "", "--db", db, "login", "--email", "ada@mooj.tech", "--password", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	unknownEmail, err := execute(t, "", "--db", db, "login", "--email", "who@mooj.tech", "--password", "Secret#123")
	require.Error(t, err)

	assert.Contains(t, wrongPassword, "Error [AUTHENTICATION_FAILED]")
	assert.Equal(t, wrongPassword, unknownEmail, "failure cause is not disclosed")
}

func TestLogin_JSON(t *testing.T) {
	db := tempDB(t)
	_, err := execute(t, "", "--db", db, "signup", "--name", "Ada", "--email", "ada@mooj.tech", "--password", "Secret#123")
	require.NoError(t, err)

	out, err := execute(t, "", "--db", db, "--format", "json", "login", "--email", "ada@mooj.tech", "--password", "Secret#123")
	require.NoError(t, err)

	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Name    string `json:"name"`
			Email   string `json:"email"`
			Company string `json:"company"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Ada", resp.Data.Name)
	assert.Equal(t, "Mooj-Tech Logistics", resp.Data.Company)
}

func TestSignup_RequiresFlags(t *testing.T) {
	_, err := execute(t, "", "--db", tempDB(t), "signup", "--email", "ada@mooj.tech")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}
