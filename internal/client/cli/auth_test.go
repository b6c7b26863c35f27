package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/zkvault/internal/client/client"
	"github.com/dmitrijs2005/zkvault/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	as := &fakeAuth{}
	app, out := newTestApp(as, &fakeVault{}, "alice@example.com")
	stubPasswords(t, "correct horse", "correct horse")

	require.NoError(t, app.Register(context.Background()))
	assert.Equal(t, "alice@example.com", as.signupEmail)
	assert.Equal(t, "correct horse", as.signupPass)
	assert.Contains(t, out.String(), "Success!")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	as := &fakeAuth{}
	app, _ := newTestApp(as, &fakeVault{}, "alice@example.com")
	stubPasswords(t, "correct horse", "correct hose")

	assert.ErrorIs(t, app.Register(context.Background()), errPasswordMismatch)
	assert.Empty(t, as.signupEmail, "signup must not be called")
}

func TestRegister_ServiceError(t *testing.T) {
	as := &fakeAuth{signupErr: common.ErrAlreadyExists}
	app, _ := newTestApp(as, &fakeVault{}, "alice@example.com")
	stubPasswords(t, "correct horse", "correct horse")

	assert.ErrorIs(t, app.Register(context.Background()), common.ErrAlreadyExists)
}

func TestLogin_UnlocksWithSameSecret(t *testing.T) {
	as := &fakeAuth{loginSalt: []byte("0123456789abcdef")}
	app, _ := newTestApp(as, &fakeVault{}, " Alice@Example.com ")
	stubPasswords(t, "correct horse")

	require.NoError(t, app.Login(context.Background()))
	assert.True(t, app.isLoggedIn())
	assert.True(t, app.isUnlocked())
	assert.Equal(t, "alice@example.com", app.userName)
	assert.Equal(t, []string{"correct horse"}, as.unlockSecrets)
	assert.Equal(t, ModeOnline, app.Mode())

	want := testKey(t, "correct horse")
	defer want.Destroy()
	assert.True(t, app.key.Equal(want))
}

func TestLogin_Failure(t *testing.T) {
	as := &fakeAuth{loginErr: common.ErrInvalidCredentials}
	app, _ := newTestApp(as, &fakeVault{}, "alice@example.com")
	stubPasswords(t, "wrong")

	assert.ErrorIs(t, app.Login(context.Background()), common.ErrInvalidCredentials)
	assert.False(t, app.isLoggedIn())
	assert.False(t, app.isUnlocked())
	assert.Empty(t, as.unlockSecrets)
}

func TestLogin_ServerUnavailableSwitchesOffline(t *testing.T) {
	as := &fakeAuth{loginErr: client.ErrUnavailable}
	app, _ := newTestApp(as, &fakeVault{}, "alice@example.com")
	stubPasswords(t, "pw")

	assert.ErrorIs(t, app.Login(context.Background()), client.ErrUnavailable)
	assert.Equal(t, ModeOffline, app.Mode())
}

func TestLogin_UnlockFailureKeepsSession(t *testing.T) {
	as := &fakeAuth{loginSalt: []byte("salt"), unlockErr: common.ErrDerivationFailed}
	app, _ := newTestApp(as, &fakeVault{}, "alice@example.com")
	stubPasswords(t, "pw")

	err := app.Login(context.Background())
	assert.ErrorIs(t, err, common.ErrDerivationFailed)
	assert.True(t, app.isLoggedIn())
	assert.False(t, app.isUnlocked())
}

func TestUnlock(t *testing.T) {
	as := &fakeAuth{loggedIn: true, loginSalt: []byte("0123456789abcdef")}
	vs := &fakeVault{want: testKey(t, "master")}
	app, out := newTestApp(as, vs)
	app.userName = "alice@example.com"
	stubPasswords(t, "master")

	require.NoError(t, app.Unlock(context.Background()))
	assert.True(t, app.isUnlocked())
	assert.Equal(t, 1, as.saltCalls)
	assert.Contains(t, out.String(), "Vault unlocked")
}

func TestUnlock_WrongSecret(t *testing.T) {
	as := &fakeAuth{loggedIn: true, loginSalt: []byte("0123456789abcdef")}
	vs := &fakeVault{want: testKey(t, "master")}
	app, _ := newTestApp(as, vs)
	stubPasswords(t, "not the master")

	assert.ErrorIs(t, app.Unlock(context.Background()), errWrongMasterPassword)
	assert.False(t, app.isUnlocked())
}

func TestUnlock_RequiresLogin(t *testing.T) {
	app, _ := newTestApp(&fakeAuth{}, &fakeVault{})
	stubPasswords(t)

	assert.ErrorIs(t, app.Unlock(context.Background()), client.ErrNotLoggedIn)
}

func TestUnlock_SaltError(t *testing.T) {
	as := &fakeAuth{loggedIn: true, saltErr: errors.New("down")}
	app, _ := newTestApp(as, &fakeVault{})
	stubPasswords(t, "master")

	assert.EqualError(t, app.Unlock(context.Background()), "down")
	assert.False(t, app.isUnlocked())
}

func TestLockDestroysKey(t *testing.T) {
	app, out := newTestApp(&fakeAuth{loggedIn: true}, &fakeVault{})
	key := testKey(t, "master")
	app.key = key

	require.NoError(t, app.Lock(context.Background()))
	assert.False(t, app.isUnlocked())
	assert.True(t, key.Destroyed())
	assert.True(t, app.isLoggedIn(), "lock keeps the session")
	assert.Contains(t, out.String(), "Vault locked")
}

func TestLogoutDestroysKeyEvenOnError(t *testing.T) {
	as := &fakeAuth{loggedIn: true, logoutErr: errors.New("down")}
	app, _ := newTestApp(as, &fakeVault{})
	key := testKey(t, "master")
	app.key = key
	app.userName = "alice@example.com"

	assert.Error(t, app.Logout(context.Background()))
	assert.True(t, key.Destroyed())
	assert.Empty(t, app.userName)
	assert.Equal(t, 1, as.logoutCalls)
}
