package store

// Account queries. Every state transition is a single statement whose WHERE
// clause carries the precondition, so concurrent logins serialize on the row
// lock instead of on application code.
const (
	// createAccount assigns the role inside the INSERT: the first account
	// ever created becomes admin, all later ones user. Under READ COMMITTED
	// two racing first registrations can both evaluate the EXISTS over an
	// empty snapshot; the accounts_single_admin partial unique index rejects
	// the loser's admin row, and the repository retries that INSERT with the
	// user role.
	createAccount = `
		INSERT INTO accounts (account_id, email, name, password_hash, role)
		VALUES ($1, lower($2), $3, $4,
			CASE WHEN EXISTS (SELECT 1 FROM accounts) THEN 'user' ELSE 'admin' END)
		RETURNING account_id, email, name, password_hash, role,
			failed_attempts, lockout_until, two_factor_secret, two_factor_enabled, created_at;`

	// createAccountAsUser is the retry path after losing the first-account
	// race.
	createAccountAsUser = `
		INSERT INTO accounts (account_id, email, name, password_hash, role)
		VALUES ($1, lower($2), $3, $4, 'user')
		RETURNING account_id, email, name, password_hash, role,
			failed_attempts, lockout_until, two_factor_secret, two_factor_enabled, created_at;`

	findAccountByEmail = `
		SELECT account_id, email, name, password_hash, role,
			failed_attempts, lockout_until, two_factor_secret, two_factor_enabled, created_at
		FROM accounts WHERE email = lower($1);`

	findAccountByID = `
		SELECT account_id, email, name, password_hash, role,
			failed_attempts, lockout_until, two_factor_secret, two_factor_enabled, created_at
		FROM accounts WHERE account_id = $1;`

	incrementFailedAttempts = `
		UPDATE accounts SET failed_attempts = failed_attempts + 1
		WHERE account_id = $1
		RETURNING failed_attempts;`

	// setLockout only lands when the attempt counter still matches what the
	// caller observed; a concurrent attempt that bumped it first wins.
	setLockout = `
		UPDATE accounts SET lockout_until = $2
		WHERE account_id = $1 AND failed_attempts = $3;`

	resetLockout = `
		UPDATE accounts SET failed_attempts = 0, lockout_until = NULL
		WHERE account_id = $1;`

	setPendingTwoFactorSecret = `
		UPDATE accounts SET two_factor_secret = $2, two_factor_enabled = FALSE
		WHERE account_id = $1 AND NOT two_factor_enabled;`

	// enableTwoFactor is guarded by the secret the caller verified a code
	// against still being the pending one.
	enableTwoFactor = `
		UPDATE accounts SET two_factor_enabled = TRUE
		WHERE account_id = $1 AND two_factor_secret = $2 AND NOT two_factor_enabled;`

	disableTwoFactor = `
		UPDATE accounts SET two_factor_secret = '', two_factor_enabled = FALSE
		WHERE account_id = $1;`

	deleteRecoveryCodes = `
		DELETE FROM recovery_codes WHERE account_id = $1;`

	insertRecoveryCode = `
		INSERT INTO recovery_codes (account_id, code_hash) VALUES ($1, $2);`

	// consumeRecoveryCode marks a code used only if it is still unused; zero
	// affected rows means the code is unknown or already burned.
	consumeRecoveryCode = `
		UPDATE recovery_codes SET used_at = now()
		WHERE account_id = $1 AND code_hash = $2 AND used_at IS NULL;`
)

// Session queries. Validity (not revoked, not expired) is always evaluated
// inside the statement, never read-then-checked in Go.
const (
	createSession = `
		INSERT INTO sessions (session_id, account_id, ip, user_agent, last_active, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING session_id, account_id, ip, user_agent, last_active, expires_at, is_revoked, created_at;`

	validateSession = `
		SELECT session_id, account_id, ip, user_agent, last_active, expires_at, is_revoked, created_at
		FROM sessions
		WHERE session_id = $1 AND NOT is_revoked AND expires_at > $2;`

	touchSession = `
		UPDATE sessions SET last_active = $2 WHERE session_id = $1;`

	revokeSessionOwned = `
		UPDATE sessions SET is_revoked = TRUE
		WHERE session_id = $1 AND account_id = $2;`

	revokeSessionAdmin = `
		UPDATE sessions SET is_revoked = TRUE
		WHERE session_id = $1;`

	sessionExists = `
		SELECT EXISTS (SELECT 1 FROM sessions WHERE session_id = $1);`
)

// Share queries.
const (
	createShare = `
		INSERT INTO shares (share_id, payload, type, expires_at, views_left, max_views)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING share_id, payload, type, expires_at, views_left, max_views, created_at;`

	getShare = `
		SELECT share_id, payload, type, expires_at, views_left, max_views, created_at
		FROM shares WHERE share_id = $1;`

	// redeemShare is the burn-after-reading statement: guard and decrement
	// in one UPDATE, so the number of returned payloads can never exceed the
	// view budget no matter how many clients race.
	redeemShare = `
		UPDATE shares SET views_left = views_left - 1
		WHERE share_id = $1 AND views_left > 0 AND expires_at > $2
		RETURNING share_id, payload, type, expires_at, views_left, max_views, created_at;`

	shareExists = `
		SELECT EXISTS (SELECT 1 FROM shares WHERE share_id = $1);`
)

// Audit queries.
const (
	insertAuditEvent = `
		INSERT INTO audit_events (event_id, account_id, action, entity_type, entity_id, details, ip, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
)
