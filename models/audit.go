package models

import "time"

// AuditAction identifies a security-relevant transition. The enumeration is
// closed: sinks may rely on never seeing a value outside this set.
type AuditAction string

const (
	AuditRegister          AuditAction = "REGISTER"
	AuditLogin             AuditAction = "LOGIN"
	AuditLoginFailed       AuditAction = "LOGIN_FAILED"
	AuditLogin2FA          AuditAction = "LOGIN_2FA"
	AuditLogout            AuditAction = "LOGOUT"
	AuditAccountLocked     AuditAction = "ACCOUNT_LOCKED"
	AuditTwoFactorSetup    AuditAction = "TWO_FACTOR_SETUP"
	AuditTwoFactorEnabled  AuditAction = "TWO_FACTOR_ENABLED"
	AuditTwoFactorDisabled AuditAction = "TWO_FACTOR_DISABLED"
	AuditSessionRevoked    AuditAction = "SESSION_REVOKED"
	AuditShareCreated      AuditAction = "SHARE_CREATED"
	AuditShareRedeemed     AuditAction = "SHARE_REDEEMED"
	AuditShareDenied       AuditAction = "SHARE_DENIED"
)

// AuditEntity identifies the kind of entity an audit event refers to.
// Closed enumeration, same contract as [AuditAction].
type AuditEntity string

const (
	EntityAccount AuditEntity = "account"
	EntitySession AuditEntity = "session"
	EntityShare   AuditEntity = "share"
)

// AuditEvent is a structured record of one security-relevant transition.
// Events are emitted fire-and-forget: a failure to persist an event never
// fails or rolls back the operation it describes.
type AuditEvent struct {
	// EventID is the unique identifier of the event (UUID).
	EventID string `json:"event_id"`

	// AccountID is the acting account, or nil when no account is involved
	// (for example a failed login against an unknown email).
	AccountID *string `json:"account_id,omitempty"`

	// Action is the transition that occurred.
	Action AuditAction `json:"action"`

	// EntityType and EntityID name the entity the action applied to.
	EntityType AuditEntity `json:"entity_type"`
	EntityID   string      `json:"entity_id"`

	// Details carries the precise internal reason for the event. User-facing
	// responses deliberately collapse reasons; the audit trail retains them.
	Details string `json:"details,omitempty"`

	// Client is the advisory client metadata of the triggering request.
	Client ClientMeta `json:"client"`

	// CreatedAt is the event timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the AuditEvent model.
func (e AuditEvent) TableName() string {
	return "audit_events"
}
