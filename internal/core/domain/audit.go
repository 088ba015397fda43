package domain

import "time"

// Actions recorded by the asynchronous activity trail.
const (
	AuditRegister      = "register"
	AuditLogin         = "login"
	AuditLoginFailed   = "login_failed"
	AuditAccountUpdate = "account_update"
	AuditAccountDelete = "account_delete"
	AuditPostCreate    = "post_create"
)

// AuditEvent records a single account or content action. Subject is the
// stringified user id, or the attempted email for pre-auth failures.
type AuditEvent struct {
	Subject   string
	Action    string
	Detail    string
	Success   bool
	Timestamp time.Time
}
