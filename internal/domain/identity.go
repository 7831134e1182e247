package domain

// AdminSubjectID is the synthetic subject id carried by administrator tokens.
// The administrator is configured out-of-band and has no user record.
const AdminSubjectID = "admin"

// Identity is the verified caller of a core operation, as presented by the
// identity provider. The core trusts it completely.
type Identity struct {
	SubjectID string
	Username  string
	IsAdmin   bool
}

// AdminIdentity synthesizes the distinguished administrator identity.
func AdminIdentity(username string) Identity {
	return Identity{SubjectID: AdminSubjectID, Username: username, IsAdmin: true}
}
