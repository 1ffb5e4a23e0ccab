package types

import uuid "github.com/gofrs/uuid"

// HTTP Header Constants
const (
	HeaderAuthorization = "Authorization"
	HeaderContentType   = "Content-Type"
)

// UserCtxName is the fiber locals key the authentication layer stores the
// resolved caller identity under.
const UserCtxName = "user"

// UserContext carries the already-resolved caller identity. This core never
// authenticates; it trusts the identity placed here by the layer above.
type UserContext struct {
	UserID      uuid.UUID `json:"userId"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Avatar      string    `json:"avatar"`
}
