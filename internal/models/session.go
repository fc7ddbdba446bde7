package models

// Session entry keys. They match the keys the storefront used to keep in
// browser local storage.
const (
	KeyUser            = "user"
	KeyJWT             = "jwt"
	KeyJWTRefreshToken = "jwtRefreshToken"
	KeyUserId          = "userId"
	KeyCart            = "cart"
)

// SessionEntry is the raw stored text of one session key. Revision 0 means
// the key has never been written.
type SessionEntry struct {
	Value    []byte
	Revision int64
}
