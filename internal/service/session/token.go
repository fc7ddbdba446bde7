package sessionservice

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims the backend has been seen to carry the user id under.
var userIdClaims = []string{
	"userId",
	"UserId",
	"nameid",
	"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
	"sub",
}

type TokenInfo struct {
	UserId    int
	ExpiresAt time.Time
}

func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && !now.Before(t.ExpiresAt)
}

// ParseToken reads the claims of a backend token without checking its
// signature. The backend verifies tokens; this side only needs the user id
// and the expiry.
func ParseToken(raw string) (TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return TokenInfo{}, err
	}

	var info TokenInfo
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}

	for _, key := range userIdClaims {
		if id := claimInt(claims[key]); id != 0 {
			info.UserId = id
			break
		}
	}
	return info, nil
}

func claimInt(v any) int {
	switch v := v.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	}
	return 0
}
