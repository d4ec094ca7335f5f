package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds embedded in tokens. Students and admins live in separate
// tables and never share an identity space.
const (
	KindStudent = "student"
	KindAdmin   = "admin"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the JWT payload attached to every authenticated request.
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Kind   string `json:"type"`
	jwt.RegisteredClaims
}

// Manager issues and verifies signed tokens. The secret is injected at
// construction time; there is no package-level state.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the account id, email and principal kind.
func (m *Manager) Issue(userID int64, email, kind string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse validates a token string and returns its claims.
func (m *Manager) Parse(tokenStr string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return Claims{}, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Claims{}, ErrInvalidToken
	}
	return *claims, nil
}
