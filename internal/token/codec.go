package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"claimdesk/internal/models"
)

// Единый подписанный формат токена для всех ролей (HS256).
// Раньше тут жили две несовместимые схемы (подписанные claims и
// обратимый base64 для админа) — вторая выпилена, админ получает
// такой же подписанный токен, как и все.

var (
	ErrMalformed    = errors.New("token malformed")
	ErrBadSignature = errors.New("token signature invalid")
	ErrExpired      = errors.New("token expired")
)

// Identity — результат проверки токена: ровно один субъект и роль.
type Identity struct {
	Subject string
	Role    models.Role
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Codec выпускает и проверяет токены. Чистая функция от секрета,
// входа и часов — никакого состояния и I/O.
type Codec struct {
	secret []byte
	ttl    time.Duration    // 0 — без истечения
	now    func() time.Time // подменяется в тестах
}

func New(secret string, ttl time.Duration) *Codec {
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue подписывает токен с субъектом, ролью, iat и exp (если задан ttl).
func (c *Codec) Issue(subject string, role models.Role) (string, error) {
	now := c.now()
	cl := claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  subject,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if c.ttl > 0 {
		cl.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
}

// Verify разбирает и проверяет токен. Сравнение подписи внутри jwt —
// hmac.Equal, т.е. постоянное по времени.
func (c *Codec) Verify(raw string) (Identity, error) {
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl,
		func(t *jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Identity{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Identity{}, ErrBadSignature
		default:
			return Identity{}, ErrMalformed
		}
	}
	id := Identity{Subject: cl.Subject, Role: models.Role(cl.Role)}
	if id.Subject == "" || !id.Role.Valid() {
		return Identity{}, ErrMalformed
	}
	return id, nil
}
