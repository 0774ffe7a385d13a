package credstore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/ims-console/users"
	"github.com/pkg/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// profileClaims is the strict schema of the persisted profile
type profileClaims struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// ProfileCodec serializes a profile as an HMAC-SHA256 signed JWT so that a
// value edited in the browser decodes as absent rather than as a new role.
type ProfileCodec struct {
	secret []byte
}

// NewProfileCodec creates a codec with the given signing secret
func NewProfileCodec(secret string) *ProfileCodec {
	return &ProfileCodec{
		secret: []byte(secret),
	}
}

func (c *ProfileCodec) Encode(profile users.Profile) (string, error) {
	if err := profile.Validate(); err != nil {
		return "", err
	}
	claims := profileClaims{
		Name:  profile.Name,
		Email: profile.Email,
		Role:  profile.Role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  profile.ID,
			IssuedAt: jwt.NewNumericDate(NowTimeFunc()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign profile")
	}
	return signed, nil
}

func (c *ProfileCodec) Decode(raw string) (users.Profile, error) {
	var claims profileClaims
	_, err := jwt.ParseWithClaims(raw, &claims, c.verificationKey,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		return users.Profile{}, errors.Wrap(err, "failed to verify profile")
	}

	role, err := users.ParseRole(claims.Role)
	if err != nil {
		return users.Profile{}, errors.Wrap(err, "failed to decode profile role")
	}
	profile := users.Profile{
		ID:    claims.Subject,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  role,
	}
	if err := profile.Validate(); err != nil {
		return users.Profile{}, err
	}
	return profile, nil
}

func (c *ProfileCodec) verificationKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.Errorf("unexpected signing method: %v", token.Header["alg"])
	}
	return c.secret, nil
}
